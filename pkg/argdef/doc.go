// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argdef compiles compact command definitions into Command descriptors.
//
// A definition names a command, an optional single-letter shortcut and an
// optional value type with an optional default:
//
//	-p --product [number=10]
//	--verbose
//	-c --colors [array=["red","blue"]]
//	--name [string=anonymous]
//
// The grammar is matched against the whole string:
//
//	spec      := [shortcut] name [type]
//	shortcut  := "-" lowercase-letter [whitespace]
//	name      := "--" lowercase-letter+ [whitespace]
//	type      := "[" ("string" | "number" | "array" | "boolean") ["=" literal] "]"
//
// A definition without a type part is a Boolean command whose default is true:
// its presence on the command line turns it on. Typed definitions without a
// literal have no default (Command.Default is nil). Literals are materialized
// per type:
//   - number: parsed as a float64
//   - array: decoded as a JSON list of strings
//   - boolean: "true" or "false" (and the other strconv.ParseBool forms)
//   - string: kept verbatim, including the empty string
//
// Compile never performs I/O and is safe for concurrent use.
package argdef
