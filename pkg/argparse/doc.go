// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argparse turns raw command-line tokens into typed values for a list
// of argdef.Command descriptors.
//
// # Basic Usage
//
//	cmds := []argdef.Command{
//	    argdef.MustCompile("-p --product [number=10]", "Product number"),
//	    argdef.MustCompile("-c --colors [array]", "Colors to use"),
//	    argdef.MustCompile("--verbose"),
//	}
//	res, err := argparse.Parse(cmds, os.Args[1:])
//	if err != nil {
//	    log.Fatal(err)
//	}
//	n, _ := res.Number("product")
//	fmt.Println(n, res.Bool("verbose"))
//
// # Token Syntax
//
// Any token starting with "-" opens a flag context; the flag name is the token
// with every dash removed, so "-p" and "--p" are the same flag. Following
// tokens that do not start with "-" are collected as that flag's values until
// the next flag or the end of input. Tokens before the first flag belong to no
// flag and are dropped. A repeated flag replaces the values collected for its
// earlier occurrence, and a shortcut and its name count as the same flag.
//
// # Values
//
// Commands are resolved in declaration order:
//   - A flag given without values takes the command's default, or true when
//     the command has none.
//   - An array command given a single value receives a one-element list.
//   - Number values are stored as float64.
//   - An absent boolean command is stored as false; other absent commands are
//     omitted from the Result.
//
// Unknown flags are ignored unless WithStrict is used.
//
// # Command Sets
//
// Set is an immutable builder that checks for duplicate names and shortcuts
// as commands are added and parses with a shortcut table built once:
//
//	set := argparse.NewSet("replica", "1.0.0", "Replica agent").
//	    MustAdd("--verbose", "Enable verbose mode").
//	    MustAdd("-a --autoreload [number=500]", "Autoreload delay")
//	res, err := set.Parse(os.Args[1:])
package argparse
