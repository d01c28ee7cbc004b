// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import "slices"

// Result maps canonical command names to parsed values. Values are bool,
// float64, string or []string according to the command's type.
type Result map[string]any

// Has reports whether name is present in r.
func (r Result) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Bool returns the value of a boolean command, false if absent.
func (r Result) Bool(name string) bool {
	b, _ := r[name].(bool)
	return b
}

// Number returns the value of a number command.
func (r Result) Number(name string) (float64, bool) {
	f, ok := r[name].(float64)
	return f, ok
}

// Text returns the value of a string command.
func (r Result) Text(name string) (string, bool) {
	s, ok := r[name].(string)
	return s, ok
}

// Strings returns a copy of the value of an array command.
func (r Result) Strings(name string) ([]string, bool) {
	s, ok := r[name].([]string)
	if !ok {
		return nil, false
	}
	return slices.Clone(s), true
}
