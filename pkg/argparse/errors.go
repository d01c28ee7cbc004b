// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"fmt"

	"github.com/yeetrun/argspec/pkg/argdef"
)

// ValueError is returned when a recognized command's value does not satisfy
// its declared type. No partial result accompanies it.
type ValueError struct {
	Name  string      // Canonical name of the command
	Type  argdef.Kind // Declared type
	Value any         // The offending value: a string, []string or bool
	Err   error       // Conversion error, if any
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s CLI argument must be type of %s", e.Name, e.Type)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// UnknownFlagError is returned in strict mode when a flag matches no command.
type UnknownFlagError struct {
	Flag string // The token as it appeared, e.g. "--colour"
}

func (e *UnknownFlagError) Error() string {
	return fmt.Sprintf("unknown flag: %s", e.Flag)
}

// DuplicateError is returned when two commands share a name or a shortcut.
type DuplicateError struct {
	Field    string // "name" or "shortcut"
	Value    string
	Existing string // Canonical name of the command already holding Value
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s %q: already used by %q", e.Field, e.Value, e.Existing)
}
