// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argdef

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
)

// Kind is the value type of a command.
type Kind uint8

// The zero Kind is Boolean so that a Command literal without a Type behaves
// like a definition without a type part.
const (
	Boolean Kind = iota
	String
	Number
	Array
)

var kindNames = [...]string{
	Boolean: "boolean",
	String:  "string",
	Number:  "number",
	Array:   "array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// ErrInvalid is wrapped by Validate when a Command breaks a descriptor invariant.
var ErrInvalid = errors.New("invalid command")

// Command describes one declared command.
type Command struct {
	// Name is the canonical name, lowercase letters only.
	Name string
	// Shortcut is an optional single lowercase letter alias. Empty when absent.
	Shortcut string
	Type     Kind
	// Description is only used for help output.
	Description string
	// Default is substituted when the command is given without values.
	// It is nil when no default was declared, otherwise it holds a bool,
	// float64, string or []string matching Type.
	Default any
}

// HasDefault reports whether c declares a default value. Falsy defaults such
// as 0, "" or false count as declared.
func (c Command) HasDefault() bool {
	return c.Default != nil
}

// Validate checks that c could have been produced by Compile.
func (c Command) Validate() error {
	if !isLowerWord(c.Name) {
		return fmt.Errorf("%w: name %q must be lowercase letters", ErrInvalid, c.Name)
	}
	if c.Shortcut != "" && (len(c.Shortcut) != 1 || !isLower(c.Shortcut[0])) {
		return fmt.Errorf("%w: %s: shortcut %q must be a single lowercase letter", ErrInvalid, c.Name, c.Shortcut)
	}
	if int(c.Type) >= len(kindNames) {
		return fmt.Errorf("%w: %s: unknown type %v", ErrInvalid, c.Name, c.Type)
	}
	if c.Default == nil {
		return nil
	}
	var ok bool
	switch c.Type {
	case Boolean:
		_, ok = c.Default.(bool)
	case String:
		_, ok = c.Default.(string)
	case Number:
		var f float64
		f, ok = c.Default.(float64)
		ok = ok && !math.IsNaN(f) && !math.IsInf(f, 0)
	case Array:
		_, ok = c.Default.([]string)
	}
	if !ok {
		return fmt.Errorf("%w: %s: default %v (%T) does not match type %s", ErrInvalid, c.Name, c.Default, c.Default, c.Type)
	}
	return nil
}

// String renders c back into definition syntax. Compile(c.String()) yields a
// Command equal to c apart from Description.
func (c Command) String() string {
	var b strings.Builder
	if c.Shortcut != "" {
		b.WriteString("-")
		b.WriteString(c.Shortcut)
		b.WriteString(" ")
	}
	b.WriteString("--")
	b.WriteString(c.Name)
	if c.Type == Boolean && (c.Default == nil || c.Default == true) {
		return b.String()
	}
	b.WriteString(" [")
	b.WriteString(c.Type.String())
	if c.Default != nil {
		b.WriteString("=")
		b.WriteString(FormatValue(c.Default))
	}
	b.WriteString("]")
	return b.String()
}

// FormatValue formats a command value the way it is written in a definition
// literal. A nil value formats as the empty string.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	case []string:
		if v == nil {
			v = []string{}
		}
		bs, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint([]string(v))
		}
		return string(bs)
	default:
		return fmt.Sprint(v)
	}
}

// CloneValue returns a copy of v that shares no memory with it.
func CloneValue(v any) any {
	if s, ok := v.([]string); ok {
		if s == nil {
			return []string{}
		}
		return slices.Clone(s)
	}
	return v
}

// ParseNumber converts s to a finite number. Surrounding whitespace is
// ignored; NaN, infinities and empty input are rejected.
func ParseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return f, nil
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func isLowerWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isLower(s[i]) {
			return false
		}
	}
	return true
}
