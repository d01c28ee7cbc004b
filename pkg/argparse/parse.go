// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/yeetrun/argspec/pkg/argdef"
	"tailscale.com/types/logger"
)

// Option configures a parse.
type Option func(*options)

type options struct {
	strict          bool
	negativeNumbers bool
	logf            logger.Logf
}

// WithStrict makes flags that match no command fail the parse with an
// *UnknownFlagError instead of being ignored.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithNegativeNumbers collects tokens such as "-5" or "-0.25" as values of
// the current flag instead of opening a new flag context. A negative number
// seen before any flag still opens a flag.
func WithNegativeNumbers() Option {
	return func(o *options) {
		o.negativeNumbers = true
	}
}

// WithLogf reports dropped tokens and ignored flags to logf.
func WithLogf(logf logger.Logf) Option {
	return func(o *options) {
		if logf != nil {
			o.logf = logf
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{logf: logger.Discard}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// index is the lookup state derived from a command list before parsing.
type index struct {
	cmds      []argdef.Command
	byName    map[string]int
	shortcuts map[string]string // shortcut -> canonical name
}

func newIndex(cmds []argdef.Command) (*index, error) {
	idx := &index{
		cmds:      cmds,
		byName:    make(map[string]int, len(cmds)),
		shortcuts: make(map[string]string),
	}
	for i, c := range cmds {
		if err := idx.check(c); err != nil {
			return nil, err
		}
		idx.byName[c.Name] = i
		if c.Shortcut != "" {
			idx.shortcuts[c.Shortcut] = c.Name
		}
	}
	return idx, nil
}

// check reports whether c can join the index.
func (idx *index) check(c argdef.Command) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if _, ok := idx.byName[c.Name]; ok {
		return &DuplicateError{Field: "name", Value: c.Name, Existing: c.Name}
	}
	if c.Shortcut != "" {
		if owner, ok := idx.shortcuts[c.Shortcut]; ok {
			return &DuplicateError{Field: "shortcut", Value: c.Shortcut, Existing: owner}
		}
	}
	return nil
}

// canonical translates a raw flag name into a command name. Shortcuts win
// over names.
func (idx *index) canonical(flag string) string {
	if name, ok := idx.shortcuts[flag]; ok {
		return name
	}
	return flag
}

func (idx *index) known(name string) bool {
	_, ok := idx.byName[name]
	return ok
}

// Parse resolves args against cmds. Commands must have distinct names and
// distinct shortcuts; a violation is reported as a *DuplicateError before any
// token is read. A nil or empty cmds always yields an empty Result.
func Parse(cmds []argdef.Command, args []string, opts ...Option) (Result, error) {
	idx, err := newIndex(cmds)
	if err != nil {
		return nil, err
	}
	return idx.parse(args, newOptions(opts))
}

// ParseOS is Parse with the process arguments, excluding the program name.
func ParseOS(cmds []argdef.Command, opts ...Option) (Result, error) {
	return Parse(cmds, os.Args[1:], opts...)
}

func (idx *index) parse(args []string, o *options) (Result, error) {
	raw, err := idx.tokenize(args, o)
	if err != nil {
		return nil, err
	}
	res := make(Result, len(idx.cmds))
	for _, c := range idx.cmds {
		vals, ok := raw[c.Name]
		if !ok {
			if c.Type == argdef.Boolean {
				res[c.Name] = false
			}
			continue
		}
		v, err := resolve(c, vals)
		if err != nil {
			return nil, err
		}
		res[c.Name] = v
	}
	return res, nil
}

// tokenize groups args into flag contexts keyed by canonical name. A later
// context for the same name replaces the earlier one.
func (idx *index) tokenize(args []string, o *options) (map[string][]string, error) {
	raw := make(map[string][]string)
	var (
		current string
		open    bool
		values  []string
	)
	flush := func() {
		if !open {
			return
		}
		if idx.known(current) {
			raw[current] = values
		}
		values = nil
	}

	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && !(open && o.negativeNumbers && isNumeric(arg)) {
			flush()
			current = idx.canonical(strings.ReplaceAll(arg, "-", ""))
			open = true
			values = []string{}
			if !idx.known(current) {
				if o.strict {
					return nil, &UnknownFlagError{Flag: arg}
				}
				o.logf("argparse: ignoring unknown flag %s", arg)
			}
			continue
		}
		if !open {
			o.logf("argparse: dropping %q: no flag before it", arg)
			continue
		}
		values = append(values, arg)
	}
	flush()
	return raw, nil
}

// resolve computes the effective value of a command that appeared in the
// input with the given values, and checks it against the declared type.
func resolve(c argdef.Command, vals []string) (any, error) {
	var v any
	switch len(vals) {
	case 0:
		if c.HasDefault() {
			v = argdef.CloneValue(c.Default)
		} else {
			v = true
		}
	case 1:
		if c.Type == argdef.Array {
			v = []string{vals[0]}
		} else {
			v = vals[0]
		}
	default:
		v = slices.Clone(vals)
	}

	switch c.Type {
	case argdef.Number:
		switch x := v.(type) {
		case float64:
			return x, nil
		case bool:
			// A bare flag coerces to 1.
			if x {
				return float64(1), nil
			}
			return float64(0), nil
		case string:
			f, err := argdef.ParseNumber(x)
			if err != nil {
				return nil, &ValueError{Name: c.Name, Type: c.Type, Value: v, Err: err}
			}
			return f, nil
		}
	case argdef.String:
		if _, ok := v.(string); ok {
			return v, nil
		}
	case argdef.Array:
		if _, ok := v.([]string); ok {
			return v, nil
		}
	case argdef.Boolean:
		if _, ok := v.(bool); ok {
			return v, nil
		}
	default:
		return nil, fmt.Errorf("argparse: %s: unknown type %v", c.Name, c.Type)
	}
	return nil, &ValueError{Name: c.Name, Type: c.Type, Value: v}
}

// isNumeric checks if a string is a number (e.g., "10", "-10", "3.14", "-3.14")
func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}

	start := 0
	if s[0] == '-' || s[0] == '+' {
		if len(s) == 1 {
			return false
		}
		start = 1
	}

	hasDigit := false
	hasDot := false
	for i := start; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			hasDigit = true
		case s[i] == '.' && !hasDot:
			hasDot = true
		default:
			return false
		}
	}
	return hasDigit
}
