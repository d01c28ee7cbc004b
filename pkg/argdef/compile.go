// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argdef

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
)

// ErrSyntax is matched by every *SyntaxError.
var ErrSyntax = errors.New("unable to parse command")

// SyntaxError is returned by Compile when a definition does not match the grammar.
type SyntaxError struct {
	Spec   string // The definition that failed to compile
	Offset int    // Byte offset of the problem within Spec
	Reason string
	Err    error // Underlying literal conversion error, if any
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("unable to parse command %q: %s at offset %d", e.Spec, e.Reason, e.Offset)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Compile parses a definition such as "-p --product [number=10]" into a
// Command. At most one description may be given; it defaults to "".
func Compile(spec string, description ...string) (Command, error) {
	if len(description) > 1 {
		return Command{}, fmt.Errorf("argdef: at most one description allowed, got %d", len(description))
	}
	s := &scanner{src: spec}
	c, err := s.command()
	if err != nil {
		return Command{}, err
	}
	if len(description) == 1 {
		c.Description = description[0]
	}
	return c, nil
}

// MustCompile is like Compile but panics on error. It is intended for
// package-level command tables.
func MustCompile(spec string, description ...string) Command {
	c, err := Compile(spec, description...)
	if err != nil {
		panic(err)
	}
	return c
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) fail(reason string) error {
	return &SyntaxError{Spec: s.src, Offset: s.pos, Reason: reason}
}

func (s *scanner) done() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek(n int) byte {
	if s.pos+n >= len(s.src) {
		return 0
	}
	return s.src[s.pos+n]
}

// space consumes at most one whitespace character.
func (s *scanner) space() {
	switch s.peek(0) {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		s.pos++
	}
}

func (s *scanner) letters() string {
	start := s.pos
	for !s.done() && isLower(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *scanner) command() (Command, error) {
	var c Command

	if s.peek(0) == '-' && s.peek(1) != '-' {
		s.pos++
		if !isLower(s.peek(0)) {
			return Command{}, s.fail("shortcut must be a single lowercase letter")
		}
		c.Shortcut = s.src[s.pos : s.pos+1]
		s.pos++
	}
	s.space()

	if s.peek(0) != '-' || s.peek(1) != '-' {
		return Command{}, s.fail(`expected "--" before the command name`)
	}
	s.pos += 2
	c.Name = s.letters()
	if c.Name == "" {
		return Command{}, s.fail("command name must be lowercase letters")
	}
	s.space()

	if s.done() {
		c.Type = Boolean
		c.Default = true
		return c, nil
	}
	if s.peek(0) != '[' {
		return Command{}, s.fail("unexpected character after the command name")
	}
	if err := s.typePart(&c); err != nil {
		return Command{}, err
	}
	return c, nil
}

// typePart parses "[type]" or "[type=literal]", which must end the input.
func (s *scanner) typePart(c *Command) error {
	s.pos++ // '['
	typeStart := s.pos
	kind, ok := ParseKind(s.letters())
	if !ok {
		s.pos = typeStart
		return s.fail("type must be one of string, number, array or boolean")
	}
	c.Type = kind

	switch s.peek(0) {
	case ']':
		s.pos++
		if !s.done() {
			return s.fail("unexpected input after the type")
		}
		if kind == Boolean {
			c.Default = true
		}
		return nil
	case '=':
		s.pos++
	default:
		return s.fail(`expected "]" or "=" after the type`)
	}

	if !strings.HasSuffix(s.src[s.pos:], "]") {
		s.pos = len(s.src)
		return s.fail(`missing closing "]"`)
	}
	litStart := s.pos
	lit := s.src[litStart : len(s.src)-1]
	if i := strings.IndexAny(lit, "\r\n"); i >= 0 {
		s.pos = litStart + i
		return s.fail("default value must be on a single line")
	}
	v, err := parseLiteral(kind, lit)
	if err != nil {
		s.pos = litStart
		return &SyntaxError{Spec: s.src, Offset: s.pos, Reason: fmt.Sprintf("invalid %s default %q", kind, lit), Err: err}
	}
	c.Default = v
	s.pos = len(s.src)
	return nil
}

func parseLiteral(kind Kind, lit string) (any, error) {
	switch kind {
	case Number:
		return ParseNumber(lit)
	case Boolean:
		return strconv.ParseBool(lit)
	case Array:
		if !strings.HasPrefix(strings.TrimSpace(lit), "[") {
			return nil, errors.New("array default must be a list")
		}
		var out []string
		if err := json.Unmarshal([]byte(lit), &out); err != nil {
			return nil, err
		}
		if out == nil {
			out = []string{}
		}
		return out, nil
	default:
		return lit, nil
	}
}
