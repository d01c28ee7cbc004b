// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"maps"
	"slices"

	"github.com/yeetrun/argspec/pkg/argdef"
)

// Set is an ordered, immutable collection of commands. Adding a command
// returns a new Set and leaves the receiver unchanged, so a Set can be shared
// and extended freely. The zero Set is empty and ready to use.
type Set struct {
	// Name, Version and Description describe the program for help output.
	Name        string
	Version     string
	Description string

	cmds      []argdef.Command
	byName    map[string]int
	shortcuts map[string]string
}

// NewSet returns an empty Set for the named program.
func NewSet(name, version, description string) Set {
	return Set{Name: name, Version: version, Description: description}
}

// Add compiles spec and adds the resulting command.
func (s Set) Add(spec string, description ...string) (Set, error) {
	c, err := argdef.Compile(spec, description...)
	if err != nil {
		return s, err
	}
	return s.AddCommand(c)
}

// MustAdd is like Add but panics on error.
func (s Set) MustAdd(spec string, description ...string) Set {
	out, err := s.Add(spec, description...)
	if err != nil {
		panic(err)
	}
	return out
}

// AddCommand adds c. It fails with a *DuplicateError if c's name or shortcut
// is already taken, or with an argdef.ErrInvalid error if c is malformed.
func (s Set) AddCommand(c argdef.Command) (Set, error) {
	idx := s.index()
	if err := idx.check(c); err != nil {
		return s, err
	}
	c.Default = argdef.CloneValue(c.Default)

	out := s
	out.cmds = append(slices.Clip(s.cmds), c)
	out.byName = maps.Clone(idx.byName)
	out.shortcuts = maps.Clone(idx.shortcuts)
	if out.byName == nil {
		out.byName = make(map[string]int)
	}
	if out.shortcuts == nil {
		out.shortcuts = make(map[string]string)
	}
	out.byName[c.Name] = len(out.cmds) - 1
	if c.Shortcut != "" {
		out.shortcuts[c.Shortcut] = c.Name
	}
	return out, nil
}

// Len returns the number of commands in s.
func (s Set) Len() int {
	return len(s.cmds)
}

// Commands returns the commands of s in the order they were added.
func (s Set) Commands() []argdef.Command {
	out := slices.Clone(s.cmds)
	for i := range out {
		out[i].Default = argdef.CloneValue(out[i].Default)
	}
	return out
}

// Lookup finds a command by canonical name or shortcut.
func (s Set) Lookup(key string) (argdef.Command, bool) {
	i, ok := s.byName[s.index().canonical(key)]
	if !ok {
		return argdef.Command{}, false
	}
	c := s.cmds[i]
	c.Default = argdef.CloneValue(c.Default)
	return c, true
}

// Parse resolves args against the commands of s.
func (s Set) Parse(args []string, opts ...Option) (Result, error) {
	return s.index().parse(args, newOptions(opts))
}

func (s Set) index() *index {
	return &index{cmds: s.cmds, byName: s.byName, shortcuts: s.shortcuts}
}
