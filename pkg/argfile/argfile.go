// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argfile loads program descriptions and their command definitions
// from TOML or YAML files.
//
// A TOML file looks like:
//
//	name = "replica"
//	version = "1.0.0"
//	description = "Replica agent"
//
//	[[commands]]
//	spec = "--verbose"
//	description = "Enable verbose mode!"
//
//	[[commands]]
//	spec = "-a --autoreload [number=500]"
//	description = "Configuration Autoreload delay in number"
package argfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/argspec/pkg/argparse"
	"gopkg.in/yaml.v3"
)

// DefaultName is the file looked up when no path is given.
const DefaultName = "argspec.toml"

// Format is the encoding of a descriptor file.
type Format int

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatForPath picks the Format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("unsupported descriptor file extension %q", filepath.Ext(path))
}

// File is the decoded content of a descriptor file.
type File struct {
	Name        string         `toml:"name" yaml:"name"`
	Version     string         `toml:"version,omitempty" yaml:"version,omitempty"`
	Description string         `toml:"description,omitempty" yaml:"description,omitempty"`
	Strict      bool           `toml:"strict,omitempty" yaml:"strict,omitempty"`
	Commands    []CommandEntry `toml:"commands" yaml:"commands"`
}

// CommandEntry is one command definition.
type CommandEntry struct {
	Spec        string `toml:"spec" yaml:"spec"`
	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
}

// Load reads and validates the descriptor file at path.
func Load(path string) (*File, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	file, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return file, nil
}

// Find walks up from startDir looking for DefaultName. It returns an error
// wrapping os.ErrNotExist if there is none.
func Find(startDir string) (string, error) {
	dir := startDir
	for {
		path := filepath.Join(dir, DefaultName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found from %s: %w", DefaultName, startDir, os.ErrNotExist)
		}
		dir = parent
	}
}

// Decode reads a descriptor in the given format and validates it. Unknown
// keys are rejected.
func Decode(r io.Reader, format Format) (*File, error) {
	var file File
	switch format {
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&file)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %v", format)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// Encode writes file in the given format.
func Encode(w io.Writer, file *File, format Format) error {
	switch format {
	case TOML:
		return toml.NewEncoder(w).Encode(file)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(file); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %v", format)
}

// Validate checks the version and compiles every command.
func (f *File) Validate() error {
	if f.Version != "" {
		if _, err := semver.NewVersion(f.Version); err != nil {
			return fmt.Errorf("invalid version %q: %w", f.Version, err)
		}
	}
	_, err := f.Set()
	return err
}

// Set compiles the commands of f into an argparse.Set.
func (f *File) Set() (argparse.Set, error) {
	set := argparse.NewSet(f.Name, f.Version, f.Description)
	for i, entry := range f.Commands {
		var err error
		set, err = set.Add(entry.Spec, entry.Description)
		if err != nil {
			return argparse.Set{}, fmt.Errorf("command %d (%q): %w", i, entry.Spec, err)
		}
	}
	return set, nil
}

// Options returns the parse options requested by f.
func (f *File) Options() []argparse.Option {
	if f.Strict {
		return []argparse.Option{argparse.WithStrict()}
	}
	return nil
}

// Marshal is Encode into a byte slice.
func Marshal(file *File, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, file, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
