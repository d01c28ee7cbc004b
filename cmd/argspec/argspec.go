// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argspec parses command-line tokens against the commands declared in
// a descriptor file and prints the typed result.
//
//	argspec --file replica.toml -- --verbose -a 250
//	argspec --format yaml -- -c red blue
//	argspec --help-spec
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
	"slices"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/shayne/yargs"
	"github.com/yeetrun/argspec/pkg/argdef"
	"github.com/yeetrun/argspec/pkg/argfile"
	"github.com/yeetrun/argspec/pkg/arghelp"
	"github.com/yeetrun/argspec/pkg/argparse"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
	"tailscale.com/types/logger"
)

const fileEnv = "ARGSPEC_FILE"

type globalFlagsParsed struct {
	File            string `flag:"file" help:"Descriptor file, defaults to $ARGSPEC_FILE or the nearest argspec.toml"`
	Format          string `flag:"format" default:"json" help:"Output format (json|yaml)"`
	HelpSpec        bool   `flag:"help-spec" help:"Show the help screen of the descriptor file"`
	Strict          bool   `flag:"strict" help:"Reject unknown flags"`
	NegativeNumbers bool   `flag:"negative-numbers" help:"Treat tokens like -5 as values"`
	Verbose         bool   `flag:"verbose" help:"Log dropped tokens and ignored flags"`
	Help            bool   `flag:"help" help:"Show this help"`
}

// selfCommands describes argspec's own flags for its help screen, read from
// the tags of globalFlagsParsed.
func selfCommands() []argdef.Command {
	t := reflect.TypeFor[globalFlagsParsed]()
	cmds := make([]argdef.Command, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		c := argdef.Command{
			Name:        f.Tag.Get("flag"),
			Shortcut:    f.Tag.Get("short"),
			Description: f.Tag.Get("help"),
		}
		if f.Type.Kind() == reflect.Bool {
			c.Type = argdef.Boolean
			c.Default = true
		} else {
			c.Type = argdef.String
		}
		if d := f.Tag.Get("default"); d != "" {
			c.Default = d
		}
		cmds = append(cmds, c)
	}
	return cmds
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

// splitTokens returns the tokens meant for the descriptor set: everything
// after "--", or all remaining args when there is no separator.
func splitTokens(rest []string) ([]string, error) {
	i := slices.Index(rest, "--")
	if i < 0 {
		return rest, nil
	}
	if i > 0 {
		return nil, fmt.Errorf("unexpected arguments before --: %q", rest[:i])
	}
	return rest[i+1:], nil
}

func resolveFile(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(fileEnv); env != "" {
		return env, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return argfile.Find(cwd)
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func run(args []string, stdout, stderr io.Writer) error {
	flags, rest, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}
	if flags.Help {
		return arghelp.Render(stdout, arghelp.Info{
			Name:        "argspec",
			Description: "Parse tokens against a descriptor file",
			Color:       colorEnabled(stdout),
		}, selfCommands())
	}
	tokens, err := splitTokens(rest)
	if err != nil {
		return err
	}

	path, err := resolveFile(flags.File)
	if err != nil {
		return err
	}
	file, err := argfile.Load(path)
	if err != nil {
		return err
	}
	set, err := file.Set()
	if err != nil {
		return err
	}

	if flags.HelpSpec {
		return arghelp.Render(stdout, arghelp.Info{
			Name:        set.Name,
			Version:     set.Version,
			Description: set.Description,
			Color:       colorEnabled(stdout),
		}, set.Commands())
	}

	opts := file.Options()
	if flags.Strict {
		opts = append(opts, argparse.WithStrict())
	}
	if flags.NegativeNumbers {
		opts = append(opts, argparse.WithNegativeNumbers())
	}
	logf := logger.Discard
	if flags.Verbose {
		logf = log.New(stderr, "", 0).Printf
	}
	opts = append(opts, argparse.WithLogf(logf))

	res, err := set.Parse(tokens, opts...)
	if err != nil {
		return err
	}
	return writeResult(stdout, res, flags.Format)
}

func writeResult(w io.Writer, res argparse.Result, format string) error {
	switch format {
	case "", "json":
		bs, err := json.Marshal(map[string]any(res), json.Deterministic(true), jsontext.WithIndent("  "))
		if err != nil {
			return err
		}
		bs = append(bs, '\n')
		_, err = w.Write(bs)
		return err
	case "yaml":
		bs, err := yaml.Marshal(map[string]any(res))
		if err != nil {
			return err
		}
		_, err = w.Write(bs)
		return err
	}
	return fmt.Errorf("unknown format %q (want json or yaml)", format)
}

func printCLIError(w io.Writer, err error) {
	var valErr *argparse.ValueError
	var unknown *argparse.UnknownFlagError
	switch {
	case errors.As(err, &valErr):
		fmt.Fprintf(w, "Error: %v\n", err)
		fmt.Fprintf(w, "Try 'argspec --help-spec' to see the expected types\n")
	case errors.As(err, &unknown):
		fmt.Fprintf(w, "Error: %v\n", err)
		fmt.Fprintf(w, "Try 'argspec --help-spec' to see the known flags\n")
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		printCLIError(os.Stderr, err)
		os.Exit(1)
	}
}
