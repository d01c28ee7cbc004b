// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arghelp renders help screens for argdef commands.
package arghelp

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/yeetrun/argspec/pkg/argdef"
)

// NoCommands is printed when there is nothing to describe.
const NoCommands = "There is currently no command repertoried"

// Info describes the program owning the commands.
type Info struct {
	Name        string
	Version     string
	Description string
	// Color enables ANSI colors for section titles.
	Color bool
}

// Render writes the help screen for cmds to w.
func Render(w io.Writer, info Info, cmds []argdef.Command) error {
	_, err := io.WriteString(w, String(info, cmds))
	return err
}

// String returns the help screen for cmds.
func String(info Info, cmds []argdef.Command) string {
	if len(cmds) == 0 {
		return NoCommands + "\n"
	}

	title := color.New(color.Bold)
	if info.Color {
		title.EnableColor()
	} else {
		title.DisableColor()
	}

	name := info.Name
	if name == "" {
		name = "<program>"
	}

	var b strings.Builder
	if info.Name != "" {
		b.WriteString(title.Sprint(info.Name))
		if info.Version != "" {
			b.WriteString(" ")
			b.WriteString(info.Version)
		}
		if info.Description != "" {
			b.WriteString(" - ")
			b.WriteString(info.Description)
		}
		b.WriteString("\n\n")
	}

	b.WriteString(title.Sprint("USAGE:"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    %s <command>\n", name)
	fmt.Fprintf(&b, "    %s <command> <value>\n\n", name)

	b.WriteString(title.Sprint("COMMANDS:"))
	b.WriteString("\n")
	b.WriteString(table(cmds))
	return b.String()
}

func table(cmds []argdef.Command) string {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "    <command>\t<type>\t<default>\t<description>")
	for _, c := range cmds {
		fmt.Fprintf(tw, "    %s\t%s\t%s\t%s\n", flagColumn(c), c.Type, argdef.FormatValue(c.Default), c.Description)
	}
	tw.Flush()

	// Rows with an empty last column end in padding.
	lines := strings.SplitAfter(buf.String(), "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.WriteString(strings.TrimRight(line, " \n"))
		b.WriteString("\n")
	}
	return b.String()
}

func flagColumn(c argdef.Command) string {
	if c.Shortcut == "" {
		return "--" + c.Name
	}
	return "-" + c.Shortcut + " --" + c.Name
}
