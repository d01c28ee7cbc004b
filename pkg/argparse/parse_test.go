// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/argspec/pkg/argdef"
)

func compileAll(t testing.TB, specs ...string) []argdef.Command {
	t.Helper()
	cmds := make([]argdef.Command, 0, len(specs))
	for _, spec := range specs {
		c, err := argdef.Compile(spec)
		if err != nil {
			t.Fatalf("Compile(%q) error = %v", spec, err)
		}
		cmds = append(cmds, c)
	}
	return cmds
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		specs []string
		args  []string
		want  Result
	}{
		{
			name: "no commands",
			args: []string{"--product", "10"},
			want: Result{},
		},
		{
			name:  "number default used when flag has no value",
			specs: []string{"--product [number=10]"},
			args:  []string{"--product"},
			want:  Result{"product": float64(10)},
		},
		{
			name:  "number without value or default",
			specs: []string{"--product [number]"},
			args:  []string{"--product"},
			want:  Result{"product": float64(1)},
		},
		{
			name:  "two commands with shortcut",
			specs: []string{"-p --product [number=10]", "-t --truc [string]"},
			args:  []string{"-p", "--truc", "hello world"},
			want:  Result{"product": float64(10), "truc": "hello world"},
		},
		{
			name:  "boolean present",
			specs: []string{"-p --product"},
			args:  []string{"-p"},
			want:  Result{"product": true},
		},
		{
			name:  "boolean absent",
			specs: []string{"-p --product"},
			args:  []string{},
			want:  Result{"product": false},
		},
		{
			name:  "array with several values",
			specs: []string{"-c --colors [array]"},
			args:  []string{"--colors", "red", "blue", "yellow"},
			want:  Result{"colors": []string{"red", "blue", "yellow"}},
		},
		{
			name:  "array with a single value is wrapped",
			specs: []string{"-c --colors [array]"},
			args:  []string{"-c", "red"},
			want:  Result{"colors": []string{"red"}},
		},
		{
			name:  "empty array default",
			specs: []string{"-c --colors [array=[]]"},
			args:  []string{"-c"},
			want:  Result{"colors": []string{}},
		},
		{
			name:  "array default with values",
			specs: []string{`-c --colors [array=["test"]]`},
			args:  []string{"-c"},
			want:  Result{"colors": []string{"test"}},
		},
		{
			name:  "number value coerced",
			specs: []string{"--product [number]"},
			args:  []string{"--product", "42.5"},
			want:  Result{"product": 42.5},
		},
		{
			name:  "number value with surrounding spaces",
			specs: []string{"--product [number]"},
			args:  []string{"--product", " 7 "},
			want:  Result{"product": float64(7)},
		},
		{
			name:  "defaults are not materialized for absent non-boolean commands",
			specs: []string{"--product [string=slimio]", "--price [number=1000000000]"},
			args:  []string{"--product"},
			want:  Result{"product": "slimio"},
		},
		{
			name:  "absent number with default omitted",
			specs: []string{"--product [string=slimio]", "--price [number=1000000000]"},
			args:  []string{"--price"},
			want:  Result{"price": float64(1000000000)},
		},
		{
			name:  "nothing given",
			specs: []string{"--product [string=slimio]", "--price [number=1000000000]"},
			args:  []string{},
			want:  Result{},
		},
		{
			name:  "falsy number default is kept",
			specs: []string{"--retries [number=0]"},
			args:  []string{"--retries"},
			want:  Result{"retries": float64(0)},
		},
		{
			name:  "empty string default is kept",
			specs: []string{"--prefix [string=]"},
			args:  []string{"--prefix"},
			want:  Result{"prefix": ""},
		},
		{
			name:  "false boolean default is kept",
			specs: []string{"--chouette [boolean=false]"},
			args:  []string{"--chouette"},
			want:  Result{"chouette": false},
		},
		{
			name:  "unknown flags are ignored",
			specs: []string{"--verbose"},
			args:  []string{"--colour", "red", "--verbose"},
			want:  Result{"verbose": true},
		},
		{
			name:  "dash count does not matter",
			specs: []string{"-p --product [number]"},
			args:  []string{"--p", "3"},
			want:  Result{"product": float64(3)},
		},
		{
			name:  "single dash long name",
			specs: []string{"--product [number]"},
			args:  []string{"-product", "3"},
			want:  Result{"product": float64(3)},
		},
		{
			name:  "last occurrence wins",
			specs: []string{"-c --colors [array]"},
			args:  []string{"--colors", "red", "blue", "--colors", "green"},
			want:  Result{"colors": []string{"green"}},
		},
		{
			name:  "shortcut and name share a flag context",
			specs: []string{"-p --product [number]"},
			args:  []string{"--product", "1", "-p", "2"},
			want:  Result{"product": float64(2)},
		},
		{
			name:  "later empty occurrence falls back to default",
			specs: []string{"-p --product [number=10]"},
			args:  []string{"-p", "5", "-p"},
			want:  Result{"product": float64(10)},
		},
		{
			name:  "tokens before the first flag are dropped",
			specs: []string{"-c --colors [array]"},
			args:  []string{"stray", "-c", "red"},
			want:  Result{"colors": []string{"red"}},
		},
		{
			name:  "negative number opens a flag by default",
			specs: []string{"--offset [number=1]"},
			args:  []string{"--offset", "-5"},
			want:  Result{"offset": float64(1)},
		},
		{
			name:  "values of unknown flags are not attached elsewhere",
			specs: []string{"-c --colors [array]"},
			args:  []string{"-c", "red", "--other", "blue"},
			want:  Result{"colors": []string{"red"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(compileAll(t, tt.specs...), tt.args)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.args, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.args, diff)
			}
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		args     []string
		wantName string
		wantType argdef.Kind
	}{
		{
			name:     "word for number",
			spec:     "--product [number]",
			args:     []string{"--product", "hello"},
			wantName: "product",
			wantType: argdef.Number,
		},
		{
			name:     "infinity for number",
			spec:     "--product [number]",
			args:     []string{"--product", "inf"},
			wantName: "product",
			wantType: argdef.Number,
		},
		{
			name:     "signed infinity for number",
			spec:     "-p --product [number]",
			args:     []string{"-p", "+Infinity"},
			wantName: "product",
			wantType: argdef.Number,
		},
		{
			name:     "several values for number",
			spec:     "--product [number]",
			args:     []string{"--product", "1", "2"},
			wantName: "product",
			wantType: argdef.Number,
		},
		{
			name:     "string without value or default",
			spec:     "-t --truc [string]",
			args:     []string{"-t"},
			wantName: "truc",
			wantType: argdef.String,
		},
		{
			name:     "several values for string",
			spec:     "-t --truc [string]",
			args:     []string{"-t", "hello", "world"},
			wantName: "truc",
			wantType: argdef.String,
		},
		{
			name:     "array without value or default",
			spec:     "-c --colors [array]",
			args:     []string{"-c"},
			wantName: "colors",
			wantType: argdef.Array,
		},
		{
			name:     "value for boolean",
			spec:     "--verbose",
			args:     []string{"--verbose", "yes"},
			wantName: "verbose",
			wantType: argdef.Boolean,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(compileAll(t, tt.spec), tt.args)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, want error", tt.args, got)
			}
			if got != nil {
				t.Errorf("Parse(%q) returned partial result %v", tt.args, got)
			}
			var valErr *ValueError
			if !errors.As(err, &valErr) {
				t.Fatalf("error type = %T, want *ValueError", err)
			}
			if valErr.Name != tt.wantName || valErr.Type != tt.wantType {
				t.Errorf("ValueError = {%s %s}, want {%s %s}", valErr.Name, valErr.Type, tt.wantName, tt.wantType)
			}
			want := fmt.Sprintf("%s CLI argument must be type of %s", tt.wantName, tt.wantType)
			if err.Error() != want {
				t.Errorf("Error() = %q, want %q", err.Error(), want)
			}
		})
	}
}

func TestParseNumberErrorUnwraps(t *testing.T) {
	_, err := Parse(compileAll(t, "--product [number]"), []string{"--product", "hello"})
	var valErr *ValueError
	if !errors.As(err, &valErr) {
		t.Fatalf("error type = %T, want *ValueError", err)
	}
	if valErr.Err == nil {
		t.Error("ValueError.Err = nil, want conversion error")
	}
	if valErr.Value != "hello" {
		t.Errorf("Value = %v, want %q", valErr.Value, "hello")
	}
}

func TestParseWithoutFlagsYieldsOnlyBooleans(t *testing.T) {
	cmds := compileAll(t,
		"--verbose",
		"-f --fastboot",
		"--chouette [boolean=false]",
		"--product [number=10]",
		"-c --colors [array]",
		"-t --truc [string=x]",
	)
	for _, args := range [][]string{nil, {}, {"positional", "words"}} {
		got, err := Parse(cmds, args)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", args, err)
		}
		want := Result{"verbose": false, "fastboot": false, "chouette": false}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", args, diff)
		}
	}
}

func TestParseIdempotent(t *testing.T) {
	cmds := compileAll(t, "--verbose", "--product [number=10]")
	first, err := Parse(cmds, []string{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Parse(cmds, []string{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parse results differ: %v vs %v", first, second)
	}
}

func TestParseResultDoesNotAliasDefault(t *testing.T) {
	cmds := compileAll(t, `-c --colors [array=["red"]]`)
	res, err := Parse(cmds, []string{"-c"})
	if err != nil {
		t.Fatal(err)
	}
	res["colors"].([]string)[0] = "mutated"
	if got := cmds[0].Default.([]string)[0]; got != "red" {
		t.Errorf("descriptor default = %q after mutating result, want %q", got, "red")
	}
}

func TestParseDuplicateCommands(t *testing.T) {
	tests := []struct {
		name      string
		cmds      []argdef.Command
		wantField string
	}{
		{
			name:      "duplicate name",
			cmds:      compileAll(t, "--product", "--product [number]"),
			wantField: "name",
		},
		{
			name:      "duplicate shortcut",
			cmds:      compileAll(t, "-p --product", "-p --price [number]"),
			wantField: "shortcut",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.cmds, nil)
			var dupErr *DuplicateError
			if !errors.As(err, &dupErr) {
				t.Fatalf("error = %v, want *DuplicateError", err)
			}
			if dupErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", dupErr.Field, tt.wantField)
			}
		})
	}
}

func TestParseInvalidCommand(t *testing.T) {
	for _, def := range []any{"ten", math.Inf(1), math.NaN()} {
		cmds := []argdef.Command{{Name: "count", Type: argdef.Number, Default: def}}
		_, err := Parse(cmds, nil)
		if !errors.Is(err, argdef.ErrInvalid) {
			t.Errorf("default %v: error = %v, want argdef.ErrInvalid", def, err)
		}
	}
}

func TestParseDirectCommandLiteral(t *testing.T) {
	cmds := []argdef.Command{
		{Name: "verbose", Shortcut: "v"},
		{Name: "level", Type: argdef.Number, Default: 3.0},
	}
	got, err := Parse(cmds, []string{"-v", "--level"})
	if err != nil {
		t.Fatal(err)
	}
	want := Result{"verbose": true, "level": 3.0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStrict(t *testing.T) {
	cmds := compileAll(t, "--verbose")

	_, err := Parse(cmds, []string{"--verbose", "--colour", "red"}, WithStrict())
	var unknown *UnknownFlagError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want *UnknownFlagError", err)
	}
	if unknown.Flag != "--colour" {
		t.Errorf("Flag = %q, want %q", unknown.Flag, "--colour")
	}
	if err.Error() != "unknown flag: --colour" {
		t.Errorf("Error() = %q", err.Error())
	}

	got, err := Parse(cmds, []string{"--verbose"}, WithStrict())
	if err != nil {
		t.Fatalf("strict parse of known flag error = %v", err)
	}
	if !got.Bool("verbose") {
		t.Errorf("verbose = false, want true")
	}
}

func TestParseNegativeNumbers(t *testing.T) {
	cmds := compileAll(t, "--offset [number=1]", "-c --coords [array]", "--verbose")
	tests := []struct {
		args []string
		want Result
	}{
		{
			args: []string{"--offset", "-5"},
			want: Result{"offset": float64(-5), "verbose": false},
		},
		{
			args: []string{"--coords", "-1.5", "2", "-0.25", "--verbose"},
			want: Result{"coords": []string{"-1.5", "2", "-0.25"}, "verbose": true},
		},
		{
			args: []string{"--offset", "-x"},
			want: Result{"offset": float64(1), "verbose": false},
		},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			got, err := Parse(cmds, tt.args, WithNegativeNumbers())
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseLogf(t *testing.T) {
	var logs []string
	logf := func(format string, args ...any) {
		logs = append(logs, fmt.Sprintf(format, args...))
	}
	_, err := Parse(compileAll(t, "--verbose"), []string{"stray", "--colour", "--verbose"}, WithLogf(logf))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		`argparse: dropping "stray": no flag before it`,
		"argparse: ignoring unknown flag --colour",
	}
	if diff := cmp.Diff(want, logs); diff != "" {
		t.Errorf("logs mismatch (-want +got):\n%s", diff)
	}
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"10", true},
		{"-10", true},
		{"+3", true},
		{"-3.14", true},
		{".5", true},
		{"-", false},
		{"", false},
		{"-.", false},
		{"1.2.3", false},
		{"-x", false},
		{"--5", false},
	}
	for _, tt := range tests {
		if got := isNumeric(tt.in); got != tt.want {
			t.Errorf("isNumeric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResultAccessors(t *testing.T) {
	res := Result{
		"verbose": true,
		"product": float64(10),
		"truc":    "hello",
		"colors":  []string{"red"},
	}
	if !res.Has("truc") || res.Has("missing") {
		t.Errorf("Has mismatch")
	}
	if !res.Bool("verbose") || res.Bool("missing") || res.Bool("truc") {
		t.Errorf("Bool mismatch")
	}
	if n, ok := res.Number("product"); !ok || n != 10 {
		t.Errorf("Number(product) = %v, %v", n, ok)
	}
	if _, ok := res.Number("truc"); ok {
		t.Errorf("Number(truc) ok = true, want false")
	}
	if s, ok := res.Text("truc"); !ok || s != "hello" {
		t.Errorf("Text(truc) = %q, %v", s, ok)
	}
	colors, ok := res.Strings("colors")
	if !ok || !reflect.DeepEqual(colors, []string{"red"}) {
		t.Errorf("Strings(colors) = %v, %v", colors, ok)
	}
	colors[0] = "blue"
	if got, _ := res.Strings("colors"); got[0] != "red" {
		t.Errorf("Strings returned an alias of the stored value")
	}
}

func BenchmarkParse(b *testing.B) {
	cmds := compileAll(b,
		"--product [number=10]",
		"--verbose",
		"-f --fastboot",
		"-c --colors [array]",
	)
	args := []string{"--product", "10", "-f", "--colors", "red", "blue", "yellow"}
	b.ReportAllocs()
	for b.Loop() {
		if _, err := Parse(cmds, args); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompile(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		if _, err := argdef.Compile("-p --product [number=10]", "Description"); err != nil {
			b.Fatal(err)
		}
	}
}
