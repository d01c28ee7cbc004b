// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log"
	"os"
	"time"

	"github.com/yeetrun/argspec/pkg/arghelp"
	"github.com/yeetrun/argspec/pkg/argparse"
)

var commands = argparse.NewSet("replica", "1.0.0", "Replica agent").
	MustAdd("--verbose", "Enable verbose mode!").
	MustAdd("-a --autoreload [number=500]", "Configuration Autoreload delay in number").
	MustAdd("-h --help", "Show help")

func main() {
	res, err := commands.Parse(os.Args[1:], argparse.WithLogf(log.Printf))
	if err != nil {
		log.Fatal(err)
	}
	if res.Bool("help") {
		if err := arghelp.Render(os.Stdout, arghelp.Info{
			Name:        commands.Name,
			Version:     commands.Version,
			Description: commands.Description,
		}, commands.Commands()); err != nil {
			log.Fatal(err)
		}
		return
	}
	delay, ok := res.Number("autoreload")
	if !ok {
		delay = 500
	}
	log.Printf("verbose=%v autoreload=%v", res.Bool("verbose"), time.Duration(delay)*time.Millisecond)
}
