// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"

	"github.com/yeetrun/argspec/pkg/argdef"
	"github.com/yeetrun/argspec/pkg/argparse"
)

func main() {
	res, err := argparse.ParseOS([]argdef.Command{
		argdef.MustCompile("-c --colors [array]", "Array of colors"),
		argdef.MustCompile("-i --integer [number=1]"),
	})
	if err != nil {
		log.Fatal(err)
	}
	colors, _ := res.Strings("colors")
	n, _ := res.Number("integer")
	fmt.Println(colors, n)
}
