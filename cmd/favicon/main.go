// favicon - writes the small site icon
//
// Generates a 16x16, 32-bit ICO file at public/favicon-small.ico: a filled
// circle in three shades of blue on a transparent background.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"github.com/jmylchreest/favicon/internal/cli"
)

func main() {
	cli.Execute()
}
