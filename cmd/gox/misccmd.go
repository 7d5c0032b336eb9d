// Copyright 2025 The GoxLang Authors
// This file is part of GoxLang.
//
// GoxLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"fmt"
	"runtime"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/goxlang/gox/params"
)

var versionCommand = cli.Command{
	Action:    runVersion,
	Name:      "version",
	Usage:     "Print version numbers",
	ArgsUsage: " ",
	Category:  "MISCELLANEOUS COMMANDS",
}

func runVersion(_ *cli.Context) error {
	fmt.Println("Gox")
	fmt.Println("Version:", params.VersionWithMeta)
	fmt.Println("Architecture:", runtime.GOARCH)
	fmt.Println("Go Version:", runtime.Version())
	fmt.Println("Operating System:", runtime.GOOS)
	return nil
}
