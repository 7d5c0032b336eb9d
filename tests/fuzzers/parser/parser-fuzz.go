// Copyright 2025 The GoxLang Authors
// This file is part of GoxLang.
//
// GoxLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"github.com/goxlang/gox/lang/diag"
	langparser "github.com/goxlang/gox/lang/parser"
)

// Fuzz is the fuzzing entry point. Arbitrary bytes are lexed and parsed; the
// run must terminate with a program tree and never panic, however malformed
// the input. Inputs that parse without diagnostics are prioritized since they
// reach the deeper grammar rules.
func Fuzz(data []byte) int {
	sink := diag.NewSink()
	prog := langparser.ParseSource(string(data), sink)
	if prog == nil {
		panic("parser returned a nil program")
	}
	if sink.HasErrors() {
		return 0
	}
	return 1
}
