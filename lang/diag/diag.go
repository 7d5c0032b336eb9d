// Copyright 2025 The GoxLang Authors
// This file is part of GoxLang.
//
// GoxLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package diag accumulates lexical and syntax diagnostics.
//
// The lexer and parser share one Sink per run, so a single pass surfaces
// every problem in detection order. Diagnostics carry a message and the
// source line; a diagnostic raised past the last token uses the EndOfFile
// sentinel and renders as "end of file" wherever a line is shown.
package diag

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// EndOfFile is the Line sentinel for diagnostics recorded when no token
// remains.
const EndOfFile = 0

// Diagnostic is one recorded error.
type Diagnostic struct {
	Message string
	Line    int
}

// String renders the diagnostic in the CLI form "<message> (line <line>)".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s (line %s)", d.Message, d.lineText())
}

// MarshalJSON renders the diagnostic as {"message": ..., "line": ...} with
// the line as a number, or the string "end of file" for the sentinel.
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	out := struct {
		Message string      `json:"message"`
		Line    interface{} `json:"line"`
	}{Message: d.Message, Line: d.Line}
	if d.Line == EndOfFile {
		out.Line = "end of file"
	}
	return json.Marshal(out)
}

func (d Diagnostic) lineText() string {
	if d.Line == EndOfFile {
		return "end of file"
	}
	return strconv.Itoa(d.Line)
}

// Sink collects diagnostics in detection order. No deduplication, no
// severity levels. The zero value is ready to use.
type Sink struct {
	diags []Diagnostic
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Record appends a diagnostic. Pass EndOfFile as the line for errors raised
// when the token stream is exhausted.
func (s *Sink) Record(message string, line int) {
	s.diags = append(s.diags, Diagnostic{Message: message, Line: line})
}

// HasErrors reports whether any diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	return len(s.diags) > 0
}

// All returns the recorded diagnostics, insertion order = detection order.
func (s *Sink) All() []Diagnostic {
	return s.diags
}
