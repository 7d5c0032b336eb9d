// Copyright 2025 The GoxLang Authors
// This file is part of GoxLang.
//
// GoxLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package token

// Stream is a read-only cursor over a fully materialized token sequence.
// It offers sequential read-ahead only: the current token, bounded peeking,
// and single-step advancing. There is no rewind.
type Stream struct {
	tokens []Token
	pos    int
}

// NewStream wraps a token slice. The slice is not copied; callers must not
// mutate it while the stream is in use.
func NewStream(tokens []Token) *Stream {
	return &Stream{tokens: tokens}
}

// Current returns the token under the cursor, or false when the stream is
// exhausted.
func (s *Stream) Current() (Token, bool) {
	if s.pos < len(s.tokens) {
		return s.tokens[s.pos], true
	}
	return Token{}, false
}

// Peek returns the token offset positions past the cursor without consuming
// anything, or false when that position is past the end. Peek(0) is Current.
func (s *Stream) Peek(offset int) (Token, bool) {
	i := s.pos + offset
	if i >= 0 && i < len(s.tokens) {
		return s.tokens[i], true
	}
	return Token{}, false
}

// Advance moves the cursor forward one token. Advancing past the end is a
// no-op; the cursor never exceeds Len.
func (s *Stream) Advance() {
	if s.pos < len(s.tokens) {
		s.pos++
	}
}

// Pos returns the cursor position.
func (s *Stream) Pos() int { return s.pos }

// Len returns the total number of tokens in the stream.
func (s *Stream) Len() int { return len(s.tokens) }
