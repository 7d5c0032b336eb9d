// Copyright 2025 The GoxLang Authors
// This file is part of GoxLang.
//
// GoxLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements a single-pass, no-backtracking lexer for the
// GoxLang language.
//
// Design notes:
//   - ASCII-only input
//   - single pass, no backtracking
//   - /* */ block comments only: the "//" spelling is the integer-division
//     operator, so there are no line comments
//   - string literals decode their escape sequences at lexing time; the
//     token literal is the string content without quotes
//   - lexical errors are recorded in the shared diagnostic sink and the
//     offending input is skipped, so scanning always reaches the end
package lexer

import (
	"fmt"

	"github.com/goxlang/gox/lang/diag"
	"github.com/goxlang/gox/lang/token"
)

// Lexer holds the state for a single-pass tokenization run.
type Lexer struct {
	input []byte
	sink  *diag.Sink

	// pos is the index into input of the next byte to be loaded into ch.
	// After advance(), ch == input[pos-1] and pos points one past it.
	pos  int
	line int // 1-based current line number

	ch byte // current character; 0 when past end
}

// New creates a new Lexer over the input. Lexical diagnostics are recorded
// in sink, which the parser typically shares so one run reports lexical and
// syntactic problems together.
func New(input string, sink *diag.Sink) *Lexer {
	l := &Lexer{
		input: []byte(input),
		sink:  sink,
		line:  1,
	}
	l.advance() // prime l.ch with the first byte
	return l
}

// advance moves to the next byte in the input, updating line tracking.
// When the end of input is reached, ch is set to 0.
func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
	}
	if l.pos >= len(l.input) {
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
	l.pos++
}

// peek returns the byte after the current character without consuming it.
// Returns 0 if at or past end.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// makeToken constructs a token with the given type, literal, and line.
func makeToken(typ token.Type, literal string, line int) token.Token {
	return token.Token{Type: typ, Literal: literal, Line: line}
}

// skipWhitespace consumes space, tab, carriage return, and newline characters.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.advance()
	}
}

// NextToken scans and returns the next token from the input. Comments and
// malformed input are skipped (the latter after recording a diagnostic), so
// the returned ok is false only when the input is exhausted.
func (l *Lexer) NextToken() (token.Token, bool) {
	for {
		l.skipWhitespace()

		line := l.line
		ch := l.ch

		if ch == 0 {
			return token.Token{}, false
		}

		l.advance() // consume ch; from here on, l.ch is the character AFTER ch

		switch {
		// -------------------------------------------------------------------------
		// Identifiers and keywords
		// -------------------------------------------------------------------------
		case isIdentStart(ch):
			lit := l.readIdentFromFirst(ch)
			typ := token.LookupIdent(lit)
			return makeToken(typ, lit, line), true

		// -------------------------------------------------------------------------
		// Numeric literals
		// -------------------------------------------------------------------------
		case isDigit(ch):
			typ, lit := l.readNumberFromFirst(ch)
			return makeToken(typ, lit, line), true

		case ch == '.':
			// A float may start with the dot: .5
			if isDigit(l.ch) {
				lit := l.readFractionFromDot()
				return makeToken(token.FLOAT, lit, line), true
			}
			l.sink.Record("Illegal character '.'", line)

		// -------------------------------------------------------------------------
		// String literals
		// -------------------------------------------------------------------------
		case ch == '"':
			// The opening '"' has been consumed; read and decode the rest.
			lit, ok := l.readStringBody()
			if !ok {
				l.sink.Record("Unterminated string literal", line)
				continue
			}
			return makeToken(token.STRING, lit, line), true

		// -------------------------------------------------------------------------
		// Slash: division, integer division, or block comment
		// -------------------------------------------------------------------------
		case ch == '/':
			switch l.ch {
			case '/':
				l.advance() // consume second '/'
				return makeToken(token.INT_DIV, "//", line), true
			case '*':
				if !l.skipBlockComment() {
					l.sink.Record("Unterminated block comment", line)
				}
			default:
				return makeToken(token.DIVIDE, "/", line), true
			}

		// -------------------------------------------------------------------------
		// Arithmetic operators
		// -------------------------------------------------------------------------
		case ch == '+':
			return makeToken(token.PLUS, "+", line), true
		case ch == '-':
			return makeToken(token.MINUS, "-", line), true
		case ch == '*':
			return makeToken(token.TIMES, "*", line), true
		case ch == '%':
			return makeToken(token.MOD, "%", line), true

		// -------------------------------------------------------------------------
		// Logical operators
		// -------------------------------------------------------------------------
		case ch == '&':
			if l.ch == '&' {
				l.advance()
				return makeToken(token.LAND, "&&", line), true
			}
			l.sink.Record("Illegal character '&'", line)

		case ch == '|':
			if l.ch == '|' {
				l.advance()
				return makeToken(token.LOR, "||", line), true
			}
			l.sink.Record("Illegal character '|'", line)

		case ch == '!':
			if l.ch == '=' {
				l.advance()
				return makeToken(token.NE, "!=", line), true
			}
			return makeToken(token.NOT, "!", line), true

		case ch == '`':
			return makeToken(token.DEREF, "`", line), true

		// -------------------------------------------------------------------------
		// Comparison and assignment operators
		// -------------------------------------------------------------------------
		case ch == '=':
			if l.ch == '=' {
				l.advance()
				return makeToken(token.EQ, "==", line), true
			}
			return makeToken(token.ASSIGN, "=", line), true

		case ch == '<':
			if l.ch == '=' {
				l.advance()
				return makeToken(token.LE, "<=", line), true
			}
			return makeToken(token.LT, "<", line), true

		case ch == '>':
			if l.ch == '=' {
				l.advance()
				return makeToken(token.GE, ">=", line), true
			}
			return makeToken(token.GT, ">", line), true

		// -------------------------------------------------------------------------
		// Single-character punctuation
		// -------------------------------------------------------------------------
		case ch == '(':
			return makeToken(token.LPAREN, "(", line), true
		case ch == ')':
			return makeToken(token.RPAREN, ")", line), true
		case ch == '{':
			return makeToken(token.LBRACE, "{", line), true
		case ch == '}':
			return makeToken(token.RBRACE, "}", line), true
		case ch == ';':
			return makeToken(token.SEMI, ";", line), true
		case ch == ',':
			return makeToken(token.COMMA, ",", line), true

		default:
			l.sink.Record(fmt.Sprintf("Illegal character %q", ch), line)
		}
	}
}

// Tokenize returns all tokens produced by repeated calls to NextToken.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok, ok := l.NextToken()
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

// ---------------------------------------------------------------------------
// Internal readers — each assumes the first character has already been
// consumed by the advance() call inside NextToken.
// ---------------------------------------------------------------------------

// readIdentFromFirst builds an identifier literal starting with the already-
// consumed byte `first`, then consuming subsequent ident-continue bytes.
func (l *Lexer) readIdentFromFirst(first byte) string {
	buf := make([]byte, 1, 16)
	buf[0] = first
	for isIdentContinue(l.ch) {
		buf = append(buf, l.ch)
		l.advance()
	}
	return string(buf)
}

// readNumberFromFirst parses an integer or float literal given the already-
// consumed first digit `first`.
//
//   - digits "." [digits]  →  FLOAT
//   - digits               →  INTEGER
func (l *Lexer) readNumberFromFirst(first byte) (token.Type, string) {
	buf := make([]byte, 1, 24)
	buf[0] = first

	for isDigit(l.ch) {
		buf = append(buf, l.ch)
		l.advance()
	}

	// Float: a '.' with the integer part already in hand. The fractional
	// digits may be absent ("3." is a valid float).
	if l.ch == '.' {
		buf = append(buf, '.')
		l.advance() // consume '.'
		for isDigit(l.ch) {
			buf = append(buf, l.ch)
			l.advance()
		}
		return token.FLOAT, string(buf)
	}

	return token.INTEGER, string(buf)
}

// readFractionFromDot parses a float literal of the form ".digits" after the
// leading dot has been consumed. l.ch is known to be a digit.
func (l *Lexer) readFractionFromDot() string {
	buf := make([]byte, 1, 24)
	buf[0] = '.'
	for isDigit(l.ch) {
		buf = append(buf, l.ch)
		l.advance()
	}
	return string(buf)
}

// readStringBody reads the content of a string literal after the opening '"'
// has been consumed. Escape sequences are decoded; the returned literal
// carries neither quote. The bool is false when the string was unterminated
// (end of input or a raw newline before the closing quote).
func (l *Lexer) readStringBody() (string, bool) {
	buf := make([]byte, 0, 32)
	for {
		switch l.ch {
		case 0, '\n':
			// Unterminated string.
			return string(buf), false
		case '\\':
			l.advance() // consume '\'
			if l.ch == 0 {
				return string(buf), false
			}
			switch l.ch {
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case '\\':
				buf = append(buf, '\\')
			case '"':
				buf = append(buf, '"')
			default:
				// Unknown escape: keep the character as-is.
				buf = append(buf, l.ch)
			}
			l.advance() // consume the escaped character
		case '"':
			l.advance() // consume closing '"'
			return string(buf), true
		default:
			buf = append(buf, l.ch)
			l.advance()
		}
	}
}

// skipBlockComment consumes a /* ... */ block comment. The opening '/' has
// already been consumed; l.ch is currently '*'. Returns false when the
// comment is unterminated.
func (l *Lexer) skipBlockComment() bool {
	l.advance() // consume the '*' that opened the block comment
	for {
		switch {
		case l.ch == 0:
			return false
		case l.ch == '*' && l.peek() == '/':
			l.advance() // consume '*'
			l.advance() // consume '/'
			return true
		default:
			l.advance()
		}
	}
}

// ---------------------------------------------------------------------------
// Character classification helpers
// ---------------------------------------------------------------------------

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
