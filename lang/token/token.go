// Copyright 2025 The GoxLang Authors
// This file is part of GoxLang.
//
// GoxLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package token defines the lexical token types for the GoxLang language.
//
// Token types render as their grammar tag ("ID", "LBRACE", "INT_DIV"); the
// Literal field carries the matched source text ("x", "{", "//"). There is
// no EOF token: end of input is the end of the stream.
package token

import (
	"fmt"
	"strings"
)

// Token represents a lexical token.
type Token struct {
	Type    Type
	Literal string
	Line    int
}

// Type is the set of lexical token types.
type Type int

const (
	// Special tokens
	ILLEGAL Type = iota

	// Literals
	ID      // x, counter
	INTEGER // 42
	FLOAT   // 3.14
	STRING  // "hello"

	// Operators
	PLUS    // +
	MINUS   // -
	TIMES   // *
	DIVIDE  // /
	MOD     // %
	INT_DIV // //
	LT      // <
	GT      // >
	LE      // <=
	GE      // >=
	EQ      // ==
	NE      // !=
	LAND    // &&
	LOR     // ||
	NOT     // !
	DEREF   // `

	// Assignment
	ASSIGN // =

	// Delimiters
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	SEMI   // ;
	COMMA  // ,

	// Keywords
	keywordStart
	IMPORT // import
	VAR    // var
	CONST  // const
	PRINT  // print
	IF     // if
	ELSE   // else
	WHILE  // while
	FUNC   // func
	RETURN // return
	TRUE   // true
	FALSE  // false
	keywordEnd
)

var tokenNames = [...]string{
	ILLEGAL: "ILLEGAL",

	ID:      "ID",
	INTEGER: "INTEGER",
	FLOAT:   "FLOAT",
	STRING:  "STRING",

	PLUS:    "PLUS",
	MINUS:   "MINUS",
	TIMES:   "TIMES",
	DIVIDE:  "DIVIDE",
	MOD:     "MOD",
	INT_DIV: "INT_DIV",
	LT:      "LT",
	GT:      "GT",
	LE:      "LE",
	GE:      "GE",
	EQ:      "EQ",
	NE:      "NE",
	LAND:    "LAND",
	LOR:     "LOR",
	NOT:     "NOT",
	DEREF:   "DEREF",

	ASSIGN: "ASSIGN",

	LPAREN: "LPAREN",
	RPAREN: "RPAREN",
	LBRACE: "LBRACE",
	RBRACE: "RBRACE",
	SEMI:   "SEMI",
	COMMA:  "COMMA",

	IMPORT: "IMPORT",
	VAR:    "VAR",
	CONST:  "CONST",
	PRINT:  "PRINT",
	IF:     "IF",
	ELSE:   "ELSE",
	WHILE:  "WHILE",
	FUNC:   "FUNC",
	RETURN: "RETURN",
	TRUE:   "TRUE",
	FALSE:  "FALSE",
}

// String returns the grammar tag of a token type.
func (t Type) String() string {
	if int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsKeyword returns true if the token is a keyword.
func (t Type) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsOperator returns true if the token is an operator.
func (t Type) IsOperator() bool {
	return t >= PLUS && t <= DEREF
}

// IsLiteral returns true if the token is a literal value or identifier.
func (t Type) IsLiteral() bool {
	return t >= ID && t <= STRING
}

// keywords maps keyword strings to token types. Every GoxLang keyword is
// the lowercase spelling of its grammar tag.
var keywords map[string]Type

func init() {
	keywords = make(map[string]Type)
	for i := keywordStart + 1; i < keywordEnd; i++ {
		keywords[strings.ToLower(tokenNames[i])] = i
	}
}

// LookupIdent checks if an identifier is a keyword.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return ID
}
