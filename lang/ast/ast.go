// Copyright 2025 The GoxLang Authors
// This file is part of GoxLang.
//
// GoxLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the Abstract Syntax Tree for the GoxLang language.
//
// Design overview:
//
//   - All AST nodes implement the Node interface via TokenLiteral and String.
//   - Expressions and Statements each have a marker interface that embeds
//     Node to enable type-safe dispatch.
//   - Nodes carry the token.Token that introduced them so diagnostics and
//     debug output can reference source lines.
//   - Nodes are plain data: created during parsing of their grammar rule and
//     never mutated afterward. The tree has exclusive parent ownership — no
//     node is shared between parents.
//   - A failed sub-parse leaves a nil Expression behind; String methods
//     tolerate that so partial trees can still be printed.
package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goxlang/gox/lang/token"
)

// ---------------------------------------------------------------------------
// Core interfaces
// ---------------------------------------------------------------------------

// Node is the base interface that every AST node must implement.
type Node interface {
	// TokenLiteral returns the literal value of the token that originated
	// this node. Used primarily for debugging and testing.
	TokenLiteral() string

	// String returns a human-readable, source-like representation of the
	// node suitable for unit tests and debug output.
	String() string
}

// Expression is a marker interface for all expression nodes.
// Every Expression is also a Node.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a marker interface for all statement nodes.
// Every Statement is also a Node.
type Statement interface {
	Node
	statementNode()
}

// nodeText renders a child node, tolerating the nil children a failed parse
// leaves behind.
func nodeText(n Node) string {
	if n == nil {
		return "<missing>"
	}
	return n.String()
}

// blockText renders a statement list as "{ s1 s2 ... }".
func blockText(stmts []Statement) string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range stmts {
		out.WriteString(nodeText(s))
		out.WriteByte(' ')
	}
	out.WriteByte('}')
	return out.String()
}

// ---------------------------------------------------------------------------
// Program — root of every parse tree
// ---------------------------------------------------------------------------

// Program is the top-level AST node. It holds all statements found in a
// source file, in source order.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(nodeText(s))
		out.WriteByte('\n')
	}
	return out.String()
}

// ---------------------------------------------------------------------------
// Literal expressions
// ---------------------------------------------------------------------------

// Integer is an integer literal: 42.
type Integer struct {
	Token token.Token // the INTEGER token
	Value int64
}

func (e *Integer) expressionNode()      {}
func (e *Integer) TokenLiteral() string { return e.Token.Literal }
func (e *Integer) String() string       { return strconv.FormatInt(e.Value, 10) }

// Float is a floating-point literal: 3.14.
type Float struct {
	Token token.Token // the FLOAT token
	Value float64
}

func (e *Float) expressionNode()      {}
func (e *Float) TokenLiteral() string { return e.Token.Literal }
func (e *Float) String() string       { return strconv.FormatFloat(e.Value, 'g', -1, 64) }

// Boolean is a boolean literal: true or false.
type Boolean struct {
	Token token.Token // TRUE or FALSE
	Value bool
}

func (e *Boolean) expressionNode()      {}
func (e *Boolean) TokenLiteral() string { return e.Token.Literal }
func (e *Boolean) String() string       { return strconv.FormatBool(e.Value) }

// String is a string literal: "hello". The value holds the decoded content
// without quotes.
type String struct {
	Token token.Token // the STRING token
	Value string
}

func (e *String) expressionNode()      {}
func (e *String) TokenLiteral() string { return e.Token.Literal }
func (e *String) String() string       { return strconv.Quote(e.Value) }

// ---------------------------------------------------------------------------
// Compound expressions
// ---------------------------------------------------------------------------

// Location is a named storage reference: a bare identifier used as a value
// or as an assignment target.
type Location struct {
	Token token.Token // the ID token
	Name  string
}

func (e *Location) expressionNode()      {}
func (e *Location) TokenLiteral() string { return e.Token.Literal }
func (e *Location) String() string       { return e.Name }

// BinOp is a binary infix expression: x + y, a && b.
type BinOp struct {
	Token    token.Token // the operator token
	Operator string      // "+", "-", "*", "/", "%", "//", "<", ">", "<=", ">=", "==", "!=", "&&", "||"
	Left     Expression
	Right    Expression
}

func (e *BinOp) expressionNode()      {}
func (e *BinOp) TokenLiteral() string { return e.Token.Literal }
func (e *BinOp) String() string {
	return "(" + nodeText(e.Left) + " " + e.Operator + " " + nodeText(e.Right) + ")"
}

// UnaryOp is a unary prefix expression: -x, !flag, `addr.
type UnaryOp struct {
	Token    token.Token // the operator token
	Operator string      // "+", "-", "!", "`"
	Operand  Expression
}

func (e *UnaryOp) expressionNode()      {}
func (e *UnaryOp) TokenLiteral() string { return e.Token.Literal }
func (e *UnaryOp) String() string       { return "(" + e.Operator + nodeText(e.Operand) + ")" }

// FunctionCall is a call: name(arg1, arg2). It appears both as an expression
// and, followed by ';', as a statement.
type FunctionCall struct {
	Token token.Token // the ID token of the callee
	Name  string
	Args  []Expression
}

func (e *FunctionCall) expressionNode()      {}
func (e *FunctionCall) statementNode()       {}
func (e *FunctionCall) TokenLiteral() string { return e.Token.Literal }
func (e *FunctionCall) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = nodeText(a)
	}
	return e.Name + "(" + strings.Join(parts, ", ") + ")"
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// Print is a print statement: print expression;
type Print struct {
	Token token.Token // 'print'
	Expr  Expression
}

func (s *Print) statementNode()       {}
func (s *Print) TokenLiteral() string { return s.Token.Literal }
func (s *Print) String() string       { return "print " + nodeText(s.Expr) + ";" }

// Assignment is an assignment statement: target = expression;
type Assignment struct {
	Token  token.Token // the ID token of the target
	Target *Location
	Expr   Expression
}

func (s *Assignment) statementNode()       {}
func (s *Assignment) TokenLiteral() string { return s.Token.Literal }
func (s *Assignment) String() string {
	return nodeText(s.Target) + " = " + nodeText(s.Expr) + ";"
}

// If is a conditional statement: if cond { ... } else { ... }. The
// alternative is empty when no else branch is present.
type If struct {
	Token       token.Token // 'if'
	Condition   Expression
	Consequence []Statement
	Alternative []Statement
}

func (s *If) statementNode()       {}
func (s *If) TokenLiteral() string { return s.Token.Literal }
func (s *If) String() string {
	out := "if " + nodeText(s.Condition) + " " + blockText(s.Consequence)
	if len(s.Alternative) > 0 {
		out += " else " + blockText(s.Alternative)
	}
	return out
}

// While is a loop statement: while cond { ... }.
type While struct {
	Token     token.Token // 'while'
	Condition Expression
	Body      []Statement
}

func (s *While) statementNode()       {}
func (s *While) TokenLiteral() string { return s.Token.Literal }
func (s *While) String() string {
	return "while " + nodeText(s.Condition) + " " + blockText(s.Body)
}

// VariableDecl is a variable declaration: var name [type] [= value];
// Both the declared type and the initial value are optional.
type VariableDecl struct {
	Token        token.Token // 'var'
	Name         string
	DeclaredType string // "" when omitted
	InitialValue Expression
}

func (s *VariableDecl) statementNode()       {}
func (s *VariableDecl) TokenLiteral() string { return s.Token.Literal }
func (s *VariableDecl) String() string {
	var out bytes.Buffer
	out.WriteString("var ")
	out.WriteString(s.Name)
	if s.DeclaredType != "" {
		out.WriteByte(' ')
		out.WriteString(s.DeclaredType)
	}
	if s.InitialValue != nil {
		out.WriteString(" = ")
		out.WriteString(s.InitialValue.String())
	}
	out.WriteByte(';')
	return out.String()
}

// ConstantDecl is a constant declaration: const name = value;
type ConstantDecl struct {
	Token token.Token // 'const'
	Name  string
	Value Expression
}

func (s *ConstantDecl) statementNode()       {}
func (s *ConstantDecl) TokenLiteral() string { return s.Token.Literal }
func (s *ConstantDecl) String() string {
	return "const " + s.Name + " = " + nodeText(s.Value) + ";"
}

// FunctionDecl is a function definition: func name(p1, p2) { ... }.
// Parameters are bare identifiers; the return type is never populated by the
// current grammar.
type FunctionDecl struct {
	Token      token.Token // 'func'
	Name       string
	Params     []*Parameter
	ReturnType string // "" — reserved, not part of the current grammar
	Body       []Statement
}

func (s *FunctionDecl) statementNode()       {}
func (s *FunctionDecl) TokenLiteral() string { return s.Token.Literal }
func (s *FunctionDecl) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = nodeText(p)
	}
	return "func " + s.Name + "(" + strings.Join(parts, ", ") + ") " + blockText(s.Body)
}

// Parameter is a single function parameter. The declared type is never
// populated by the current grammar.
type Parameter struct {
	Token        token.Token // the ID token
	Name         string
	DeclaredType string // "" — reserved, not part of the current grammar
}

func (p *Parameter) TokenLiteral() string { return p.Token.Literal }
func (p *Parameter) String() string       { return p.Name }

// Return is a return statement: return expression;
type Return struct {
	Token token.Token // 'return'
	Expr  Expression
}

func (s *Return) statementNode()       {}
func (s *Return) TokenLiteral() string { return s.Token.Literal }
func (s *Return) String() string       { return "return " + nodeText(s.Expr) + ";" }

// ImportDecl is an import declaration: import name;
type ImportDecl struct {
	Token      token.Token // 'import'
	ModuleName string
}

func (s *ImportDecl) statementNode()       {}
func (s *ImportDecl) TokenLiteral() string { return s.Token.Literal }
func (s *ImportDecl) String() string       { return "import " + s.ModuleName + ";" }
