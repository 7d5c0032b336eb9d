// Copyright 2025 The GoxLang Authors
// This file is part of GoxLang.
//
// GoxLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser implements the recursive-descent parser for GoxLang.
//
// Design overview:
//
//   - One procedure per grammar rule; precedence is encoded in the rule
//     chain (logic_or down to primary) rather than an operator table.
//   - Errors are collected in a diag.Sink rather than aborting. A failed
//     expectation records a diagnostic WITHOUT consuming the offending
//     token, and the caller continues with best-effort defaults; a failed
//     sub-expression is a nil child in the tree.
//   - Recovery at statement level skips exactly one token per unrecognized
//     statement start, so the cursor strictly advances and any finite token
//     sequence terminates.
//   - One token of lookahead separates a call statement from an assignment.
package parser

import (
	"fmt"
	"strconv"

	"github.com/goxlang/gox/lang/ast"
	"github.com/goxlang/gox/lang/diag"
	"github.com/goxlang/gox/lang/lexer"
	"github.com/goxlang/gox/lang/token"
)

// Parser holds the mutable state for a single parse run: the token cursor and
// the diagnostic sink. The parser owns the cursor exclusively until Parse
// returns.
type Parser struct {
	stream *token.Stream
	sink   *diag.Sink
}

func newParser(tokens []token.Token, sink *diag.Sink) *Parser {
	return &Parser{stream: token.NewStream(tokens), sink: sink}
}

// Parse runs the parser over a materialized token sequence and returns the
// program tree. Syntax errors are recorded in sink; the returned tree is
// partial whenever sink has errors.
func Parse(tokens []token.Token, sink *diag.Sink) *ast.Program {
	return newParser(tokens, sink).parseProgram()
}

// ParseSource tokenizes source text and parses it. Lexical and syntactic
// diagnostics land in the same sink, in detection order.
func ParseSource(src string, sink *diag.Sink) *ast.Program {
	return Parse(lexer.New(src, sink).Tokenize(), sink)
}

// ---------------------------------------------------------------------------
// Token navigation helpers
// ---------------------------------------------------------------------------

// cur returns the current token, or the zero token when the stream is
// exhausted.
func (p *Parser) cur() token.Token {
	tok, _ := p.stream.Current()
	return tok
}

// eof reports whether the stream is exhausted.
func (p *Parser) eof() bool {
	_, ok := p.stream.Current()
	return !ok
}

// curIs reports whether the current token has the given type.
func (p *Parser) curIs(typ token.Type) bool {
	tok, ok := p.stream.Current()
	return ok && tok.Type == typ
}

// curIsAny reports whether the current token has one of the given types.
func (p *Parser) curIsAny(types ...token.Type) bool {
	tok, ok := p.stream.Current()
	if !ok {
		return false
	}
	for _, t := range types {
		if tok.Type == t {
			return true
		}
	}
	return false
}

// peekIs reports whether the token after the current one has the given type.
func (p *Parser) peekIs(typ token.Type) bool {
	tok, ok := p.stream.Peek(1)
	return ok && tok.Type == typ
}

// advance moves the cursor forward one token.
func (p *Parser) advance() { p.stream.Advance() }

// curLine returns the current token's line, or the end-of-input sentinel.
func (p *Parser) curLine() int {
	if tok, ok := p.stream.Current(); ok {
		return tok.Line
	}
	return diag.EndOfFile
}

// expect consumes and returns the current token if it matches typ. Otherwise
// it records message (or "Expected <TYPE>" when message is empty) at the
// current line and returns the zero token, ILLEGAL-typed, WITHOUT consuming
// anything. Parsing always continues after a failed expect.
func (p *Parser) expect(typ token.Type, message string) (token.Token, bool) {
	if tok, ok := p.stream.Current(); ok && tok.Type == typ {
		p.advance()
		return tok, true
	}
	if message == "" {
		message = fmt.Sprintf("Expected %s", typ)
	}
	p.sink.Record(message, p.curLine())
	return token.Token{}, false
}

// ---------------------------------------------------------------------------
// Program and statements
// ---------------------------------------------------------------------------

// program = statement* ;
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.eof() {
		if stmt := p.parseStatement(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

// parseStatement dispatches on the leading token. A leading identifier uses
// one token of lookahead: '(' selects the call statement, anything else the
// assignment. An unrecognized leading token records
// "Unexpected token type: <TYPE>" and is skipped.
func (p *Parser) parseStatement() ast.Statement {
	tok, ok := p.stream.Current()
	if !ok {
		return nil
	}

	switch tok.Type {
	case token.IMPORT:
		return p.parseImport()
	case token.VAR, token.CONST:
		stmt := p.parseDeclaration()
		p.expect(token.SEMI, "Missing ';' after declaration")
		return stmt
	case token.PRINT:
		return p.parsePrint()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FUNC:
		return p.parseFunctionDecl()
	case token.RETURN:
		return p.parseReturn()
	case token.ID:
		if p.peekIs(token.LPAREN) {
			return p.parseCallStatement()
		}
		return p.parseAssignment()
	default:
		p.sink.Record(fmt.Sprintf("Unexpected token type: %s", tok.Type), tok.Line)
		p.advance()
		return nil
	}
}

// parseBlock parses statements until '}' or end of input. Failed statements
// are dropped; the rules they came from have already recorded diagnostics.
func (p *Parser) parseBlock() []ast.Statement {
	var stmts []ast.Statement
	for !p.eof() && !p.curIs(token.RBRACE) {
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// import = 'import' ID ';' ;
func (p *Parser) parseImport() ast.Statement {
	tok := p.cur() // 'import'
	p.advance()

	nameTok, ok := p.expect(token.ID, "Expected module name after IMPORT")
	if !ok {
		return nil
	}
	p.expect(token.SEMI, "Missing ';' after import declaration")
	return &ast.ImportDecl{Token: tok, ModuleName: nameTok.Literal}
}

// decl = ('var'|'const') ID [ID] ['=' expression] ;
//
// The rule stops before the trailing semicolon; the statement dispatcher
// consumes exactly one ';'. A const accepts the optional type annotation but
// its node carries no field for it.
func (p *Parser) parseDeclaration() ast.Statement {
	tok := p.cur() // 'var' or 'const'
	p.advance()

	nameTok, _ := p.expect(token.ID, "Expected identifier in declaration")

	declaredType := ""
	if p.curIs(token.ID) {
		declaredType = p.cur().Literal
		p.advance()
	}

	var value ast.Expression
	if p.curIs(token.ASSIGN) {
		p.advance()
		value = p.parseExpression()
	}

	if tok.Type == token.CONST {
		return &ast.ConstantDecl{Token: tok, Name: nameTok.Literal, Value: value}
	}
	return &ast.VariableDecl{
		Token:        tok,
		Name:         nameTok.Literal,
		DeclaredType: declaredType,
		InitialValue: value,
	}
}

// print = 'print' expression ';' ;
func (p *Parser) parsePrint() *ast.Print {
	tok := p.cur() // 'print'
	p.advance()

	expr := p.parseExpression()
	p.expect(token.SEMI, "Missing ';' after print statement")
	return &ast.Print{Token: tok, Expr: expr}
}

// assignment = ID '=' expression ';' ;
func (p *Parser) parseAssignment() *ast.Assignment {
	tok := p.cur() // the target ID
	p.advance()

	target := &ast.Location{Token: tok, Name: tok.Literal}
	p.expect(token.ASSIGN, "Missing '=' in assignment")
	expr := p.parseExpression()
	p.expect(token.SEMI, "Missing ';' after assignment")
	return &ast.Assignment{Token: tok, Target: target, Expr: expr}
}

// if = 'if' expression '{' statement* '}' ['else' '{' statement* '}'] ;
func (p *Parser) parseIf() *ast.If {
	tok := p.cur() // 'if'
	p.advance()

	cond := p.parseExpression()
	p.expect(token.LBRACE, "Missing '{' after if condition")
	consequence := p.parseBlock()
	p.expect(token.RBRACE, "Missing '}' at the end of if block")

	var alternative []ast.Statement
	if p.curIs(token.ELSE) {
		p.advance()
		p.expect(token.LBRACE, "Missing '{' after else")
		alternative = p.parseBlock()
		p.expect(token.RBRACE, "Missing '}' at the end of else block")
	}

	return &ast.If{Token: tok, Condition: cond, Consequence: consequence, Alternative: alternative}
}

// while = 'while' expression '{' statement* '}' ;
func (p *Parser) parseWhile() *ast.While {
	tok := p.cur() // 'while'
	p.advance()

	cond := p.parseExpression()
	p.expect(token.LBRACE, "Missing '{' after while condition")
	body := p.parseBlock()
	p.expect(token.RBRACE, "Missing '}' at the end of while block")

	return &ast.While{Token: tok, Condition: cond, Body: body}
}

// func = 'func' ID '(' (ID (',' ID)*)? ')' '{' statement* '}' ;
//
// Parameters are bare identifiers; no parameter types and no return type in
// the grammar.
func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	tok := p.cur() // 'func'
	p.advance()

	nameTok, _ := p.expect(token.ID, "Expected function name after FUNC keyword")
	p.expect(token.LPAREN, "Expected '(' after function name in declaration")

	var params []*ast.Parameter
	if !p.eof() && !p.curIs(token.RPAREN) {
		if param := p.parseParameter(); param != nil {
			params = append(params, param)
		}
		for p.curIs(token.COMMA) {
			p.advance()
			if param := p.parseParameter(); param != nil {
				params = append(params, param)
			}
		}
	}
	p.expect(token.RPAREN, "Expected ')' after parameters in function declaration")

	p.expect(token.LBRACE, "Expected '{' to start function body")
	body := p.parseBlock()
	p.expect(token.RBRACE, "Expected '}' to end function body")

	return &ast.FunctionDecl{Token: tok, Name: nameTok.Literal, Params: params, Body: body}
}

func (p *Parser) parseParameter() *ast.Parameter {
	tok, ok := p.expect(token.ID, "Expected parameter name")
	if !ok {
		return nil
	}
	return &ast.Parameter{Token: tok, Name: tok.Literal}
}

// return = 'return' expression ';' ;
func (p *Parser) parseReturn() *ast.Return {
	tok := p.cur() // 'return'
	p.advance()

	expr := p.parseExpression()
	p.expect(token.SEMI, "Missing ';' after return statement")
	return &ast.Return{Token: tok, Expr: expr}
}

// call statement = ID '(' args ')' ';' ;
//
// The dispatcher has already seen ID '(' through lookahead, so the two
// leading expects only fail on streams not produced by the dispatcher.
func (p *Parser) parseCallStatement() *ast.FunctionCall {
	nameTok, _ := p.expect(token.ID, "Expected function name")
	p.expect(token.LPAREN, "Expected '(' after function name")
	call := &ast.FunctionCall{Token: nameTok, Name: nameTok.Literal, Args: p.parseCallArgs()}
	p.expect(token.SEMI, "Missing ';' after function call")
	return call
}

// parseCallArgs parses "(expression (',' expression)*)? ')'" after the
// opening parenthesis has been consumed. Shared by the call statement and the
// call form of primary, so both spellings of a call are recognized the same
// way. A failed argument stays in the list as nil to keep the written arity.
func (p *Parser) parseCallArgs() []ast.Expression {
	var args []ast.Expression
	if !p.eof() && !p.curIs(token.RPAREN) {
		args = append(args, p.parseExpression())
		for p.curIs(token.COMMA) {
			p.advance()
			args = append(args, p.parseExpression())
		}
	}
	p.expect(token.RPAREN, "Expected ')' after function arguments")
	return args
}

// ---------------------------------------------------------------------------
// Expressions — precedence ladder
// ---------------------------------------------------------------------------

// expression = logic_or ;
func (p *Parser) parseExpression() ast.Expression { return p.parseLogicOr() }

// parseBinaryLevel parses one left-associative precedence level:
// next (op next)*.
func (p *Parser) parseBinaryLevel(next func() ast.Expression, ops ...token.Type) ast.Expression {
	left := next()
	for p.curIsAny(ops...) {
		opTok := p.cur()
		p.advance()
		right := next()
		left = &ast.BinOp{Token: opTok, Operator: opTok.Literal, Left: left, Right: right}
	}
	return left
}

// logic_or = logic_and ('||' logic_and)* ;
func (p *Parser) parseLogicOr() ast.Expression {
	return p.parseBinaryLevel(p.parseLogicAnd, token.LOR)
}

// logic_and = comparison ('&&' comparison)* ;
func (p *Parser) parseLogicAnd() ast.Expression {
	return p.parseBinaryLevel(p.parseComparison, token.LAND)
}

// comparison = term (('<'|'>'|'<='|'>='|'=='|'!=') term)* ;
func (p *Parser) parseComparison() ast.Expression {
	return p.parseBinaryLevel(p.parseTerm,
		token.LT, token.GT, token.LE, token.GE, token.EQ, token.NE)
}

// term = factor (('+'|'-') factor)* ;
func (p *Parser) parseTerm() ast.Expression {
	return p.parseBinaryLevel(p.parseFactor, token.PLUS, token.MINUS)
}

// factor = unary (('*'|'/'|'%'|'//') unary)* ;
func (p *Parser) parseFactor() ast.Expression {
	return p.parseBinaryLevel(p.parseUnary,
		token.TIMES, token.DIVIDE, token.MOD, token.INT_DIV)
}

// unary = ('+'|'-'|'!'|'`') primary | primary ;
//
// The operand is a primary, not a nested unary.
func (p *Parser) parseUnary() ast.Expression {
	if p.curIsAny(token.PLUS, token.MINUS, token.NOT, token.DEREF) {
		opTok := p.cur()
		p.advance()
		return &ast.UnaryOp{Token: opTok, Operator: opTok.Literal, Operand: p.parsePrimary()}
	}
	return p.parsePrimary()
}

// primary = INTEGER | FLOAT | STRING | TRUE | FALSE
//         | '(' expression ')'
//         | ID ['(' args ')'] ;
//
// A token that starts no expression records "Invalid expression" at its line
// (or at end of file when the stream is exhausted), is skipped, and yields
// nil.
func (p *Parser) parsePrimary() ast.Expression {
	tok, ok := p.stream.Current()
	if !ok {
		p.sink.Record("Invalid expression", diag.EndOfFile)
		return nil
	}

	switch tok.Type {
	case token.INTEGER:
		p.advance()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.sink.Record(fmt.Sprintf("Integer literal %q overflows int64", tok.Literal), tok.Line)
		}
		return &ast.Integer{Token: tok, Value: v}

	case token.FLOAT:
		p.advance()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.sink.Record(fmt.Sprintf("Float literal %q out of range", tok.Literal), tok.Line)
		}
		return &ast.Float{Token: tok, Value: v}

	case token.STRING:
		// The lexer already decoded escapes; Literal is the content.
		p.advance()
		return &ast.String{Token: tok, Value: tok.Literal}

	case token.TRUE:
		p.advance()
		return &ast.Boolean{Token: tok, Value: true}

	case token.FALSE:
		p.advance()
		return &ast.Boolean{Token: tok, Value: false}

	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN, "Missing closing parenthesis")
		return expr

	case token.ID:
		p.advance()
		if p.curIs(token.LPAREN) {
			p.advance()
			return &ast.FunctionCall{Token: tok, Name: tok.Literal, Args: p.parseCallArgs()}
		}
		return &ast.Location{Token: tok, Name: tok.Literal}

	default:
		p.sink.Record("Invalid expression", tok.Line)
		p.advance()
		return nil
	}
}
