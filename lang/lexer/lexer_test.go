// Copyright 2025 The GoxLang Authors
// This file is part of GoxLang.
//
// GoxLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer_test

import (
	"testing"

	"github.com/goxlang/gox/lang/diag"
	"github.com/goxlang/gox/lang/lexer"
	"github.com/goxlang/gox/lang/token"
)

// tokenCase is a single expected token in a table-driven test.
type tokenCase struct {
	typ     token.Type
	literal string
}

// runTokenize lexes input and checks that it produces exactly the expected
// token sequence with no diagnostics.
func runTokenize(t *testing.T, name, input string, want []tokenCase) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Helper()
		sink := diag.NewSink()
		toks := lexer.New(input, sink).Tokenize()

		if sink.HasErrors() {
			for _, d := range sink.All() {
				t.Errorf("unexpected diagnostic: %s", d)
			}
		}
		if len(toks) != len(want) {
			t.Errorf("got %d tokens, want %d", len(toks), len(want))
			for i, tok := range toks {
				t.Logf("  [%d] %s %q", i, tok.Type, tok.Literal)
			}
			return
		}
		for i, w := range want {
			got := toks[i]
			if got.Type != w.typ {
				t.Errorf("token[%d]: type = %s, want %s (literal %q)", i, got.Type, w.typ, got.Literal)
			}
			if got.Literal != w.literal {
				t.Errorf("token[%d]: literal = %q, want %q", i, got.Literal, w.literal)
			}
		}
	})
}

// lexWithErrors lexes input expecting at least one diagnostic.
func lexWithErrors(t *testing.T, input string) ([]token.Token, []diag.Diagnostic) {
	t.Helper()
	sink := diag.NewSink()
	toks := lexer.New(input, sink).Tokenize()
	if !sink.HasErrors() {
		t.Fatalf("expected diagnostics for %q, got none", input)
	}
	return toks, sink.All()
}

// ---------------------------------------------------------------------------
// Single-character operators and delimiters
// ---------------------------------------------------------------------------

func TestSingleCharTokens(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantTyp token.Type
		wantLit string
	}{
		{"plus", "+", token.PLUS, "+"},
		{"minus", "-", token.MINUS, "-"},
		{"times", "*", token.TIMES, "*"},
		{"divide", "/", token.DIVIDE, "/"},
		{"mod", "%", token.MOD, "%"},
		{"not", "!", token.NOT, "!"},
		{"deref", "`", token.DEREF, "`"},
		{"lt", "<", token.LT, "<"},
		{"gt", ">", token.GT, ">"},
		{"assign", "=", token.ASSIGN, "="},
		{"lparen", "(", token.LPAREN, "("},
		{"rparen", ")", token.RPAREN, ")"},
		{"lbrace", "{", token.LBRACE, "{"},
		{"rbrace", "}", token.RBRACE, "}"},
		{"semi", ";", token.SEMI, ";"},
		{"comma", ",", token.COMMA, ","},
	}
	for _, c := range cases {
		runTokenize(t, c.name, c.input, []tokenCase{{c.wantTyp, c.wantLit}})
	}
}

// ---------------------------------------------------------------------------
// Multi-character operators
// ---------------------------------------------------------------------------

func TestMultiCharOperators(t *testing.T) {
	runTokenize(t, "EQ", "==", []tokenCase{{token.EQ, "=="}})
	runTokenize(t, "NE", "!=", []tokenCase{{token.NE, "!="}})
	runTokenize(t, "LE", "<=", []tokenCase{{token.LE, "<="}})
	runTokenize(t, "GE", ">=", []tokenCase{{token.GE, ">="}})
	runTokenize(t, "LAND", "&&", []tokenCase{{token.LAND, "&&"}})
	runTokenize(t, "LOR", "||", []tokenCase{{token.LOR, "||"}})
	runTokenize(t, "INT_DIV", "//", []tokenCase{{token.INT_DIV, "//"}})
}

func TestIntDivIsNotComment(t *testing.T) {
	// "//" is the integer-division operator, never a line comment.
	runTokenize(t, "int_div_expr", "7 // 2", []tokenCase{
		{token.INTEGER, "7"},
		{token.INT_DIV, "//"},
		{token.INTEGER, "2"},
	})
}

// ---------------------------------------------------------------------------
// Numeric literals
// ---------------------------------------------------------------------------

func TestIntegerLiterals(t *testing.T) {
	runTokenize(t, "zero", "0", []tokenCase{{token.INTEGER, "0"}})
	runTokenize(t, "single", "7", []tokenCase{{token.INTEGER, "7"}})
	runTokenize(t, "multi", "42", []tokenCase{{token.INTEGER, "42"}})
	runTokenize(t, "large", "1000000", []tokenCase{{token.INTEGER, "1000000"}})
}

func TestFloatLiterals(t *testing.T) {
	runTokenize(t, "basic", "3.14", []tokenCase{{token.FLOAT, "3.14"}})
	runTokenize(t, "leading_zero", "0.5", []tokenCase{{token.FLOAT, "0.5"}})
	runTokenize(t, "trailing_dot", "3.", []tokenCase{{token.FLOAT, "3."}})
	runTokenize(t, "leading_dot", ".5", []tokenCase{{token.FLOAT, ".5"}})
}

func TestNegativeNumberIsMinusThenInteger(t *testing.T) {
	// The lexer does not produce negative literals; '-' is always MINUS.
	runTokenize(t, "negative", "-42", []tokenCase{
		{token.MINUS, "-"},
		{token.INTEGER, "42"},
	})
}

// ---------------------------------------------------------------------------
// String literals
// ---------------------------------------------------------------------------

func TestStringLiterals(t *testing.T) {
	runTokenize(t, "empty", `""`, []tokenCase{{token.STRING, ""}})
	runTokenize(t, "hello", `"hello"`, []tokenCase{{token.STRING, "hello"}})
	runTokenize(t, "spaces", `"hello world"`, []tokenCase{{token.STRING, "hello world"}})
	// Escapes decode at lexing time.
	runTokenize(t, "escape_n", `"line\nfeed"`, []tokenCase{{token.STRING, "line\nfeed"}})
	runTokenize(t, "escape_t", `"tab\there"`, []tokenCase{{token.STRING, "tab\there"}})
	runTokenize(t, "escape_backslash", `"back\\slash"`, []tokenCase{{token.STRING, `back\slash`}})
	runTokenize(t, "escape_quote", `"say\"hi\""`, []tokenCase{{token.STRING, `say"hi"`}})
	// Unknown escapes keep the escaped character.
	runTokenize(t, "escape_unknown", `"a\qb"`, []tokenCase{{token.STRING, "aqb"}})
}

func TestUnterminatedString(t *testing.T) {
	toks, diags := lexWithErrors(t, `"no closing`)
	if len(toks) != 0 {
		t.Errorf("unterminated string should yield no tokens, got %d", len(toks))
	}
	if diags[0].Message != "Unterminated string literal" || diags[0].Line != 1 {
		t.Errorf("diagnostic: got %s", diags[0])
	}
}

func TestStringWithRawNewline(t *testing.T) {
	// A raw newline ends the string scan; lexing continues on the next line.
	toks, diags := lexWithErrors(t, "\"broken\nx")
	if diags[0].Message != "Unterminated string literal" {
		t.Errorf("diagnostic: got %s", diags[0])
	}
	if len(toks) != 1 || toks[0].Type != token.ID || toks[0].Literal != "x" {
		t.Errorf("lexing did not resume after broken string: %v", toks)
	}
}

// ---------------------------------------------------------------------------
// Identifiers and keywords
// ---------------------------------------------------------------------------

func TestIdentifiers(t *testing.T) {
	runTokenize(t, "simple", "foo", []tokenCase{{token.ID, "foo"}})
	runTokenize(t, "underscore_prefix", "_bar", []tokenCase{{token.ID, "_bar"}})
	runTokenize(t, "underscore_only", "_", []tokenCase{{token.ID, "_"}})
	runTokenize(t, "mixed_case", "MyVar", []tokenCase{{token.ID, "MyVar"}})
	runTokenize(t, "with_digits", "x1y2z3", []tokenCase{{token.ID, "x1y2z3"}})
}

func TestKeywords(t *testing.T) {
	cases := []struct {
		kw  string
		typ token.Type
	}{
		{"import", token.IMPORT},
		{"var", token.VAR},
		{"const", token.CONST},
		{"print", token.PRINT},
		{"if", token.IF},
		{"else", token.ELSE},
		{"while", token.WHILE},
		{"func", token.FUNC},
		{"return", token.RETURN},
		{"true", token.TRUE},
		{"false", token.FALSE},
	}
	for _, c := range cases {
		runTokenize(t, c.kw, c.kw, []tokenCase{{c.typ, c.kw}})
	}
}

// Prefix of a keyword should still be an ID.
func TestKeywordPrefixIsIdent(t *testing.T) {
	runTokenize(t, "var_prefix", "variable", []tokenCase{{token.ID, "variable"}})
	runTokenize(t, "if_prefix", "iff", []tokenCase{{token.ID, "iff"}})
	runTokenize(t, "print_prefix", "printer", []tokenCase{{token.ID, "printer"}})
}

// ---------------------------------------------------------------------------
// Comments
// ---------------------------------------------------------------------------

func TestBlockCommentSkipped(t *testing.T) {
	runTokenize(t, "empty_block", "/**/", nil)
	runTokenize(t, "block_alone", "/* hello */", nil)
	runTokenize(t, "block_amid_code", "x /* ignored */ y", []tokenCase{
		{token.ID, "x"},
		{token.ID, "y"},
	})
	runTokenize(t, "block_multiline", "a /* line1\nline2 */ b", []tokenCase{
		{token.ID, "a"},
		{token.ID, "b"},
	})
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, diags := lexWithErrors(t, "x /* oops")
	if diags[0].Message != "Unterminated block comment" || diags[0].Line != 1 {
		t.Errorf("diagnostic: got %s", diags[0])
	}
}

// ---------------------------------------------------------------------------
// Illegal input
// ---------------------------------------------------------------------------

func TestIllegalCharacters(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"lone_amp", "&", "Illegal character '&'"},
		{"lone_pipe", "|", "Illegal character '|'"},
		{"dollar", "$", `Illegal character '$'`},
		{"hash", "#", `Illegal character '#'`},
		{"lone_dot", ". x", "Illegal character '.'"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, diags := lexWithErrors(t, c.input)
			if diags[0].Message != c.wantMsg {
				t.Errorf("diagnostic message: want %q, got %q", c.wantMsg, diags[0].Message)
			}
		})
	}
}

func TestLexingContinuesAfterIllegal(t *testing.T) {
	toks, diags := lexWithErrors(t, "a $ b")
	if len(diags) != 1 {
		t.Errorf("want 1 diagnostic, got %d", len(diags))
	}
	if len(toks) != 2 || toks[0].Literal != "a" || toks[1].Literal != "b" {
		t.Errorf("tokens around illegal byte: got %v", toks)
	}
}

// ---------------------------------------------------------------------------
// Whitespace and line tracking
// ---------------------------------------------------------------------------

func TestWhitespaceSkipping(t *testing.T) {
	runTokenize(t, "spaces", "   foo   ", []tokenCase{{token.ID, "foo"}})
	runTokenize(t, "tabs", "\t\tfoo\t\t", []tokenCase{{token.ID, "foo"}})
	runTokenize(t, "newlines", "\n\nfoo\n\n", []tokenCase{{token.ID, "foo"}})
}

func TestLineTracking(t *testing.T) {
	sink := diag.NewSink()
	toks := lexer.New("foo\nbar\n\nbaz", sink).Tokenize()
	if len(toks) != 3 {
		t.Fatalf("want 3 tokens, got %d", len(toks))
	}
	wantLines := []int{1, 2, 4}
	for i, want := range wantLines {
		if toks[i].Line != want {
			t.Errorf("token[%d] %q: line = %d, want %d", i, toks[i].Literal, toks[i].Line, want)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	sink := diag.NewSink()
	l := lexer.New("", sink)
	if _, ok := l.NextToken(); ok {
		t.Error("expected no token for empty input")
	}
	// Repeated calls stay exhausted.
	for i := 0; i < 3; i++ {
		if _, ok := l.NextToken(); ok {
			t.Errorf("call %d: expected exhausted lexer", i)
		}
	}
}

// ---------------------------------------------------------------------------
// Compound input
// ---------------------------------------------------------------------------

func TestDeclarationStatement(t *testing.T) {
	runTokenize(t, "var_decl", "var x int = 42;", []tokenCase{
		{token.VAR, "var"},
		{token.ID, "x"},
		{token.ID, "int"},
		{token.ASSIGN, "="},
		{token.INTEGER, "42"},
		{token.SEMI, ";"},
	})
}

func TestDerefInExpression(t *testing.T) {
	runTokenize(t, "deref_expr", "print `addr;", []tokenCase{
		{token.PRINT, "print"},
		{token.DEREF, "`"},
		{token.ID, "addr"},
		{token.SEMI, ";"},
	})
}

func TestComplexProgram(t *testing.T) {
	input := `
/* iterative factorial */
func fact(n) {
    var result int = 1;
    while n > 1 {
        result = result * n;
        n = n - 1;
    }
    return result;
}
print fact(5);
`
	runTokenize(t, "complex_program", input, []tokenCase{
		{token.FUNC, "func"},
		{token.ID, "fact"},
		{token.LPAREN, "("},
		{token.ID, "n"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.VAR, "var"},
		{token.ID, "result"},
		{token.ID, "int"},
		{token.ASSIGN, "="},
		{token.INTEGER, "1"},
		{token.SEMI, ";"},
		{token.WHILE, "while"},
		{token.ID, "n"},
		{token.GT, ">"},
		{token.INTEGER, "1"},
		{token.LBRACE, "{"},
		{token.ID, "result"},
		{token.ASSIGN, "="},
		{token.ID, "result"},
		{token.TIMES, "*"},
		{token.ID, "n"},
		{token.SEMI, ";"},
		{token.ID, "n"},
		{token.ASSIGN, "="},
		{token.ID, "n"},
		{token.MINUS, "-"},
		{token.INTEGER, "1"},
		{token.SEMI, ";"},
		{token.RBRACE, "}"},
		{token.RETURN, "return"},
		{token.ID, "result"},
		{token.SEMI, ";"},
		{token.RBRACE, "}"},
		{token.PRINT, "print"},
		{token.ID, "fact"},
		{token.LPAREN, "("},
		{token.INTEGER, "5"},
		{token.RPAREN, ")"},
		{token.SEMI, ";"},
	})
}
