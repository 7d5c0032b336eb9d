// Copyright 2025 The GoxLang Authors
// This file is part of GoxLang.
//
// GoxLang is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package astjson serializes GoxLang syntax trees to JSON documents.
//
// Design overview:
//
//   - Every node maps to an object with a "type" key holding the node kind
//     and one key per node attribute, named after the attribute.
//   - The node set is closed: the type switch in Document is exhaustive and
//     panics on anything it does not know, since an unknown node can only be
//     a programming error.
//   - Absent optional values (a declaration without a type or initializer, a
//     sub-expression a failed parse left nil) serialize as explicit null with
//     the key present. Sequences serialize as arrays, empty as [], never null.
//   - A parse that recorded diagnostics produces an {"errors": [...]}
//     document instead of a tree; the two shapes never mix.
package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/goxlang/gox/lang/ast"
	"github.com/goxlang/gox/lang/diag"
)

// indent is the indentation unit for all marshaled documents.
const indent = "  "

// Document converts a syntax tree node into its JSON document form, a tree of
// map[string]interface{} and []interface{} values ready for encoding/json.
// Document panics on a node type outside the GoxLang node set.
func Document(node ast.Node) map[string]interface{} {
	switch n := node.(type) {
	case *ast.Program:
		return map[string]interface{}{
			"type":       "Program",
			"statements": stmtDocs(n.Statements),
		}

	case *ast.Integer:
		return map[string]interface{}{"type": "Integer", "value": n.Value}
	case *ast.Float:
		return map[string]interface{}{"type": "Float", "value": n.Value}
	case *ast.Boolean:
		return map[string]interface{}{"type": "Boolean", "value": n.Value}
	case *ast.String:
		return map[string]interface{}{"type": "String", "value": n.Value}

	case *ast.Location:
		return map[string]interface{}{"type": "Location", "name": n.Name}

	case *ast.BinOp:
		return map[string]interface{}{
			"type":     "BinOp",
			"operator": n.Operator,
			"left":     exprDoc(n.Left),
			"right":    exprDoc(n.Right),
		}

	case *ast.UnaryOp:
		return map[string]interface{}{
			"type":     "UnaryOp",
			"operator": n.Operator,
			"operand":  exprDoc(n.Operand),
		}

	case *ast.FunctionCall:
		return map[string]interface{}{
			"type": "FunctionCall",
			"name": n.Name,
			"args": exprDocs(n.Args),
		}

	case *ast.Print:
		return map[string]interface{}{"type": "Print", "expr": exprDoc(n.Expr)}

	case *ast.Assignment:
		var target interface{}
		if n.Target != nil {
			target = Document(n.Target)
		}
		return map[string]interface{}{
			"type":   "Assignment",
			"target": target,
			"expr":   exprDoc(n.Expr),
		}

	case *ast.If:
		return map[string]interface{}{
			"type":        "If",
			"condition":   exprDoc(n.Condition),
			"consequence": stmtDocs(n.Consequence),
			"alternative": stmtDocs(n.Alternative),
		}

	case *ast.While:
		return map[string]interface{}{
			"type":      "While",
			"condition": exprDoc(n.Condition),
			"body":      stmtDocs(n.Body),
		}

	case *ast.VariableDecl:
		return map[string]interface{}{
			"type":          "VariableDecl",
			"name":          n.Name,
			"declared_type": optString(n.DeclaredType),
			"initial_value": exprDoc(n.InitialValue),
		}

	case *ast.ConstantDecl:
		return map[string]interface{}{
			"type":  "ConstantDecl",
			"name":  n.Name,
			"value": exprDoc(n.Value),
		}

	case *ast.FunctionDecl:
		params := make([]interface{}, 0, len(n.Params))
		for _, p := range n.Params {
			if p == nil {
				continue
			}
			params = append(params, Document(p))
		}
		return map[string]interface{}{
			"type":        "FunctionDecl",
			"name":        n.Name,
			"params":      params,
			"return_type": optString(n.ReturnType),
			"body":        stmtDocs(n.Body),
		}

	case *ast.Parameter:
		return map[string]interface{}{
			"type":          "Parameter",
			"name":          n.Name,
			"declared_type": optString(n.DeclaredType),
		}

	case *ast.Return:
		return map[string]interface{}{"type": "Return", "expr": exprDoc(n.Expr)}

	case *ast.ImportDecl:
		return map[string]interface{}{
			"type":        "ImportDecl",
			"module_name": n.ModuleName,
		}

	default:
		panic(fmt.Sprintf("astjson: unknown node type %T", node))
	}
}

// exprDoc renders an expression position, mapping a nil child to JSON null.
func exprDoc(e ast.Expression) interface{} {
	if e == nil {
		return nil
	}
	return Document(e)
}

// exprDocs renders an argument list. Failed arguments are kept as nulls so
// the arity of the written call survives.
func exprDocs(exprs []ast.Expression) []interface{} {
	docs := make([]interface{}, 0, len(exprs))
	for _, e := range exprs {
		docs = append(docs, exprDoc(e))
	}
	return docs
}

// stmtDocs renders a statement list. Failed statements are skipped, matching
// the parser, so lists carry only real nodes.
func stmtDocs(stmts []ast.Statement) []interface{} {
	docs := make([]interface{}, 0, len(stmts))
	for _, s := range stmts {
		if s == nil {
			continue
		}
		docs = append(docs, Document(s))
	}
	return docs
}

// optString maps the empty string, the absent-value marker for optional
// declaration fields, to JSON null.
func optString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// Marshal serializes a syntax tree node to indented JSON.
func Marshal(node ast.Node) ([]byte, error) {
	return json.MarshalIndent(Document(node), "", indent)
}

// MarshalDiagnostics serializes diagnostics to the {"errors": [...]} document.
func MarshalDiagnostics(diags []diag.Diagnostic) ([]byte, error) {
	if diags == nil {
		diags = []diag.Diagnostic{}
	}
	return json.MarshalIndent(map[string]interface{}{"errors": diags}, "", indent)
}

// MarshalResult produces the single document for a finished parse: the errors
// document when the sink recorded anything, the Program document otherwise. A
// tree built alongside diagnostics is partial and is never serialized.
func MarshalResult(prog *ast.Program, sink *diag.Sink) ([]byte, error) {
	if sink.HasErrors() {
		return MarshalDiagnostics(sink.All())
	}
	return Marshal(prog)
}
