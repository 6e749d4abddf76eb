// Package lexer implements the line-oriented ledger tokenizer: a
// stateful scanner that turns whitespace-significant, context-sensitive
// ledger source text into a stream of typed tokens.
package lexer

import (
	"fmt"

	"github.com/oarkflow/ledgerlex/ast"
)

// Kind identifies the type of a lexical token.
type Kind uint8

const (
	ILLEGAL Kind = iota
	EOF
	EMPTYLINE

	COMMENT
	TEXT

	OPTION
	ARGUMENT

	DATE
	AUXDATE
	CODE
	DESCRIPTION
	NOTE

	CLEARED
	PENDING

	INDENT
	ACCOUNT
	VIRTACC
	BALVIRTACC
	DEFERREDACC

	ASSERT
	CHECK
	EXPR
	VALEXPR

	AMOUNT
	SYMBOL
)

var kindNames = [...]string{
	ILLEGAL:     "ILLEGAL",
	EOF:         "EOF",
	EMPTYLINE:   "EMPTYLINE",
	COMMENT:     "COMMENT",
	TEXT:        "TEXT",
	OPTION:      "OPTION",
	ARGUMENT:    "ARGUMENT",
	DATE:        "DATE",
	AUXDATE:     "AUXDATE",
	CODE:        "CODE",
	DESCRIPTION: "DESCRIPTION",
	NOTE:        "NOTE",
	CLEARED:     "CLEARED",
	PENDING:     "PENDING",
	INDENT:      "INDENT",
	ACCOUNT:     "ACCOUNT",
	VIRTACC:     "VIRTACC",
	BALVIRTACC:  "BALVIRTACC",
	DEFERREDACC: "DEFERREDACC",
	ASSERT:      "ASSERT",
	CHECK:       "CHECK",
	EXPR:        "EXPR",
	VALEXPR:     "VALEXPR",
	AMOUNT:      "AMOUNT",
	SYMBOL:      "SYMBOL",
}

// String renders a human-readable token kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Token is a single lexical token. Most kinds carry their payload in
// Text; DATE/AUXDATE carry a parsed ast.Date, and SYMBOL carries the
// ast.SymbolFlag bits alongside its Text.
type Token struct {
	Kind        Kind
	Text        string
	Date        ast.Date
	SymbolFlags ast.SymbolFlag
	Line        int
	Col         int
}

// String renders the token the way the command-line "lex" subcommand
// prints it: one line per token.
func (t Token) String() string {
	switch t.Kind {
	case DATE, AUXDATE:
		return t.Kind.String() + "(" + dateText(t.Date) + ")"
	case SYMBOL:
		return t.Kind.String() + "(" + t.Text + "," + symbolFlagsText(t.SymbolFlags) + ")"
	case EOF, INDENT, EMPTYLINE:
		return t.Kind.String()
	default:
		return t.Kind.String() + "(" + t.Text + ")"
	}
}

func symbolFlagsText(f ast.SymbolFlag) string {
	s := ""
	if f.Has(ast.SymbolPrefix) {
		s += "P"
	}
	if f.Has(ast.SymbolSpace) {
		s += "S"
	}
	if f.Has(ast.SymbolThousandsGrouping) {
		s += "T"
	}
	return s
}

func dateText(d ast.Date) string {
	if d.Partial {
		return fmt.Sprintf("%02d-%02d", d.Month, d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
