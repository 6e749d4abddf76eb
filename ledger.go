// Package ledgerlex parses plain-text ledger journals in the
// Ledger/hledger double-entry dialect into a typed AST.
//
// Usage:
//
//	journal, err := ledgerlex.ParseFile("2026.journal")
//	journal, err := ledgerlex.Parse(strings.NewReader(text), "-")
package ledgerlex

import (
	"io"
	"os"

	"github.com/oarkflow/ledgerlex/ast"
	"github.com/oarkflow/ledgerlex/lexer"
	"github.com/oarkflow/ledgerlex/parser"
)

// Re-export core types so callers only need to import this package.
type (
	Journal     = ast.Journal
	Transaction = ast.Transaction
	Posting     = ast.Posting
	Account     = ast.Account
	Amount      = ast.Amount
	Note        = ast.Note
	Comment     = ast.Comment
	EmptyLine   = ast.EmptyLine
	Date        = ast.Date
	Token       = lexer.Token
	Kind        = lexer.Kind
	LexError    = lexer.LexError
	ParseError  = parser.ParseError
)

// Parse reads and parses a complete journal from r. filename is used
// only to label errors and the resulting Journal's Name.
func Parse(r io.Reader, filename string) (*Journal, error) {
	lex := lexer.New(r, filename)
	return parser.ParseJournal(lex, filename)
}

// ParseFile opens path and parses it as a journal.
func ParseFile(path string) (*Journal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// Tokenize lexes r into a token slice without parsing. filename labels
// errors and the final EOF token.
func Tokenize(r io.Reader, filename string) ([]Token, error) {
	lex := lexer.New(r, filename)
	var tokens []Token
	for {
		t, err := lex.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, t)
		if t.Kind == lexer.EOF {
			return tokens, nil
		}
	}
}
