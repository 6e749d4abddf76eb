// Package parser turns a ledger token stream into a typed ast.Journal.
// It uses a hand-rolled recursive-descent strategy with a one-token
// lookahead, driven by the grammar in the lexer's token kinds.
package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/oarkflow/ledgerlex/ast"
	"github.com/oarkflow/ledgerlex/lexer"
)

// ParseError records a grammar violation.
type ParseError struct {
	Filename string
	Line     int
	Col      int
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d:%s", e.Filename, e.Line, e.Col+1, e.Message)
}

// Parser consumes a lexer.Lexer's token stream and assembles an
// ast.Journal. Every grammar decision is made by inspecting the current
// token's kind, so a single token of state is all it ever holds.
type Parser struct {
	lex      *lexer.Lexer
	filename string

	tok lexer.Token
}

// New creates a Parser over an already-constructed Lexer.
func New(lex *lexer.Lexer, filename string) (*Parser, error) {
	p := &Parser{lex: lex, filename: filename}
	if err := p.prime(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) prime() error {
	t, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

// ParseJournal parses the entire token stream into a Journal.
func (p *Parser) ParseJournal() (*ast.Journal, error) {
	var children []ast.Node
	for p.tok.Kind != lexer.EOF {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		if item != nil {
			children = append(children, item)
		}
	}
	return ast.NewJournal(p.filename, children), nil
}

// ---- internal helpers ----

func (p *Parser) advance() (lexer.Token, error) {
	prev := p.tok
	t, err := p.lex.Next()
	if err != nil {
		return prev, err
	}
	p.tok = t
	return prev, nil
}

func (p *Parser) is(kind lexer.Kind) bool {
	return p.tok.Kind == kind
}

func (p *Parser) eat(kind lexer.Kind) (lexer.Token, error) {
	if p.tok.Kind != kind {
		return p.tok, p.errorf("expected %s, got %s", kind, p.tok.Kind)
	}
	return p.advance()
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{
		Filename: p.filename,
		Line:     p.tok.Line,
		Col:      p.tok.Col,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (p *Parser) unexpectedEOF() error {
	return &ParseError{Filename: p.filename, Line: p.tok.Line, Col: p.tok.Col, Message: "unexpected EOF"}
}

// ---- grammar ----

// parseItem parses one top-level item: a transaction, a top-level
// comment, or a preserved blank line.
func (p *Parser) parseItem() (ast.Node, error) {
	switch p.tok.Kind {
	case lexer.EOF:
		return nil, p.unexpectedEOF()
	case lexer.EMPTYLINE:
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewEmptyLine(), nil
	case lexer.COMMENT:
		return p.parseCommentDirective()
	case lexer.DATE:
		return p.parseTransaction()
	default:
		return nil, p.errorf("syntax error")
	}
}

func (p *Parser) parseCommentDirective() (ast.Node, error) {
	if _, err := p.eat(lexer.COMMENT); err != nil {
		return nil, err
	}
	text, err := p.eat(lexer.TEXT)
	if err != nil {
		return nil, err
	}
	return ast.NewComment(text.Text), nil
}

func (p *Parser) parseTransaction() (*ast.Transaction, error) {
	dateTok, err := p.eat(lexer.DATE)
	if err != nil {
		return nil, err
	}
	date := dateTok.Date

	var auxDate ast.Date
	if p.is(lexer.AUXDATE) {
		t, err := p.advance()
		if err != nil {
			return nil, err
		}
		auxDate = t.Date
	}

	status, err := p.parseStatusOpt()
	if err != nil {
		return nil, err
	}

	var code string
	hasCode := false
	if p.is(lexer.CODE) {
		t, err := p.advance()
		if err != nil {
			return nil, err
		}
		code = t.Text
		hasCode = true
	}

	descTok, err := p.eat(lexer.DESCRIPTION)
	if err != nil {
		return nil, err
	}

	var note *ast.Note
	if p.is(lexer.NOTE) {
		n, err := p.parseNote()
		if err != nil {
			return nil, err
		}
		note = n
	}

	children, err := p.parsePostings()
	if err != nil {
		return nil, err
	}

	return ast.NewTransaction(date, auxDate, status, code, hasCode, descTok.Text, note, children), nil
}

func (p *Parser) parseStatusOpt() (ast.Status, error) {
	switch p.tok.Kind {
	case lexer.CLEARED:
		if _, err := p.advance(); err != nil {
			return ast.Status{}, err
		}
		return ast.Status{Cleared: true}, nil
	case lexer.PENDING:
		if _, err := p.advance(); err != nil {
			return ast.Status{}, err
		}
		return ast.Status{Pending: true}, nil
	default:
		return ast.Status{}, nil
	}
}

func (p *Parser) parseNote() (*ast.Note, error) {
	if _, err := p.eat(lexer.NOTE); err != nil {
		return nil, err
	}
	text, err := p.eat(lexer.TEXT)
	if err != nil {
		return nil, err
	}
	return ast.NewNote(text.Text), nil
}

// parsePostings consumes every INDENT-led posting or note line that
// belongs to the transaction just headed, stopping at the first token
// that isn't INDENT.
func (p *Parser) parsePostings() ([]ast.Node, error) {
	var children []ast.Node
	for p.is(lexer.INDENT) {
		child, err := p.parsePosting()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func (p *Parser) parsePosting() (ast.Node, error) {
	if _, err := p.eat(lexer.INDENT); err != nil {
		return nil, err
	}
	if p.is(lexer.NOTE) {
		return p.parseNote()
	}

	status, err := p.parseStatusOpt()
	if err != nil {
		return nil, err
	}
	account, err := p.parseAccount()
	if err != nil {
		return nil, err
	}

	var amount *ast.Amount
	if p.is(lexer.AMOUNT) {
		a, err := p.parseAmount()
		if err != nil {
			return nil, err
		}
		amount = a
	}

	var note *ast.Note
	if p.is(lexer.NOTE) {
		n, err := p.parseNote()
		if err != nil {
			return nil, err
		}
		note = n
	}

	return ast.NewPosting(account, amount, note, status), nil
}

func (p *Parser) parseAccount() (*ast.Account, error) {
	var flags ast.AccountFlag
	switch p.tok.Kind {
	case lexer.ACCOUNT:
	case lexer.VIRTACC:
		flags = ast.FlagVirtual
	case lexer.BALVIRTACC:
		flags = ast.FlagVirtual | ast.FlagBalanced
	case lexer.DEFERREDACC:
		flags = ast.FlagDeferred
	default:
		return nil, p.errorf("expected account, got %s", p.tok.Kind)
	}
	t, err := p.advance()
	if err != nil {
		return nil, err
	}
	return ast.NewAccount(t.Text, flags), nil
}

func (p *Parser) parseAmount() (*ast.Amount, error) {
	t, err := p.eat(lexer.AMOUNT)
	if err != nil {
		return nil, err
	}
	quantity, parseErr := decimal.NewFromString(strings.ReplaceAll(t.Text, ",", ""))
	if parseErr != nil {
		return nil, p.errorf("invalid amount quantity %q", t.Text)
	}

	var symbol string
	hasSymbol := false
	var symbolFlags ast.SymbolFlag
	if p.is(lexer.SYMBOL) {
		s, err := p.advance()
		if err != nil {
			return nil, err
		}
		symbol = s.Text
		hasSymbol = true
		symbolFlags = s.SymbolFlags
	}

	return ast.NewAmount(quantity, t.Text, symbol, hasSymbol, symbolFlags), nil
}

// ParseJournal is a convenience entrypoint: it builds a Parser over lex
// and parses its token stream fully.
func ParseJournal(lex *lexer.Lexer, filename string) (*ast.Journal, error) {
	p, err := New(lex, filename)
	if err != nil {
		return nil, err
	}
	return p.ParseJournal()
}
