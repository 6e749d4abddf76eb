package parser_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/oarkflow/ledgerlex/ast"
	"github.com/oarkflow/ledgerlex/lexer"
	"github.com/oarkflow/ledgerlex/parser"
)

func mustParse(t *testing.T, text string) *ast.Journal {
	t.Helper()
	lex := lexer.New(strings.NewReader(text), "test.journal")
	j, err := parser.ParseJournal(lex, "test.journal")
	if err != nil {
		t.Fatalf("parse error: %v\ninput:\n%s", err, text)
	}
	return j
}

func TestParseSimpleTransaction(t *testing.T) {
	j := mustParse(t, "2024/01/15 Grocery Store\n"+
		"    Expenses:Food         50.00 USD\n"+
		"    Assets:Checking\n")

	if len(j.Children()) != 1 {
		t.Fatalf("expected 1 top-level item, got %d", len(j.Children()))
	}
	xact, ok := j.Children()[0].(*ast.Transaction)
	if !ok {
		t.Fatalf("expected *Transaction, got %T", j.Children()[0])
	}
	if xact.Date.Year != 2024 || xact.Date.Month != 1 || xact.Date.Day != 15 {
		t.Fatalf("unexpected date: %+v", xact.Date)
	}
	if xact.Description != "Grocery Store" {
		t.Fatalf("unexpected description: %q", xact.Description)
	}
	if len(xact.Children()) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(xact.Children()))
	}

	p0 := xact.Children()[0].(*ast.Posting)
	if p0.Account.Name != "Expenses:Food" {
		t.Fatalf("unexpected account: %q", p0.Account.Name)
	}
	wantQuantity := decimal.RequireFromString("50.00")
	if p0.Amount == nil || !p0.Amount.Quantity.Equal(wantQuantity) || p0.Amount.Raw != "50.00" {
		t.Fatalf("unexpected amount: %+v", p0.Amount)
	}
	if p0.Account.Parent() != p0 {
		t.Fatalf("account's parent should be its posting")
	}

	p1 := xact.Children()[1].(*ast.Posting)
	if p1.Amount != nil {
		t.Fatalf("expected inferred (nil) amount, got %+v", p1.Amount)
	}
	if p1.Parent() != ast.Node(xact) {
		t.Fatalf("posting's parent should be the transaction")
	}
}

func TestParseThousandsGroupedAmount(t *testing.T) {
	j := mustParse(t, "2024/01/15 Bonus\n"+
		"    Assets:Checking    1,234.56 USD\n"+
		"    Income:Bonus\n")

	xact := j.Children()[0].(*ast.Transaction)
	p0 := xact.Children()[0].(*ast.Posting)
	wantQuantity := decimal.RequireFromString("1234.56")
	if p0.Amount == nil || !p0.Amount.Quantity.Equal(wantQuantity) {
		t.Fatalf("unexpected quantity: %+v", p0.Amount)
	}
	if p0.Amount.Raw != "1,234.56" {
		t.Fatalf("expected raw lexeme to preserve grouping commas, got %q", p0.Amount.Raw)
	}
}

func TestParseClearedWithCodeAndAuxDate(t *testing.T) {
	j := mustParse(t, "2024/01/15=2024/01/16 * (CHK123) Payee Name\n"+
		"    Assets:Checking    -50.00 USD\n"+
		"    Expenses:Food\n")

	xact := j.Children()[0].(*ast.Transaction)
	if !xact.Status.Cleared {
		t.Fatal("expected Status.Cleared")
	}
	if !xact.HasCode || xact.Code != "CHK123" {
		t.Fatalf("unexpected code: hasCode=%v code=%q", xact.HasCode, xact.Code)
	}
	if xact.AuxDate.IsZero() || xact.AuxDate.Day != 16 {
		t.Fatalf("unexpected aux date: %+v", xact.AuxDate)
	}
}

func TestParseVirtualAccountFlags(t *testing.T) {
	j := mustParse(t, "2024/01/15 Budget allocation\n"+
		"    (Budget:Food)         10.00 USD\n"+
		"    [Budget:Reserve]      5.00 USD\n"+
		"    <Deferred:Tax>        2.00 USD\n")

	xact := j.Children()[0].(*ast.Transaction)
	virt := xact.Children()[0].(*ast.Posting)
	if !virt.Account.Flags.Has(ast.FlagVirtual) || virt.Account.Flags.Has(ast.FlagBalanced) {
		t.Fatalf("unexpected flags for (): %v", virt.Account.Flags)
	}
	bal := xact.Children()[1].(*ast.Posting)
	if !bal.Account.Flags.Has(ast.FlagVirtual) || !bal.Account.Flags.Has(ast.FlagBalanced) {
		t.Fatalf("unexpected flags for []: %v", bal.Account.Flags)
	}
	def := xact.Children()[2].(*ast.Posting)
	if !def.Account.Flags.Has(ast.FlagDeferred) {
		t.Fatalf("unexpected flags for <>: %v", def.Account.Flags)
	}
}

func TestParseNoteOnTransactionAndPosting(t *testing.T) {
	j := mustParse(t, "2024/01/15 Groceries  ; weekly shop\n"+
		"    Expenses:Food   20.00 USD  ; produce\n"+
		"    Assets:Checking\n")

	xact := j.Children()[0].(*ast.Transaction)
	if xact.Note == nil || xact.Note.Text != "weekly shop" {
		t.Fatalf("unexpected transaction note: %+v", xact.Note)
	}
	p0 := xact.Children()[0].(*ast.Posting)
	if p0.Note == nil || p0.Note.Text != "produce" {
		t.Fatalf("unexpected posting note: %+v", p0.Note)
	}
}

func TestParseTopLevelCommentAndEmptyLine(t *testing.T) {
	j := mustParse(t, "; file header\n\n2024/01/15 A\n    Assets:Cash  1.00 USD\n    Equity\n")
	if len(j.Children()) != 3 {
		t.Fatalf("expected comment, empty line, transaction; got %d items", len(j.Children()))
	}
	if _, ok := j.Children()[0].(*ast.Comment); !ok {
		t.Fatalf("expected *Comment first, got %T", j.Children()[0])
	}
	if _, ok := j.Children()[1].(*ast.EmptyLine); !ok {
		t.Fatalf("expected *EmptyLine second, got %T", j.Children()[1])
	}
}

func TestParseMissingAccountIsLexError(t *testing.T) {
	lex := lexer.New(strings.NewReader("2024/01/15 A\n    *\n"), "test.journal")
	_, err := parser.ParseJournal(lex, "test.journal")
	if err == nil {
		t.Fatal("expected an error for a posting with a status flag but no account")
	}
	if _, ok := err.(*lexer.LexError); !ok {
		t.Fatalf("expected *lexer.LexError, got %T", err)
	}
}
