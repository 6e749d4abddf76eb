package printer_test

import (
	"strings"
	"testing"

	"github.com/oarkflow/ledgerlex/lexer"
	"github.com/oarkflow/ledgerlex/parser"
	"github.com/oarkflow/ledgerlex/printer"
)

func TestAmountLinesShowSymbolFlags(t *testing.T) {
	lex := lexer.New(strings.NewReader("2024/01/15 Coffee shop\n"+
		"    Expenses:Food   $4.50\n"+
		"    Assets:Cash\n"), "test.journal")
	journal, err := parser.ParseJournal(lex, "test.journal")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	lines, err := printer.Lines(journal)
	if err != nil {
		t.Fatalf("print error: %v", err)
	}

	var amountLine string
	for _, l := range lines {
		if strings.Contains(l, "amount(") {
			amountLine = l
			break
		}
	}
	if amountLine == "" {
		t.Fatal("no amount() line found in output")
	}
	if !strings.Contains(amountLine, "symbol=$") || !strings.Contains(amountLine, "flags=P") {
		t.Fatalf("expected prefix symbol flag P, got %q", amountLine)
	}
}
