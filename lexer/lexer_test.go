package lexer_test

import (
	"strings"
	"testing"

	"github.com/oarkflow/ledgerlex/lexer"
)

func mustTokenize(t *testing.T, text string) []lexer.Token {
	t.Helper()
	lex := lexer.New(strings.NewReader(text), "test.journal")
	var tokens []lexer.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("lex error: %v\ninput: %s", err, text)
		}
		tokens = append(tokens, tok)
		if tok.Kind == lexer.EOF {
			return tokens
		}
	}
}

func kinds(tokens []lexer.Token) []lexer.Kind {
	ks := make([]lexer.Kind, len(tokens))
	for i, t := range tokens {
		ks[i] = t.Kind
	}
	return ks
}

func assertKinds(t *testing.T, got []lexer.Token, want ...lexer.Kind) {
	t.Helper()
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("expected %d tokens %v, got %d %v", len(want), want, len(gk), gk)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Fatalf("token %d: expected %s, got %s (all: %v)", i, want[i], gk[i], gk)
		}
	}
}

func TestSimpleTransaction(t *testing.T) {
	text := "2024/01/15 Grocery Store\n" +
		"    Expenses:Food         50.00 USD\n" +
		"    Assets:Checking\n"
	tokens := mustTokenize(t, text)
	assertKinds(t, tokens,
		lexer.DATE, lexer.DESCRIPTION,
		lexer.INDENT, lexer.ACCOUNT, lexer.AMOUNT, lexer.SYMBOL,
		lexer.INDENT, lexer.ACCOUNT,
		lexer.EOF,
	)
}

func TestClearedWithCodeAndAuxDate(t *testing.T) {
	text := "2024/01/15=2024/01/16 * (CHK123) Payee Name\n" +
		"    Assets:Checking    -50.00 USD\n" +
		"    Expenses:Food\n"
	tokens := mustTokenize(t, text)
	assertKinds(t, tokens,
		lexer.DATE, lexer.AUXDATE, lexer.CLEARED, lexer.CODE, lexer.DESCRIPTION,
		lexer.INDENT, lexer.ACCOUNT, lexer.AMOUNT, lexer.SYMBOL,
		lexer.INDENT, lexer.ACCOUNT,
		lexer.EOF,
	)
}

func TestVirtualAndBalancedPostings(t *testing.T) {
	text := "2024/01/15 Budget allocation\n" +
		"    (Budget:Food)         10.00 USD\n" +
		"    [Budget:Reserve]      5.00 USD\n" +
		"    <Deferred:Tax>        2.00 USD\n"
	tokens := mustTokenize(t, text)
	assertKinds(t, tokens,
		lexer.DATE, lexer.DESCRIPTION,
		lexer.INDENT, lexer.VIRTACC, lexer.AMOUNT, lexer.SYMBOL,
		lexer.INDENT, lexer.BALVIRTACC, lexer.AMOUNT, lexer.SYMBOL,
		lexer.INDENT, lexer.DEFERREDACC, lexer.AMOUNT, lexer.SYMBOL,
		lexer.EOF,
	)
}

func TestPartialDatePosting(t *testing.T) {
	text := "12/25 Holiday shopping  ; a note\n" +
		"    Expenses:Gifts        25.00 USD  ; gift note\n" +
		"    Assets:Checking\n"
	tokens := mustTokenize(t, text)
	assertKinds(t, tokens,
		lexer.DATE, lexer.DESCRIPTION, lexer.NOTE, lexer.TEXT,
		lexer.INDENT, lexer.ACCOUNT, lexer.AMOUNT, lexer.SYMBOL, lexer.NOTE, lexer.TEXT,
		lexer.INDENT, lexer.ACCOUNT,
		lexer.EOF,
	)
	dateTok := tokens[0]
	if !dateTok.Date.Partial || dateTok.Date.Month != 12 || dateTok.Date.Day != 25 {
		t.Fatalf("expected partial date 12-25, got %+v", dateTok.Date)
	}
}

func TestHardSeparatorSensitivity(t *testing.T) {
	// A single space inside the account name must not split it from the
	// amount; only the two-or-more-space (or tab) run does.
	text := "2024/01/15 Rent\n" +
		"    Expenses:Rent And Utilities  800.00 USD\n" +
		"    Assets:Checking\n"
	tokens := mustTokenize(t, text)
	var account string
	for _, tok := range tokens {
		if tok.Kind == lexer.ACCOUNT && account == "" {
			account = tok.Text
		}
	}
	if account != "Expenses:Rent And Utilities" {
		t.Fatalf("expected account with internal single spaces preserved, got %q", account)
	}
}

func TestCommentLine(t *testing.T) {
	tokens := mustTokenize(t, "; a top-level comment\n")
	assertKinds(t, tokens, lexer.COMMENT, lexer.TEXT, lexer.EOF)
}

func TestOptionLine(t *testing.T) {
	tokens := mustTokenize(t, "--file=ledger.journal\n")
	assertKinds(t, tokens, lexer.OPTION, lexer.ARGUMENT, lexer.EOF)
	if tokens[0].Text != "file" {
		t.Fatalf("expected option %q, got %q", "file", tokens[0].Text)
	}
}

func TestEmptyLinePreserved(t *testing.T) {
	tokens := mustTokenize(t, "2024/01/15 A\n    Assets:Cash  1.00 USD\n    Equity\n\n2024/01/16 B\n")
	if tokens[len(tokens)-4].Kind != lexer.EMPTYLINE {
		t.Fatalf("expected the empty line to separate the two transactions")
	}
}

func TestInvalidDateIsLexError(t *testing.T) {
	lex := lexer.New(strings.NewReader("2024/13/45 Bad date\n"), "test.journal")
	_, err := lex.Next()
	if err == nil {
		t.Fatal("expected a lex error for an out-of-range date")
	}
	if _, ok := err.(*lexer.LexError); !ok {
		t.Fatalf("expected *LexError, got %T", err)
	}
}

func TestMissingClosingBracketIsLexError(t *testing.T) {
	text := "2024/01/15 Unterminated\n    (Budget:Food         10.00 USD\n"
	lex := lexer.New(strings.NewReader(text), "test.journal")
	var err error
	for {
		var tok lexer.Token
		tok, err = lex.Next()
		if err != nil || tok.Kind == lexer.EOF {
			break
		}
	}
	if err == nil {
		t.Fatal("expected a lex error for a missing closing bracket")
	}
}

func TestEOFIsIdempotent(t *testing.T) {
	lex := lexer.New(strings.NewReader("2024/01/15 A\n"), "test.journal")
	var last lexer.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind == lexer.EOF {
			last = tok
			break
		}
	}
	again, err := lex.Next()
	if err != nil {
		t.Fatalf("unexpected error after EOF: %v", err)
	}
	if again != last {
		t.Fatalf("expected repeated EOF token, got %+v then %+v", last, again)
	}
}
