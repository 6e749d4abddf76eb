// Package printer renders a parsed Journal as the indented,
// parenthesized-call listing used by the "ast" command-line
// subcommand: one line per node, child lines indented one space
// further than their parent.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/oarkflow/ledgerlex/ast"
	"github.com/oarkflow/ledgerlex/registry"
)

// Lines renders node and every node reachable from it, one string per
// line, with no leading indentation on the first line.
func Lines(node ast.Node) ([]string, error) {
	lines, err := dispatch(node)
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// Print renders node and writes it to w, one line per line of output.
func Print(w io.Writer, node ast.Node) error {
	lines, err := Lines(node)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

var reg = registry.New()

func init() {
	reg.Register(&ast.Journal{}, func(n ast.Node) (any, error) { return journalLines(n.(*ast.Journal)) })
	reg.Register(&ast.Transaction{}, func(n ast.Node) (any, error) { return transactionLines(n.(*ast.Transaction)) })
	reg.Register(&ast.Posting{}, func(n ast.Node) (any, error) { return postingLines(n.(*ast.Posting)) })
	reg.Register(&ast.Account{}, func(n ast.Node) (any, error) { return accountLines(n.(*ast.Account)), nil })
	reg.Register(&ast.Amount{}, func(n ast.Node) (any, error) { return amountLines(n.(*ast.Amount)), nil })
	reg.Register(&ast.Note{}, func(n ast.Node) (any, error) { return noteLines(n.(*ast.Note)), nil })
	reg.Register(&ast.Comment{}, func(n ast.Node) (any, error) { return commentLines(n.(*ast.Comment)), nil })
	reg.Register(&ast.EmptyLine{}, func(n ast.Node) (any, error) { return []string{"emptyline()"}, nil })
}

func dispatch(node ast.Node) ([]string, error) {
	result, err := reg.Dispatch(node)
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

func indented(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = " " + l
	}
	return out
}

func journalLines(j *ast.Journal) ([]string, error) {
	lines := []string{fmt.Sprintf("journal(name=%s)", j.Name)}
	for _, child := range j.Children() {
		childLines, err := dispatch(child)
		if err != nil {
			return nil, err
		}
		lines = append(lines, indented(childLines)...)
	}
	return lines, nil
}

func transactionLines(xact *ast.Transaction) ([]string, error) {
	var args []string
	args = append(args, fmt.Sprintf("date=%s", dateString(xact.Date)))
	if !xact.AuxDate.IsZero() {
		args = append(args, fmt.Sprintf("auxdate=%s", dateString(xact.AuxDate)))
	}
	if xact.HasCode {
		args = append(args, fmt.Sprintf("code=%s", xact.Code))
	}
	args = append(args, fmt.Sprintf("description=%s", xact.Description))
	if xact.Note != nil {
		args = append(args, noteLines(xact.Note)...)
	}
	lines := []string{fmt.Sprintf("transaction(%s)", strings.Join(args, ", "))}
	for _, child := range xact.Children() {
		childLines, err := dispatch(child)
		if err != nil {
			return nil, err
		}
		lines = append(lines, indented(childLines)...)
	}
	return lines, nil
}

func postingLines(p *ast.Posting) ([]string, error) {
	var args []string
	if p.Account != nil {
		args = append(args, accountLines(p.Account)...)
	}
	if p.Amount != nil {
		args = append(args, amountLines(p.Amount)...)
	}
	if p.Note != nil {
		args = append(args, noteLines(p.Note)...)
	}
	return []string{fmt.Sprintf("post(%s)", strings.Join(args, ", "))}, nil
}

func accountLines(a *ast.Account) []string {
	return []string{fmt.Sprintf("account(name=%s)", a.Name)}
}

func amountLines(a *ast.Amount) []string {
	if !a.HasSymbol {
		return []string{fmt.Sprintf("amount(amount=%s, symbol=)", a.Raw)}
	}
	return []string{fmt.Sprintf("amount(amount=%s, symbol=%s, flags=%s)", a.Raw, a.Symbol, symbolFlagsString(a.SymbolFlags))}
}

// symbolFlagsString renders a symbol's flags in the original's P/S/T
// letter order: prefix, space, thousands-grouping.
func symbolFlagsString(f ast.SymbolFlag) string {
	var b strings.Builder
	if f.Has(ast.SymbolPrefix) {
		b.WriteByte('P')
	}
	if f.Has(ast.SymbolSpace) {
		b.WriteByte('S')
	}
	if f.Has(ast.SymbolThousandsGrouping) {
		b.WriteByte('T')
	}
	return b.String()
}

func noteLines(n *ast.Note) []string {
	return []string{fmt.Sprintf("note(text=%s)", n.Text)}
}

func commentLines(c *ast.Comment) []string {
	return []string{fmt.Sprintf("comment(text=%s)", c.Text)}
}

func dateString(d ast.Date) string {
	if d.Partial {
		return fmt.Sprintf("%02d-%02d", d.Month, d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
