// Package ast defines the ledger abstract syntax tree.
// Nodes form a tree with strict parent-to-children ownership; each node
// additionally carries a weak (non-owning) back-reference to its parent,
// set on Append and cleared on Remove, used only for upward error context.
package ast

import "github.com/shopspring/decimal"

// Node is implemented by every AST node.
type Node interface {
	// Parent returns the node's container, or nil for the root or a
	// detached node.
	Parent() Node
	node()
}

// Composite is a Node that owns an ordered sequence of children.
type Composite interface {
	Node
	Children() []Node
	Append(child Node)
	Remove(child Node)
}

type base struct {
	parent Node
}

func (b *base) Parent() Node { return b.parent }
func (b *base) node()        {}

func (b *base) setParent(p Node) { b.parent = p }

// Journal is the root of the tree: an ordered sequence of top-level
// items, each a Transaction, Comment, or EmptyLine.
type Journal struct {
	base
	Name     string
	children []Node
}

// NewJournal builds a Journal, reparenting every child passed in.
func NewJournal(name string, children []Node) *Journal {
	j := &Journal{Name: name}
	for _, c := range children {
		j.Append(c)
	}
	return j
}

func (j *Journal) Children() []Node { return j.children }

func (j *Journal) Append(child Node) {
	setParent(child, j)
	j.children = append(j.children, child)
}

func (j *Journal) Remove(child Node) {
	for i, c := range j.children {
		if c == child {
			j.children = append(j.children[:i], j.children[i+1:]...)
			setParent(child, nil)
			return
		}
	}
}

// Status is embedded (composition, not inheritance) by Transaction and
// Posting: a small inline record of mutually-exclusive clearing state.
type Status struct {
	Pending bool
	Cleared bool
}

// Transaction is a dated journal entry carrying an ordered sequence of
// Posting/Note children.
type Transaction struct {
	base
	Date        Date
	AuxDate     Date // zero value (IsZero) when absent
	Code        string
	HasCode     bool
	Description string
	Note        *Note
	Status      Status
	children    []Node
}

// NewTransaction builds a Transaction, reparenting every child.
func NewTransaction(date, auxDate Date, status Status, code string, hasCode bool, description string, note *Note, children []Node) *Transaction {
	t := &Transaction{
		Date:        date,
		AuxDate:     auxDate,
		Code:        code,
		HasCode:     hasCode,
		Description: description,
		Note:        note,
		Status:      status,
	}
	if note != nil {
		setParent(note, t)
	}
	for _, c := range children {
		t.Append(c)
	}
	return t
}

func (t *Transaction) Children() []Node { return t.children }

func (t *Transaction) Append(child Node) {
	setParent(child, t)
	t.children = append(t.children, child)
}

func (t *Transaction) Remove(child Node) {
	for i, c := range t.children {
		if c == child {
			t.children = append(t.children[:i], t.children[i+1:]...)
			setParent(child, nil)
			return
		}
	}
}

// AccountFlag is one bit of an Account's flag set.
type AccountFlag int

const (
	// FlagVirtual marks an account delimited by ( ) or [ ].
	FlagVirtual AccountFlag = 1 << iota
	// FlagBalanced marks a balanced-virtual account delimited by [ ].
	FlagBalanced
	// FlagDeferred marks an account delimited by < >.
	FlagDeferred
)

// Has reports whether f contains every bit of want.
func (f AccountFlag) Has(want AccountFlag) bool { return f&want == want }

// Posting is one leg of a Transaction: an account, an optional amount,
// and an optional attached Note.
type Posting struct {
	base
	Account *Account
	Amount  *Amount // nil when the posting has no amount (to be inferred)
	Note    *Note
	Status  Status
}

// NewPosting builds a Posting, reparenting account/amount/note.
func NewPosting(account *Account, amount *Amount, note *Note, status Status) *Posting {
	p := &Posting{Account: account, Amount: amount, Note: note, Status: status}
	if account != nil {
		setParent(account, p)
	}
	if amount != nil {
		setParent(amount, p)
	}
	if note != nil {
		setParent(note, p)
	}
	return p
}

// Account names one side of a posting, with its delimiter-derived flags.
type Account struct {
	base
	Name  string
	Flags AccountFlag
}

// NewAccount builds an Account node.
func NewAccount(name string, flags AccountFlag) *Account {
	return &Account{Name: name, Flags: flags}
}

// SymbolFlag is one bit of an Amount symbol's flag set.
type SymbolFlag int

const (
	// SymbolPrefix marks a symbol that appeared before the number.
	SymbolPrefix SymbolFlag = 1 << iota
	// SymbolSpace marks a single whitespace between number and symbol.
	SymbolSpace
	// SymbolThousandsGrouping is reserved: the lexer never sets it.
	SymbolThousandsGrouping
)

// Has reports whether f contains every bit of want.
func (f SymbolFlag) Has(want SymbolFlag) bool { return f&want == want }

// Amount is a quantity with an optional commodity symbol. Quantity is
// always a decimal.Decimal, never a binary float; Raw preserves the
// lexer's exact digit/marker text for byte-for-byte round-tripping.
type Amount struct {
	base
	Quantity    decimal.Decimal
	Raw         string
	Symbol      string
	HasSymbol   bool
	SymbolFlags SymbolFlag
}

// NewAmount builds an Amount node. quantity must not be the decimal zero
// value produced by a failed parse; callers are expected to have already
// validated the raw lexeme.
func NewAmount(quantity decimal.Decimal, raw, symbol string, hasSymbol bool, symbolFlags SymbolFlag) *Amount {
	return &Amount{Quantity: quantity, Raw: raw, Symbol: symbol, HasSymbol: hasSymbol, SymbolFlags: symbolFlags}
}

// Date is a full (year, month, day) or partial (month, day) date.
// A zero Date (Year == 0 && Month == 0 && Day == 0) means "absent" for
// optional fields such as Transaction.AuxDate.
type Date struct {
	Year    int // 0 when partial
	Month   int
	Day     int
	Partial bool
}

// IsZero reports whether d represents an absent date.
func (d Date) IsZero() bool { return d.Year == 0 && d.Month == 0 && d.Day == 0 }

var daysInMonth = [...]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the tolerant day count used for validation: every
// February is treated as having 29 days, matching the leap-year-tolerant
// original.
func DaysInMonth(month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	return daysInMonth[month]
}

// Note is free text attached to a Transaction or Posting; Tags is
// reserved for a future tag-parsing pass and is always empty today.
type Note struct {
	base
	Text string
	Tags map[string]string
}

// NewNote builds a Note node.
func NewNote(text string) *Note {
	return &Note{Text: text, Tags: map[string]string{}}
}

// Comment is a stand-alone top-level comment line.
type Comment struct {
	base
	Text string
}

// NewComment builds a Comment node.
func NewComment(text string) *Comment {
	return &Comment{Text: text}
}

// EmptyLine marks a preserved blank source line.
type EmptyLine struct {
	base
}

// NewEmptyLine builds an EmptyLine node.
func NewEmptyLine() *EmptyLine {
	return &EmptyLine{}
}

// setParent assigns the weak parent back-reference on any node type.
func setParent(n Node, parent Node) {
	switch v := n.(type) {
	case *Transaction:
		v.setParent(parent)
	case *Posting:
		v.setParent(parent)
	case *Account:
		v.setParent(parent)
	case *Amount:
		v.setParent(parent)
	case *Note:
		v.setParent(parent)
	case *Comment:
		v.setParent(parent)
	case *EmptyLine:
		v.setParent(parent)
	case *Journal:
		v.setParent(parent)
	}
}
