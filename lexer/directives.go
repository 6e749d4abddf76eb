package lexer

// accountDelim describes one of the three bracket pairs that mark a
// posting's account as virtual, balanced-virtual, or deferred.
type accountDelim struct {
	kind  Kind
	close byte
	name  string
}

var accountDelims = map[byte]accountDelim{
	'(': {kind: VIRTACC, close: ')', name: "virtual"},
	'[': {kind: BALVIRTACC, close: ']', name: "balanced virtual"},
	'<': {kind: DEFERREDACC, close: '>', name: "deferred"},
}

// expressionKinds maps the three reserved value-expression keywords to
// their token kind.
var expressionKinds = map[string]Kind{
	"assert": ASSERT,
	"check":  CHECK,
	"expr":   EXPR,
}

func isFlagChar(b byte) bool { return b == '*' || b == '!' }

func flagKind(b byte) Kind {
	if b == '*' {
		return CLEARED
	}
	return PENDING
}

// classifyLine dispatches on a line's first byte to the directive that
// governs its tokenization, per the directive table in the ledger
// grammar: digit -> transaction, ;#*| -> comment, - -> option, space/tab
// -> indented continuation.
type lineKind uint8

const (
	lineUnknown lineKind = iota
	lineXact
	lineComment
	lineOption
	lineIndent
)

func classifyLine(c byte) lineKind {
	switch {
	case c >= '0' && c <= '9':
		return lineXact
	case c == ';' || c == '#' || c == '*' || c == '|':
		return lineComment
	case c == '-':
		return lineOption
	case c == ' ' || c == '\t':
		return lineIndent
	default:
		return lineUnknown
	}
}
