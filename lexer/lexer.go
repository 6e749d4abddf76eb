package lexer

import (
	"io"
	"strings"
)

// Lexer tokenizes ledger source text read from a single input. A state
// stack (currently always empty until an include directive is parsed)
// lets a future directive push a nested source and resume the parent
// once it is exhausted.
type Lexer struct {
	state *lineState
	stack []*lineState

	done     bool
	eofToken Token
}

// New builds a Lexer over r. filename is used only for error messages
// and the final EOF token's Text.
func New(r io.Reader, filename string) *Lexer {
	return &Lexer{state: newLineState(r, filename)}
}

// Next returns the next token, or an error if the source cannot be
// tokenized. Exactly one EOF token is produced per source; every call
// after that returns the same cached EOF token with a nil error.
func (l *Lexer) Next() (Token, error) {
	if l.done {
		return l.eofToken, nil
	}
	for {
		if t, ok := l.state.popToken(); ok {
			return t, nil
		}
		if !l.state.advance() {
			t := l.popState()
			if l.state == nil {
				l.done = true
				l.eofToken = t
			}
			return t, nil
		}
		if l.state.lineLen == 0 {
			l.state.directive = "emptyline"
			l.state.addToken(Token{Kind: EMPTYLINE, Line: l.state.lineNo, Col: 0})
			continue
		}
		c := l.state.line[0]
		var err error
		switch classifyLine(c) {
		case lineIndent:
			err = l.indent()
		case lineComment:
			l.commentDirective()
		case lineOption:
			err = l.optionDirective()
		case lineXact:
			err = l.xactDirective()
		default:
			err = l.errorf("unexpected character %q", c)
		}
		if err != nil {
			return Token{}, err
		}
	}
}

// popState emits the EOF token for the currently exhausted source and
// pops the state stack, if non-empty, so a subsequent Next call resumes
// the caller that pushed it.
func (l *Lexer) popState() Token {
	t := Token{Kind: EOF, Text: l.state.filename, Line: l.state.lineNo, Col: l.state.lineLen}
	if n := len(l.stack); n > 0 {
		l.state = l.stack[n-1]
		l.stack = l.stack[:n-1]
	} else {
		l.state = nil
	}
	return t
}

func (l *Lexer) indent() error {
	if l.state.directive != "xact" {
		return nil
	}
	return l.indentXact()
}

// indentXact tokenizes one posting (indented continuation) line of a
// transaction: an optional leading status flag, a reserved value
// expression keyword, or an account possibly wrapped in one of the
// virtual/balanced/deferred bracket forms, followed by an optional
// trailing amount and an optional note.
func (l *Lexer) indentXact() error {
	s := l.state

	s.addToken(Token{Kind: INDENT, Line: s.lineNo, Col: s.lexPos})

	word, ok := s.nextWord(true, false)
	if !ok || word == "" {
		return l.errorf("missing account in posting")
	}

	var commentTokens []Token
	var notePos int
	if word[0] == ';' {
		notePos = s.lexPos
	} else {
		notePos = s.nextCharPos(';', -1, true)
	}
	if notePos != -1 {
		savePos := s.lexPos
		s.lexPos = notePos
		commentTokens = l.tokenizeXactNote()
		if savePos == notePos {
			// Line with only a comment.
			s.addTokens(commentTokens)
			return nil
		}
		// Strip the comment from the line and continue lexing.
		s.line = strings.TrimRight(s.line[:notePos], " \t")
		s.lineLen = len(s.line)
		s.lexPos = savePos
		word, ok = s.nextWord(false, false)
		if !ok || word == "" {
			return l.errorf("missing account in posting")
		}
	}

	if kind, isExpr := expressionKinds[word]; isExpr {
		tokens, err := l.tokenizeXactExpression(word, kind)
		if err != nil {
			return err
		}
		s.addTokens(tokens)
		s.addTokens(commentTokens)
		return nil
	}

	if isFlagChar(word[0]) {
		s.addToken(Token{Kind: flagKind(word[0]), Text: word[:1], Line: s.lineNo, Col: s.lexPos})
		word, ok = s.nextWord(true, false)
		if !ok || word == "" {
			return l.errorf("missing account in posting")
		}
	}

	var account string
	accountKind := ACCOUNT
	skip := true
	var pos int
	if delim, isDelim := accountDelims[word[0]]; isDelim {
		accountKind = delim.kind
		pos = s.nextCharPos(delim.close, -1, false)
		wsPos := s.nextHardWordPos(-1, true)
		if pos == -1 {
			return l.errorf("missing closing %q in %s posting", delim.close, delim.name)
		}
		if wsPos > -1 && wsPos < pos {
			return l.errorf("no hard separator allowed in account name")
		}
		account = s.line[s.lexPos+1 : pos]
	} else {
		pos = s.nextHardWordPos(-1, true)
		if pos == -1 {
			account = s.line[s.lexPos:]
		} else {
			account = s.line[s.lexPos:pos]
			// The next word is already located at pos.
			skip = false
		}
	}
	account = strings.TrimSpace(account)
	if account == "" {
		return l.errorf("missing account in virtual posting")
	}
	accountStart := s.lexPos
	s.addToken(Token{Kind: accountKind, Text: account, Line: s.lineNo, Col: accountStart})

	if pos == -1 {
		s.lexPos = s.lineLen
	} else {
		s.lexPos = pos
	}
	word2, ok2 := s.nextWord(skip, true)
	if ok2 {
		var tokens []Token
		var err error
		if word2[0] == '(' {
			tokens, err = l.tokenizeAmountExpression()
		} else {
			tokens, err = l.tokenizeAmount()
		}
		if err != nil {
			return err
		}
		s.addTokens(tokens)

		if _, leftover := s.nextWord(false, false); leftover {
			return l.errorf("unexpected text after amount")
		}
	}

	s.addTokens(commentTokens)
	return nil
}

func (l *Lexer) commentDirective() {
	s := l.state
	s.directive = "comment"
	c := s.line[s.lexPos]
	s.addToken(Token{Kind: COMMENT, Text: string(c), Line: s.lineNo, Col: s.lexPos})
	s.lexPos++
	pos := s.nextWordPos(-1, false)
	if pos != -1 {
		s.lexPos = pos
		s.addToken(Token{Kind: TEXT, Text: s.line[pos:], Line: s.lineNo, Col: pos})
	}
}

// optionDirective tokenizes a "-option" or "--option[=value]" line.
func (l *Lexer) optionDirective() error {
	s := l.state
	s.directive = "option"
	if len(s.line) < 2 {
		return l.errorf("missing option name")
	}
	start := 1
	if s.line[1] == '-' {
		start = 2
	}

	pos := indexByteFrom(s.line, '=', start)
	var option, argument string
	hasArgument := false
	argPos := start
	switch {
	case pos == start:
		s.lexPos = pos
		return l.errorf("missing option name")
	case pos > -1:
		option = s.line[start:pos]
		argPos = pos + 1
		argument = s.line[argPos:]
		hasArgument = true
	default:
		if wp := s.nextWordPos(start, true); wp > -1 {
			option = s.line[start : wp-1]
			argument = s.line[wp:]
			argPos = wp
			hasArgument = true
		} else {
			option = s.line[start:]
		}
	}
	if option == "" {
		return l.errorf("missing option name")
	}

	s.addToken(Token{Kind: OPTION, Text: option, Line: s.lineNo, Col: start})
	if hasArgument && argument != "" {
		s.addToken(Token{Kind: ARGUMENT, Text: argument, Line: s.lineNo, Col: argPos})
	}
	return nil
}

// xactDirective tokenizes a transaction header line: date, optional
// status flag, optional parenthesized code, description, and optional
// trailing note.
func (l *Lexer) xactDirective() error {
	s := l.state
	s.directive = "xact"

	dateString, ok := s.nextWord(false, false)
	if !ok || dateString == "" {
		return l.errorf("invalid date")
	}
	dateTokens, err := l.tokenizeXactDate(dateString)
	if err != nil {
		return err
	}
	s.addTokens(dateTokens)

	word, ok := s.nextWord(true, false)
	if !ok || word == "" {
		return l.errorf("missing payee or description in transaction")
	}
	if isFlagChar(word[0]) {
		s.addToken(Token{Kind: flagKind(word[0]), Text: word[:1], Line: s.lineNo, Col: s.lexPos})
		word, ok = s.nextWord(true, false)
		if !ok || word == "" {
			return l.errorf("missing payee or description in transaction")
		}
	}

	codeTokens, err := l.tokenizeXactCode()
	if err != nil {
		return err
	}
	if len(codeTokens) > 0 {
		s.addTokens(codeTokens)
		word, ok = s.nextWord(true, false)
		if !ok || word == "" {
			return l.errorf("missing payee or description in transaction")
		}
	}

	notePos := s.nextCharPos(';', -1, true)
	var description string
	if notePos == -1 {
		description = s.line[s.lexPos:]
	} else {
		description = s.line[s.lexPos:notePos]
	}
	description = strings.TrimSpace(description)
	s.addToken(Token{Kind: DESCRIPTION, Text: description, Line: s.lineNo, Col: s.lexPos})
	if notePos > -1 {
		s.lexPos = notePos
		s.addTokens(l.tokenizeXactNote())
	}
	return nil
}

// tokenizeXactDate scans a transaction header's date word, which may
// carry an "=auxdate" suffix.
func (l *Lexer) tokenizeXactDate(text string) ([]Token, error) {
	s := l.state
	dateString := text
	auxDateString := ""
	hasAux := false

	auxPos := strings.IndexByte(text, '=')
	if auxPos > -1 {
		auxDateString = text[auxPos+1:]
		if auxDateString == "" {
			s.lexPos += auxPos
			return nil, l.errorf("missing auxiliary date")
		}
		dateString = text[:auxPos]
		hasAux = true
	}

	date, err := scanDate(dateString)
	if err != nil {
		return nil, l.errorf("invalid date")
	}
	tokens := []Token{{Kind: DATE, Date: date, Line: s.lineNo, Col: s.lexPos}}
	if hasAux {
		s.lexPos += auxPos + 1
		auxDate, err := scanDate(auxDateString)
		if err != nil {
			return nil, l.errorf("invalid date")
		}
		tokens = append(tokens, Token{Kind: AUXDATE, Date: auxDate, Line: s.lineNo, Col: s.lexPos})
	}
	return tokens, nil
}

// tokenizeXactCode scans an optional "(code)" immediately following the
// status flag in a transaction header.
func (l *Lexer) tokenizeXactCode() ([]Token, error) {
	s := l.state
	if s.line[s.lexPos] != '(' {
		return nil, nil
	}
	pos := s.nextCharPos(')', -1, false)
	if pos == -1 {
		return nil, l.errorf("missing closing ')' after code in transaction")
	}
	code := strings.TrimSpace(s.line[s.lexPos+1 : pos])
	s.lexPos++
	if code == "" {
		return nil, l.errorf("missing code in transaction")
	}
	return []Token{{Kind: CODE, Text: code, Line: s.lineNo, Col: s.lexPos}}, nil
}

// tokenizeXactNote scans a trailing ";note text" on a transaction or
// posting line, already positioned at the ';'.
func (l *Lexer) tokenizeXactNote() []Token {
	s := l.state
	if s.line[s.lexPos] != ';' {
		return nil
	}
	tokens := []Token{{Kind: NOTE, Text: ";", Line: s.lineNo, Col: s.lexPos}}
	s.lexPos++
	pos := s.nextWordPos(-1, false)
	if pos > -1 {
		s.lexPos = pos
		tokens = append(tokens, Token{Kind: TEXT, Text: s.line[pos:], Line: s.lineNo, Col: pos})
	}
	return tokens
}

// tokenizeXactExpression scans one of the reserved assert/check/expr
// value-expression keywords followed by its (unparsed) expression text.
func (l *Lexer) tokenizeXactExpression(word string, kind Kind) ([]Token, error) {
	s := l.state
	tokens := []Token{{Kind: kind, Text: word, Line: s.lineNo, Col: s.lexPos}}
	pos := s.nextWordPos(-1, true)
	if pos == -1 {
		return nil, l.errorf("missing value expression")
	}
	valueExpr := strings.TrimSpace(s.line[pos:])
	s.lexPos = pos
	tokens = append(tokens, Token{Kind: VALEXPR, Text: valueExpr, Line: s.lineNo, Col: s.lexPos})
	return tokens, nil
}
