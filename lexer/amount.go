package lexer

import "github.com/oarkflow/ledgerlex/ast"

const symbolInvalidChars = ".,;:?!-+*/^&|=<>[](){}@"

func isDigitByte(b byte) bool  { return b >= '0' && b <= '9' }
func isMarkerByte(b byte) bool { return b == '.' || b == ',' }
func isSignByte(b byte) bool   { return b == '+' || b == '-' }

func isSymbolInvalidByte(b byte) bool {
	for i := 0; i < len(symbolInvalidChars); i++ {
		if symbolInvalidChars[i] == b {
			return true
		}
	}
	return false
}

// scanAmountNumber scans a run of decimal digits interleaved with "."
// or "," markers, starting at the already-read digit byte first. Two
// consecutive markers is a lex error.
func (l *Lexer) scanAmountNumber(first byte) (string, error) {
	s := l.state
	number := []byte{first}
	s.lexPos++
	for s.lexPos < len(s.line) {
		c := s.line[s.lexPos]
		if !(isDigitByte(c) || isMarkerByte(c)) {
			break
		}
		if isMarkerByte(c) && isMarkerByte(number[len(number)-1]) {
			return "", l.errorf("unexpected character %q", c)
		}
		number = append(number, c)
		s.lexPos++
	}
	return string(number), nil
}

// scanAmountSymbol scans a bare (unquoted) commodity symbol: any run of
// characters excluding digits, whitespace, and the punctuation reserved
// for markers/operators/brackets.
func (l *Lexer) scanAmountSymbol(first byte) string {
	s := l.state
	if isDigitByte(first) || isSpaceByte(first) || isSymbolInvalidByte(first) {
		return ""
	}
	symbol := []byte{first}
	s.lexPos++
	for s.lexPos < len(s.line) {
		c := s.line[s.lexPos]
		if isDigitByte(c) || isSpaceByte(c) || isSymbolInvalidByte(c) {
			break
		}
		symbol = append(symbol, c)
		s.lexPos++
	}
	return string(symbol)
}

// scanAmountQuotedSymbol scans a "…" quoted commodity symbol, retaining
// the surrounding quotes verbatim.
func (l *Lexer) scanAmountQuotedSymbol() (string, error) {
	s := l.state
	start := s.lexPos
	end := s.nextCharPos('"', start+1, false)
	if end == -1 {
		return "", l.errorf("missing closing quote character")
	}
	s.lexPos = end + 1
	return s.line[start : end+1], nil
}

// tokenizeAmount scans the small sign/number/symbol state machine
// described in the grammar's amount rules, starting at the lexer's
// current position. It emits AMOUNT and, if a symbol was seen, SYMBOL.
func (l *Lexer) tokenizeAmount() ([]Token, error) {
	s := l.state
	if s.lexPos >= len(s.line) {
		return nil, l.errorf("no quantity specified for amount")
	}

	var sign byte
	signSet := false
	var number, symbol string
	symbolPrefix := false
	symbolSpace := false
	const numberGrouping = false // reserved: never set, per the grammar's open question
	signDone := false
	numberDone := false
	symbolDone := false
	var numberPos, symbolPos int

	c := s.line[s.lexPos]
amountLoop:
	for {
		switch {
		case isSignByte(c):
			if signDone {
				return nil, l.errorf("unexpected character %q", c)
			}
			sign = c
			signSet = true
			s.lexPos++
			signDone = true

		case isDigitByte(c):
			if numberDone {
				return nil, l.errorf("unexpected character %q", c)
			}
			numberPos = s.lexPos
			n, err := l.scanAmountNumber(c)
			if err != nil {
				return nil, err
			}
			number = n
			numberDone = true
			signDone = true
			if symbolDone {
				symbolPrefix = true
			}

		case c == '"':
			if symbolDone {
				return nil, l.errorf("unexpected character %q", c)
			}
			symbolPos = s.lexPos
			sym, err := l.scanAmountQuotedSymbol()
			if err != nil {
				return nil, err
			}
			symbol = sym
			symbolDone = true

		case c == ' ':
			if s.lexPos+1 >= len(s.line) {
				break amountLoop
			}
			peek := s.line[s.lexPos+1]
			if isSpaceByte(peek) {
				break amountLoop
			}
			if numberDone && symbolDone {
				break amountLoop
			}
			if (numberDone && !symbolDone) || (symbolDone && !numberDone) {
				symbolSpace = true
			}
			s.lexPos++

		default:
			if symbolDone {
				return nil, l.errorf("unexpected character %q", c)
			}
			symbolPos = s.lexPos
			symbol = l.scanAmountSymbol(c)
			symbolDone = true
		}

		if numberDone && symbolDone {
			break
		}
		if s.lexPos >= len(s.line) {
			break
		}
		c = s.line[s.lexPos]
	}

	if s.lexPos < len(s.line) {
		trailing := s.line[s.lexPos]
		if !isSpaceByte(trailing) {
			return nil, l.errorf("unexpected character %q", trailing)
		}
	}

	if !numberDone {
		return nil, l.errorf("no quantity specified for amount")
	}
	raw := number
	if signSet {
		raw = string(sign) + number
	}
	tokens := []Token{{Kind: AMOUNT, Text: raw, Line: s.lineNo, Col: numberPos}}
	if symbolDone {
		var flags ast.SymbolFlag
		if symbolPrefix {
			flags |= ast.SymbolPrefix
		}
		if symbolSpace {
			flags |= ast.SymbolSpace
		}
		if numberGrouping {
			flags |= ast.SymbolThousandsGrouping
		}
		tokens = append(tokens, Token{Kind: SYMBOL, Text: symbol, SymbolFlags: flags, Line: s.lineNo, Col: symbolPos})
	}
	return tokens, nil
}

// tokenizeAmountExpression scans the reserved "(...)" amount-expression
// placeholder form, capturing the bracketed text verbatim as a single
// VALEXPR token. No nested parentheses are supported; this form is not
// otherwise evaluated anywhere in the core.
func (l *Lexer) tokenizeAmountExpression() ([]Token, error) {
	s := l.state
	start := s.lexPos
	end := s.nextCharPos(')', start+1, false)
	if end == -1 {
		return nil, l.errorf("missing closing ')' in amount expression")
	}
	text := s.line[start : end+1]
	s.lexPos = end + 1
	return []Token{{Kind: VALEXPR, Text: text, Line: s.lineNo, Col: start}}, nil
}
