package lexer

import "fmt"

// LexError is raised by the lexer when the source text cannot be
// tokenized. The lexer never recovers from one; it is the caller's
// responsibility to stop.
type LexError struct {
	Filename string
	Line     int
	Col      int // 0-based byte offset into the line
	Message  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s:%d:%d:%s", e.Filename, e.Line, e.Col+1, e.Message)
}

func (l *Lexer) errorf(format string, args ...any) error {
	return &LexError{
		Filename: l.state.filename,
		Line:     l.state.lineNo,
		Col:      l.state.lexPos,
		Message:  fmt.Sprintf(format, args...),
	}
}
