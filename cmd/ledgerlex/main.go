// Command ledgerlex is the command-line frontend for the ledgerlex
// core: a "lex" subcommand that dumps the token stream, and an "ast"
// subcommand that dumps the parsed, pretty-printed journal.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/oarkflow/ledgerlex/internal/log"
	"github.com/oarkflow/ledgerlex/lexer"
	"github.com/oarkflow/ledgerlex/parser"
	"github.com/oarkflow/ledgerlex/printer"
)

var version = "dev"

type sharedFlags struct {
	File     string    `short:"f" help:"Read FILE as a ledger file (defaults to stdin)." type:"existingfile"`
	Output   string    `short:"o" help:"Redirect output to FILE (defaults to stdout)."`
	LogLevel log.Level `help:"Set logging to LEVEL." enum:"debug,info,warning,error,critical" default:"warning"`
	Debug    bool      `help:"Enable debug mode."`
}

func (f sharedFlags) openInput() (io.ReadCloser, string, error) {
	if f.File == "" {
		return io.NopCloser(os.Stdin), "-", nil
	}
	file, err := os.Open(f.File)
	if err != nil {
		return nil, "", err
	}
	return file, f.File, nil
}

func (f sharedFlags) openOutput() (io.WriteCloser, error) {
	if f.Output == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(f.Output)
}

func (f sharedFlags) configureLogging() {
	if f.Debug {
		log.SetLevel(log.LevelDebug)
		return
	}
	log.SetLevel(f.LogLevel)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// lexCmd dumps every token the lexer produces, one per line, using the
// same rendering the lexer's Token.String uses internally.
type lexCmd struct {
	sharedFlags
}

func (c *lexCmd) Run() error {
	c.configureLogging()
	in, filename, err := c.openInput()
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	defer in.Close()
	out, err := c.openOutput()
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	defer out.Close()

	lex := lexer.New(in, filename)
	for {
		tok, err := lex.Next()
		if err != nil {
			log.Errorf("%v", err)
			return err
		}
		fmt.Fprintln(out, tok.String())
		if tok.Kind == lexer.EOF {
			return nil
		}
	}
}

// astCmd parses the input fully and writes the pretty-printed AST.
type astCmd struct {
	sharedFlags
}

func (c *astCmd) Run() error {
	c.configureLogging()
	in, filename, err := c.openInput()
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	defer in.Close()
	out, err := c.openOutput()
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	defer out.Close()

	lex := lexer.New(in, filename)
	journal, err := parser.ParseJournal(lex, filename)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	lines, err := printer.Lines(journal)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return nil
}

var cli struct {
	Version kong.VersionFlag `help:"Print version information and exit."`
	Lex     lexCmd           `cmd:"" help:"Show tokens after lexing and exit."`
	Ast     astCmd           `cmd:"" help:"Show abstract syntax tree after parsing and exit."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("ledgerlex"),
		kong.Description("Double-entry accounting ledger lexer and parser"),
		kong.Vars{"version": version},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
