package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tanq16/scenefetch/internal/output"
	"github.com/tanq16/scenefetch/internal/utils"
	"golang.org/x/term"
)

// prompter asks for values the configuration left unset.
type prompter struct {
	in     io.Reader
	out    io.Writer
	fd     int
	reader *bufio.Reader
}

func (p *prompter) line() (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.in)
	}
	s, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// token reads the access token without echo when stdin is a terminal.
func (p *prompter) token() (string, error) {
	fmt.Fprint(p.out, output.FInfo("Enter your ScanNet++ download token: "))
	if term.IsTerminal(p.fd) {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	tok, err := p.line()
	if err != nil {
		return "", utils.ConfigError("no download token provided")
	}
	return tok, nil
}

func (p *prompter) dataRoot() (string, error) {
	fmt.Fprint(p.out, output.FInfo(fmt.Sprintf("Enter the download location [%s]: ", utils.DefaultDataRoot)))
	v, err := p.line()
	if err != nil || v == "" {
		return utils.DefaultDataRoot, nil
	}
	return v, nil
}

// confirm asks a yes/no question; anything other than y or yes is a no.
func (p *prompter) confirm(question string) bool {
	fmt.Fprint(p.out, output.FWarning(question+" [y/N]: "))
	v, err := p.line()
	if err != nil {
		return false
	}
	v = strings.ToLower(v)
	return v == "y" || v == "yes"
}
