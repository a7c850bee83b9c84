package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter reads answers line by line. Passwords are read without echo when
// input is a terminal.
type prompter struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Line prints label and returns the next input line, trimmed.
// io.EOF is returned once input is exhausted.
func (p *prompter) Line(label string) (string, error) {
	line, err := p.raw(label)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// raw prints label and returns the next line without its terminator.
func (p *prompter) raw(label string) (string, error) {
	fmt.Fprint(p.out, label)

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Default is Line with an editable current value; empty input keeps it.
func (p *prompter) Default(label, current string) (string, error) {
	answer, err := p.Line(fmt.Sprintf("%s [%s]: ", label, current))
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

// Password reads a secret, masked on terminals. Surrounding spaces are
// part of the secret.
func (p *prompter) Password(label string) (string, error) {
	f, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return p.raw(label)
	}

	fmt.Fprint(p.out, label)
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(secret), nil
}
