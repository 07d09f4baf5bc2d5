// ABOUTME: Terminal implementation of the view model prompter
// ABOUTME: Asks y/N questions on stdin and prints alerts to stderr

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type terminalPrompter struct {
	in        *bufio.Reader
	out       io.Writer
	errOut    io.Writer
	assumeYes bool
}

func newTerminalPrompter(in io.Reader, out, errOut io.Writer, assumeYes bool) *terminalPrompter {
	return &terminalPrompter{
		in:        bufio.NewReader(in),
		out:       out,
		errOut:    errOut,
		assumeYes: assumeYes,
	}
}

// Confirm asks message as a y/N question. Anything but y or yes declines,
// including end of input.
func (p *terminalPrompter) Confirm(ctx context.Context, title, message string) (bool, error) {
	if p.assumeYes {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, _ = fmt.Fprintf(p.out, "%s [y/N] ", message)
	response, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func (p *terminalPrompter) Alert(ctx context.Context, title, message string) {
	_, _ = fmt.Fprintf(p.errOut, "%s %s\n", color.New(color.FgRed, color.Bold).Sprint(title+":"), message)
}
