// Package console prints user facing banners and messages and reads answers.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	infoStyle    = lipgloss.NewStyle()
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	promptStyle  = lipgloss.NewStyle().Bold(true)
)

type Console struct {
	out io.Writer
	in  *bufio.Reader
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		out: out,
		in:  bufio.NewReader(in),
	}
}

// Std uses the process stdin and stdout.
func Std() *Console {
	return New(os.Stdin, os.Stdout)
}

func (c *Console) Out() io.Writer {
	return c.out
}

func (c *Console) Banner(msg string) {
	fmt.Fprintln(c.out, bannerStyle.Render(" ########## "+msg+" ##########"))
	fmt.Fprintln(c.out)
}

func (c *Console) Info(msg string) {
	fmt.Fprintln(c.out, infoStyle.Render("[INFO] "+msg))
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.out, errorStyle.Render("[ERROR] "+msg))
}

func (c *Console) Success(msg string) {
	fmt.Fprintln(c.out, successStyle.Render("[SUCCESS] "+msg))
}

// Blank prints an empty line.
func (c *Console) Blank() {
	fmt.Fprintln(c.out)
}

// Prompt prints msg and returns the next input line without surrounding whitespace.
// io.EOF is only returned when the input ended before anything was typed.
func (c *Console) Prompt(msg string) (string, error) {
	fmt.Fprint(c.out, promptStyle.Render(msg))
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

type line struct {
	text string
	err  error
}

// PromptContext is Prompt that gives up when ctx is done. The pending read is abandoned, so
// the console must not be read from again afterwards.
func (c *Console) PromptContext(ctx context.Context, msg string) (string, error) {
	ch := make(chan line, 1)
	go func() {
		text, err := c.Prompt(msg)
		ch <- line{text, err}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	case l := <-ch:
		return l.text, l.err
	}
}
