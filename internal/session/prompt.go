package session

import (
	"bufio"
	"fmt"
	"io"
)

// Prompter asks the user one question and returns the answer line.
type Prompter interface {
	Ask(prompt string) (string, error)
}

// LinePrompter prints prompts to out and reads answers line by line from in.
type LinePrompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

// maxAnswerSize bounds a single answer line.
const maxAnswerSize = 1 << 20

// NewLinePrompter creates a LinePrompter.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 4096), maxAnswerSize)
	return &LinePrompter{sc: sc, out: out}
}

// Ask prints prompt and waits for one line. Running out of input is an error.
func (p *LinePrompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", fmt.Errorf("reading answer: %w", err)
		}
		return "", fmt.Errorf("reading answer: %w", io.ErrUnexpectedEOF)
	}
	return p.sc.Text(), nil
}
