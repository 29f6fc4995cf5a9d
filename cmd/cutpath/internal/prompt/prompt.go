package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter handles interactive prompts
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// New creates a prompter on stdin and stdout
func New() *Prompter {
	return NewWith(os.Stdin, os.Stdout)
}

// NewWith creates a prompter on the given streams
func NewWith(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (p *Prompter) readLine() string {
	input, _ := p.reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// Text prompts for text input
func (p *Prompter) Text(prompt, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", prompt, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}

	input := p.readLine()
	if input == "" {
		return defaultValue
	}
	return input
}

// Confirm prompts for yes/no confirmation
func (p *Prompter) Confirm(prompt string, defaultYes bool) bool {
	defaultStr := "y/N"
	if defaultYes {
		defaultStr = "Y/n"
	}

	fmt.Fprintf(p.out, "%s [%s]: ", prompt, defaultStr)

	input := strings.ToLower(p.readLine())
	if input == "" {
		return defaultYes
	}

	return input == "y" || input == "yes"
}

// Select prompts for selection from options
func (p *Prompter) Select(prompt string, options []string, defaultIndex int) int {
	fmt.Fprintln(p.out, prompt)
	for i, option := range options {
		if i == defaultIndex {
			fmt.Fprintf(p.out, "  > %d) %s (default)\n", i+1, option)
		} else {
			fmt.Fprintf(p.out, "    %d) %s\n", i+1, option)
		}
	}

	fmt.Fprintf(p.out, "Enter choice [%d]: ", defaultIndex+1)

	input := p.readLine()
	if input == "" {
		return defaultIndex
	}

	var choice int
	if _, err := fmt.Sscanf(input, "%d", &choice); err == nil {
		if choice >= 1 && choice <= len(options) {
			return choice - 1
		}
	}

	for i, option := range options {
		if strings.EqualFold(option, input) {
			return i
		}
	}

	fmt.Fprintln(p.out, "Invalid choice, using default.")
	return defaultIndex
}
