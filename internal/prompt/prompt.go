// Package prompt asks the setup and migration questions. Answers come from
// environment overrides first, then from the terminal; without a terminal
// every question takes its default.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ErrInterrupted is returned when the user presses Ctrl+C at a prompt.
var ErrInterrupted = errors.New("prompt interrupted")

// Override answers every yes/no question whose text contains Match.
// A nil Value means the variable is unset.
type Override struct {
	Match string
	Value *bool
}

// Config configures a Prompter.
type Config struct {
	// In supplies answers line by line. Nil means the process's stdin,
	// read through readline when it is a terminal.
	In  io.Reader
	Out io.Writer
	// Overrides are checked in order; the first set match wins.
	Overrides []Override
	// Choice answers choice questions when it matches an option.
	Choice string
	// MatchChoice maps Choice to an option index. It defaults to a
	// case-insensitive comparison with the option labels.
	MatchChoice func(value string, options []string) (int, bool)
}

type lineReader interface {
	readLine(prompt string) (string, error)
	close() error
}

// Prompter asks yes/no and choice questions.
type Prompter struct {
	out         io.Writer
	reader      lineReader
	overrides   []Override
	choice      string
	matchChoice func(string, []string) (int, bool)
}

// StdinIsTerminal reports whether the process's stdin is a terminal.
func StdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// New creates a prompter.
func New(cfg Config) (*Prompter, error) {
	p := &Prompter{
		out:         cfg.Out,
		overrides:   cfg.Overrides,
		choice:      strings.TrimSpace(cfg.Choice),
		matchChoice: cfg.MatchChoice,
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.matchChoice == nil {
		p.matchChoice = matchLabel
	}

	switch {
	case cfg.In != nil:
		p.reader = &bufferedReader{in: bufio.NewReader(cfg.In), out: p.out}
	case StdinIsTerminal():
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "> ",
			Stdout:          p.out,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create readline: %w", err)
		}
		p.reader = &terminalReader{rl: rl}
	}
	return p, nil
}

// Interactive reports whether questions without an override are asked.
func (p *Prompter) Interactive() bool {
	return p.reader != nil
}

// HasOverrides reports whether any environment answer is set.
func (p *Prompter) HasOverrides() bool {
	if p.choice != "" {
		return true
	}
	for _, o := range p.overrides {
		if o.Value != nil {
			return true
		}
	}
	return false
}

// Close releases the terminal.
func (p *Prompter) Close() error {
	if p.reader == nil {
		return nil
	}
	return p.reader.close()
}

// YesNo asks a yes/no question. An empty answer, or no terminal, gives def.
func (p *Prompter) YesNo(question string, def bool) (bool, error) {
	for _, o := range p.overrides {
		if o.Value != nil && strings.Contains(question, o.Match) {
			fmt.Fprintf(p.out, "%s [%t]\n", question, *o.Value)
			return *o.Value, nil
		}
	}
	if p.reader == nil {
		return def, nil
	}

	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	line, err := p.reader.readLine(fmt.Sprintf("%s %s: ", question, hint))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return def, nil
		}
		return def, err
	}
	return ParseYesNo(line, def), nil
}

// ParseYesNo interprets an answer; anything but y/yes is no.
func ParseYesNo(answer string, def bool) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return def
	}
	return answer == "y" || answer == "yes"
}

// Choice asks the user to pick one of options and returns its index.
// Empty or out-of-range answers give def.
func (p *Prompter) Choice(question string, options []string, def int) (int, error) {
	if def < 0 || def >= len(options) {
		def = 0
	}

	if p.choice != "" {
		if idx, ok := p.matchChoice(p.choice, options); ok && idx >= 0 && idx < len(options) {
			p.printOptions(question, options, idx)
			return idx, nil
		}
	}
	if p.reader == nil {
		return def, nil
	}

	p.printOptions(question, options, def)
	line, err := p.reader.readLine(fmt.Sprintf("Select option (1-%d) [%d]: ", len(options), def+1))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return def, nil
		}
		return def, err
	}
	return ParseChoice(line, len(options), def), nil
}

// ParseChoice interprets a 1-based option number.
func ParseChoice(answer string, n, def int) int {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def
	}
	v, err := strconv.Atoi(answer)
	if err != nil || v < 1 || v > n {
		return def
	}
	return v - 1
}

func (p *Prompter) printOptions(question string, options []string, selected int) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(p.out, "\n%s\n", question)
	for i, option := range options {
		marker := " "
		if i == selected {
			marker = cyan(">")
		}
		fmt.Fprintf(p.out, "  %s %d. %s\n", marker, i+1, option)
	}
}

func matchLabel(value string, options []string) (int, bool) {
	for i, option := range options {
		if strings.EqualFold(option, value) {
			return i, true
		}
	}
	return 0, false
}

// bufferedReader reads answers from a plain stream, echoing the prompt.
type bufferedReader struct {
	in  *bufio.Reader
	out io.Writer
}

func (r *bufferedReader) readLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	line, err := r.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	fmt.Fprintln(r.out)
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *bufferedReader) close() error { return nil }

type terminalReader struct {
	rl *readline.Instance
}

func (r *terminalReader) readLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", ErrInterrupted
	}
	return line, err
}

func (r *terminalReader) close() error { return r.rl.Close() }
