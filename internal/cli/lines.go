package cli

import (
	"errors"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"

	"github.com/hbnb-network/hbnb/internal/console"
)

// verbs offered for completion.
var verbs = []string{"all", "count", "create", "destroy", "show", "update", "help", "quit"}

// lineSource is a console.LineReader that holds a terminal or signal handler.
type lineSource interface {
	console.LineReader
	Close() error
}

// newLineSource picks readline on a terminal and a plain scanner otherwise.
func newLineSource(in *os.File, out io.Writer, prompt string, classes []string) (lineSource, error) {
	fd := in.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return newTerminalSource(prompt, classes)
	}
	return newPipeSource(in, out, prompt), nil
}

// ─── Terminal ───────────────────────────────────────────────────────────────

type terminalSource struct {
	rl *readline.Instance
}

func newTerminalSource(prompt string, classes []string) (*terminalSource, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		AutoComplete:    newCompleter(classes),
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, err
	}
	return &terminalSource{rl: rl}, nil
}

func (t *terminalSource) ReadLine() (string, error) {
	line, err := t.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", console.ErrInterrupted
	}
	return line, err
}

func (t *terminalSource) Close() error {
	return t.rl.Close()
}

// newCompleter completes verbs, then class names after any verb that
// takes one.
func newCompleter(classes []string) *readline.PrefixCompleter {
	sorted := append([]string(nil), classes...)
	sort.Strings(sorted)
	classNames := func(string) []string { return sorted }

	items := make([]readline.PrefixCompleterInterface, 0, len(verbs))
	for _, v := range verbs {
		switch v {
		case "help":
			sub := make([]readline.PrefixCompleterInterface, 0, len(verbs))
			for _, topic := range verbs {
				sub = append(sub, readline.PcItem(topic))
			}
			items = append(items, readline.PcItem(v, sub...))
		case "quit":
			items = append(items, readline.PcItem(v))
		default:
			items = append(items, readline.PcItem(v, readline.PcItemDynamic(classNames)))
		}
	}
	return readline.NewPrefixCompleter(items...)
}

// ─── Pipe ───────────────────────────────────────────────────────────────────

// pipeSource reads piped input. An interrupt ends the process with the
// interrupted status since a blocked scanner cannot be woken.
type pipeSource struct {
	*console.ScannerReader
	sigs chan os.Signal
}

func newPipeSource(in io.Reader, out io.Writer, prompt string) *pipeSource {
	p := &pipeSource{
		ScannerReader: console.NewScannerReader(in, out, prompt),
		sigs:          make(chan os.Signal, 1),
	}
	signal.Notify(p.sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		if _, ok := <-p.sigs; ok {
			os.Exit(exitInterrupted)
		}
	}()
	return p
}

func (p *pipeSource) Close() error {
	signal.Stop(p.sigs)
	close(p.sigs)
	return nil
}
