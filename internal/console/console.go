// Package console implements the hbnb command shell: line tokenizing, the
// dotted call rewriter, verb dispatch and the CRUD handlers that act on the
// registry and storage contracts.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hbnb-network/hbnb/internal/domain"
	"github.com/hbnb-network/hbnb/internal/infra/metrics"
	"github.com/hbnb-network/hbnb/internal/logging"
)

// ErrInterrupted is returned by a LineReader when the user interrupts input.
var ErrInterrupted = errors.New("interrupted")

// LineReader supplies one raw input line at a time. It returns io.EOF at
// end of input.
type LineReader interface {
	ReadLine() (string, error)
}

// Options configures a Console.
type Options struct {
	Registry domain.Registry
	Storage  domain.Storage
	Out      io.Writer
	Logger   *slog.Logger
}

// Console dispatches canonical command lines to their handlers.
type Console struct {
	registry domain.Registry
	store    domain.Storage
	out      io.Writer
	logger   *slog.Logger
	commands map[string]command
}

type command struct {
	name string
	help string
	run  func(arg string) (stop bool, err error)
}

// New creates a console with every verb registered.
func New(opts Options) *Console {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	c := &Console{
		registry: opts.Registry,
		store:    opts.Storage,
		out:      opts.Out,
		logger:   logger.With("component", "console"),
		commands: make(map[string]command),
	}

	c.register("all", "Print every instance, or those of one class: all [<class>]", c.doAll)
	c.register("count", "Print the number of instances of a class: count <class>", c.doCount)
	c.register("create", "Create an instance, save it and print its id: create <class>", c.doCreate)
	c.register("destroy", "Delete an instance: destroy <class> <id>", c.doDestroy)
	c.register("show", "Print an instance: show <class> <id>", c.doShow)
	c.register("update", "Set attributes: update <class> <id> <name> <value> [<name> <value> ...]", c.doUpdate)
	c.register("help", "List commands, or describe one: help [<command>]", c.doHelp)
	c.register("quit", "Save all instances and exit", c.doQuit)
	c.register("EOF", "Save all instances and exit at end of input", c.doEOF)
	return c
}

// register adds a verb. It panics if the verb already exists.
func (c *Console) register(name, help string, run func(string) (bool, error)) {
	if _, exists := c.commands[name]; exists {
		panic(fmt.Sprintf("command %s already registered", name))
	}
	c.commands[name] = command{name: name, help: help, run: run}
}

// Run reads and executes lines until a handler stops the loop or the
// reader fails. End of input runs the EOF command.
func (c *Console) Run(r LineReader) error {
	for {
		line, err := r.ReadLine()
		switch {
		case errors.Is(err, io.EOF):
			line = "EOF"
		case err != nil:
			return err
		}
		if c.OneCmd(c.Precmd(line)) {
			return nil
		}
	}
}

// Precmd rewrites the dotted call form into canonical form.
func (c *Console) Precmd(line string) string {
	return Rewrite(line)
}

// OneCmd executes a single canonical line and reports whether the loop
// should stop.
func (c *Console) OneCmd(line string) bool {
	verb, arg, line := parseLine(line)
	if line == "" {
		return false
	}

	cmd, ok := c.commands[verb]
	if !ok {
		metrics.CommandsTotal.WithLabelValues("unknown").Inc()
		metrics.CommandErrors.WithLabelValues("unknown", errorReason(domain.ErrUnknownVerb)).Inc()
		fmt.Fprintf(c.out, "*** Unknown syntax: %s\n", line)
		return false
	}

	metrics.CommandsTotal.WithLabelValues(verb).Inc()
	stop, err := cmd.run(arg)
	if err != nil {
		c.report(verb, err)
	}
	return stop
}

// parseLine splits a line into its verb and the remaining argument text.
// A leading '?' is shorthand for help.
func parseLine(line string) (verb, arg, trimmed string) {
	trimmed = strings.TrimSpace(line)
	if trimmed == "" {
		return "", "", ""
	}
	if strings.HasPrefix(trimmed, "?") {
		trimmed = "help " + trimmed[1:]
	}
	i := 0
	for i < len(trimmed) && isIdentPart(trimmed[i]) {
		i++
	}
	return trimmed[:i], strings.TrimSpace(trimmed[i:]), trimmed
}

func (c *Console) report(verb string, err error) {
	metrics.CommandErrors.WithLabelValues(verb, errorReason(err)).Inc()
	switch {
	case errors.Is(err, domain.ErrMalformedQuoting):
		c.logger.Debug("discarding line with malformed quoting", "verb", verb)
	case domain.IsUserError(err):
		fmt.Fprintf(c.out, "** %s **\n", err)
	default:
		c.logger.Error("command failed", "verb", verb, "err", err)
		fmt.Fprintf(c.out, "** %s **\n", err)
	}
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMalformedQuoting):
		return "malformed_quoting"
	case errors.Is(err, domain.ErrUnknownVerb):
		return "unknown_verb"
	case errors.Is(err, domain.ErrClassNameMissing):
		return "class_name_missing"
	case errors.Is(err, domain.ErrClassNotFound):
		return "class_not_found"
	case errors.Is(err, domain.ErrInstanceIDMissing):
		return "instance_id_missing"
	case errors.Is(err, domain.ErrInstanceNotFound):
		return "instance_not_found"
	case errors.Is(err, domain.ErrAttrNameMissing):
		return "attribute_name_missing"
	case errors.Is(err, domain.ErrValueMissing):
		return "value_missing"
	default:
		return "internal"
	}
}

// ─── Line Sources ───────────────────────────────────────────────────────────

// ScannerReader reads lines from any io.Reader, printing the prompt before
// each read.
type ScannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

// NewScannerReader creates a line source over in. An empty prompt prints nothing.
func NewScannerReader(in io.Reader, out io.Writer, prompt string) *ScannerReader {
	s := bufio.NewScanner(in)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &ScannerReader{scanner: s, out: out, prompt: prompt}
}

// ReadLine returns the next line without its terminator.
func (r *ScannerReader) ReadLine() (string, error) {
	if r.prompt != "" {
		fmt.Fprint(r.out, r.prompt)
	}
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
