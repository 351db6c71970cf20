// Package console implements a line-oriented command console over a namedvars scope.
package console

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/apstndb/namedvars"
	"github.com/apstndb/namedvars/parser"
)

// maxSourceDepth bounds nested SOURCE statements.
const maxSourceDepth = 16

// maxLineSize bounds a single statement line read by Run.
const maxLineSize = 16 << 20

// OutputFormatVar is the name of the variable that selects the output format.
const OutputFormatVar = "output_format"

var errSourceTooDeep = fmt.Errorf("SOURCE nested more than %d levels", maxSourceDepth)

// Console reads statements and executes them against a scope.
type Console struct {
	scope  *namedvars.Scope
	out    io.Writer
	errOut io.Writer
	fs     afero.Fs
	logger *zap.Logger

	format   OutputFormat
	depth    int
	exited   bool
	failures int
}

// Option configures a Console.
type Option func(*Console)

// WithOutput sets where results are written. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Console) {
		c.out = w
	}
}

// WithErrorOutput sets where errors are written. Defaults to os.Stderr.
func WithErrorOutput(w io.Writer) Option {
	return func(c *Console) {
		c.errOut = w
	}
}

// WithFs sets the file system used by SOURCE. Defaults to the OS file system.
func WithFs(fs afero.Fs) Option {
	return func(c *Console) {
		c.fs = fs
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Console) {
		c.logger = l
	}
}

// WithFormat sets the initial output format.
func WithFormat(f OutputFormat) Option {
	return func(c *Console) {
		c.format = f
	}
}

// New creates a console over scope and registers the output_format variable in it.
// The scope's resolver must include FormatRule.
func New(scope *namedvars.Scope, opts ...Option) (*Console, error) {
	c := &Console{
		scope:  scope,
		out:    os.Stdout,
		errOut: os.Stderr,
		fs:     afero.NewOsFs(),
		logger: zap.NewNop(),
		format: FormatTable,
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, ok, err := parser.Resolve[OutputFormat](scope.Resolver()); !ok || err != nil {
		return nil, &namedvars.ErrUnsupportedParse{Name: OutputFormatVar, Type: reflect.TypeFor[OutputFormat]()}
	}
	if _, err := namedvars.Register[OutputFormat](scope, OutputFormatVar, namedvars.RefOf(&c.format),
		namedvars.WithDescription("Output format of statement results: table, yaml or json.")); err != nil {
		return nil, err
	}
	return c, nil
}

// Format returns the current output format.
func (c *Console) Format() OutputFormat {
	return c.format
}

// Exited reports whether EXIT has been executed.
func (c *Console) Exited() bool {
	return c.exited
}

// Failures returns the number of statements that failed during Run.
func (c *Console) Failures() int {
	return c.failures
}

// Execute parses and executes one statement and writes its result.
func (c *Console) Execute(input string) error {
	stmt, err := ParseStatement(input)
	if err != nil {
		return err
	}

	c.logger.Debug("execute statement", zap.String("input", input), zap.String("statement", fmt.Sprintf("%T", stmt)))
	result, err := stmt.Execute(c)
	if err != nil {
		return err
	}
	return writeResult(c.out, result, c.format)
}

// Run executes every statement read from r, one per line, until EOF or EXIT.
// Statement errors are printed and do not stop the run; the returned error
// reports only failures to read r.
func (c *Console) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for !c.exited && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimSpace(strings.TrimSuffix(line, ";"))
		if line == "" || strings.HasPrefix(line, "--") || strings.HasPrefix(line, "#") {
			continue
		}

		if err := c.Execute(line); err != nil {
			c.printError(err)
		}
	}
	return scanner.Err()
}

func (c *Console) printError(err error) {
	c.failures++
	c.logger.Debug("statement failed", zap.Error(err))
	_, _ = color.New(color.FgRed).Fprintf(c.errOut, "ERROR: %v\n", err)
}

func (c *Console) source(path string) error {
	if c.depth >= maxSourceDepth {
		return errSourceTooDeep
	}

	b, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	c.depth++
	defer func() { c.depth-- }()

	c.logger.Debug("source file", zap.String("path", path), zap.Int("depth", c.depth))
	if err := c.Run(bytes.NewReader(b)); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}
