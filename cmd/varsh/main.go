// Command varsh is a small console for inspecting and changing named variables.
package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/jessevdk/go-flags"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/apstndb/namedvars"
	"github.com/apstndb/namedvars/bind"
	"github.com/apstndb/namedvars/internal/console"
	"github.com/apstndb/namedvars/parser"
)

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
)

var version = "(devel)"

type options struct {
	Execute  string            `long:"execute" short:"e" description:"Execute statements and quit."`
	File     string            `long:"file" short:"f" description:"Execute statements from file and quit."`
	Format   string            `long:"format" env:"VARSH_FORMAT" description:"Output format." choice:"table" choice:"yaml" choice:"json" default:"table"`
	LogLevel string            `long:"log-level" env:"VARSH_LOG_LEVEL" description:"Log level (debug, info, warn, error)." default:"warn"`
	Set      map[string]string `long:"set" key-value-delimiter:"=" description:"Set variables e.g. --set=name1=value1 --set=name2=value2"`
	Help     bool              `long:"help" short:"h" hidden:"true"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	flagParser := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash)
	flagParser.Name = "varsh"
	flagParser.LongDescription = heredoc.Doc(`
		varsh reads statements from --execute, --file or standard input and
		runs them against its variables. Type HELP for the statement list and
		HELP VARIABLES for the variables.
	`)

	if _, err := flagParser.ParseArgs(args); flags.WroteHelp(err) {
		return exitCodeSuccess
	} else if err != nil {
		flagParser.WriteHelp(stderr)
		return exitf(stderr, "Invalid options\n")
	} else if opts.Help {
		flagParser.WriteHelp(stderr)
		return exitCodeSuccess
	}

	if opts.Execute != "" && opts.File != "" {
		return exitf(stderr, "invalid parameters: --execute and --file are mutually exclusive\n")
	}

	logger, err := newLogger(opts.LogLevel, stderr)
	if err != nil {
		return exitf(stderr, "invalid --log-level: %v\n", err)
	}
	defer func() { _ = logger.Sync() }()

	format, err := console.ParseFormat(opts.Format)
	if err != nil {
		return exitf(stderr, "invalid --format: %v\n", err)
	}

	scope := namedvars.NewScope(
		namedvars.WithResolver(newResolver()),
		namedvars.WithLogger(logger),
	)
	if _, err := registerVariables(scope, newSettings()); err != nil {
		return exitf(stderr, "%v\n", err)
	}

	c, err := console.New(scope,
		console.WithOutput(stdout),
		console.WithErrorOutput(stderr),
		console.WithFormat(format),
		console.WithLogger(logger),
	)
	if err != nil {
		return exitf(stderr, "%v\n", err)
	}

	if err := applySets(scope, opts.Set); err != nil {
		return exitf(stderr, "%v\n", err)
	}

	var input io.Reader
	switch {
	case opts.Execute != "":
		input = strings.NewReader(opts.Execute)
	case opts.File != "":
		f, err := os.Open(opts.File)
		if err != nil {
			return exitf(stderr, "Read from file %v failed: %v\n", opts.File, err)
		}
		defer f.Close()
		input = f
	default:
		input = stdin
	}

	if err := c.Run(input); err != nil {
		return exitf(stderr, "Read failed: %v\n", err)
	}
	return lo.Ternary(c.Failures() > 0, exitCodeError, exitCodeSuccess)
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core, zap.Development()), nil
}

func newResolver() parser.Resolver {
	return parser.Extend(parser.Default(),
		console.FormatRule(),
		parser.For(parser.Split(",")),
	)
}

// applySets applies --set values in name order. Values are plain text, not
// GoogleSQL literals.
func applySets(scope *namedvars.Scope, sets map[string]string) error {
	names := lo.Keys(sets)
	slices.Sort(names)

	for _, name := range names {
		v, ok := scope.Lookup(name)
		if !ok {
			return fmt.Errorf("--set: %w", &namedvars.ErrUnknownVariable{Name: name})
		}
		if err := v.ParseAndSet(sets[name]); err != nil {
			return fmt.Errorf("--set: %w", err)
		}
	}
	return nil
}

func exitf(w io.Writer, format string, a ...any) int {
	fmt.Fprintf(w, format, a...)
	return exitCodeError
}

// registerVariables registers the built-in variables backed by st.
func registerVariables(scope *namedvars.Scope, st *settings) ([]namedvars.Var, error) {
	vars, err := bind.Struct(scope, st, bind.WithConverter(tagSet.sorted, newTagSet))
	if err != nil {
		return nil, err
	}

	ver, err := namedvars.Func(scope, "version", func() string { return version }, nil,
		namedvars.WithDescription("Version of varsh."))
	if err != nil {
		return nil, err
	}

	return append(vars, ver), nil
}
