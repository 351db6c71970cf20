package console

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kballard/go-shellquote"
)

type statementDescription struct {
	Usage  string
	Syntax string
}

type statementHandler struct {
	Descriptions   []statementDescription
	Pattern        *regexp.Regexp
	HandleSubmatch func(matched []string) (Statement, error)
}

var statementHandlers = []*statementHandler{
	{
		Descriptions: []statementDescription{
			{
				Usage:  `Exit console`,
				Syntax: `EXIT`,
			},
		},
		Pattern: regexp.MustCompile(`(?is)^EXIT$`),
		HandleSubmatch: func(matched []string) (Statement, error) {
			return &ExitStatement{}, nil
		},
	},
	{
		Descriptions: []statementDescription{
			{
				Usage:  `List variables`,
				Syntax: `SHOW VARIABLES`,
			},
		},
		Pattern: regexp.MustCompile(`(?is)^SHOW\s+VARIABLES$`),
		HandleSubmatch: func(matched []string) (Statement, error) {
			return &ShowVariablesStatement{}, nil
		},
	},
	{
		Descriptions: []statementDescription{
			{
				Usage:  `Show variable`,
				Syntax: `SHOW VARIABLE <name>`,
			},
		},
		Pattern: regexp.MustCompile(`(?is)^SHOW\s+VARIABLE\s+(\S+)$`),
		HandleSubmatch: func(matched []string) (Statement, error) {
			return &ShowVariableStatement{VarName: matched[1]}, nil
		},
	},
	{
		Descriptions: []statementDescription{
			{
				Usage:  `Set variable`,
				Syntax: `SET <name> = <value>`,
			},
		},
		Pattern: regexp.MustCompile(`(?is)^SET\s+([^\s=]+)\s*=\s*(.*)$`),
		HandleSubmatch: func(matched []string) (Statement, error) {
			return &SetStatement{VarName: matched[1], Value: matched[2]}, nil
		},
	},
	{
		Descriptions: []statementDescription{
			{
				Usage:  `Show variables with descriptions`,
				Syntax: `HELP VARIABLES`,
			},
		},
		Pattern: regexp.MustCompile(`(?is)^HELP\s+VARIABLES$`),
		HandleSubmatch: func(matched []string) (Statement, error) {
			return &HelpVariablesStatement{}, nil
		},
	},
	{
		Descriptions: []statementDescription{
			{
				Usage:  `Run statements from file`,
				Syntax: `SOURCE <file>`,
			},
			{
				Usage:  `Run statements from file`,
				Syntax: `\. <file>`,
			},
		},
		Pattern: regexp.MustCompile(`(?is)^SOURCE\s+(.+)$`),
		HandleSubmatch: func(matched []string) (Statement, error) {
			return newSourceStatement(`SOURCE`, matched[1])
		},
	},
	{
		Descriptions: []statementDescription{
			{
				Usage:  `Show help`,
				Syntax: `HELP`,
			},
		},
		Pattern: regexp.MustCompile(`(?is)^HELP$`),
		HandleSubmatch: func(matched []string) (Statement, error) {
			return &HelpStatement{}, nil
		},
	},
}

// metaCommandPattern matches meta commands starting with \
var metaCommandPattern = regexp.MustCompile(`^\\(\S+)(?:\s+(.*))?$`)

// ParseStatement parses one console input line, without its trailing semicolon.
func ParseStatement(input string) (Statement, error) {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, `\`) {
		return parseMetaCommand(trimmed)
	}

	for _, h := range statementHandlers {
		if matched := h.Pattern.FindStringSubmatch(trimmed); matched != nil {
			return h.HandleSubmatch(matched)
		}
	}
	return nil, fmt.Errorf("unknown statement: %s", trimmed)
}

func parseMetaCommand(input string) (Statement, error) {
	matches := metaCommandPattern.FindStringSubmatch(input)
	if matches == nil {
		return nil, errors.New("invalid meta command format")
	}

	command, args := matches[1], matches[2]
	switch command {
	case ".":
		return newSourceStatement(`\.`, args)
	default:
		return nil, fmt.Errorf("unsupported meta command: \\%s", command)
	}
}

func newSourceStatement(command, args string) (Statement, error) {
	if strings.TrimSpace(args) == "" {
		return nil, fmt.Errorf("%s requires a filename", command)
	}
	words, err := shellquote.Split(args)
	if err != nil {
		return nil, fmt.Errorf("invalid filename quoting: %w", err)
	}
	if len(words) != 1 {
		return nil, fmt.Errorf("%s requires exactly one filename", command)
	}
	return &SourceStatement{FilePath: words[0]}, nil
}
