package console

import (
	"strings"

	"go.uber.org/zap"

	"github.com/apstndb/namedvars"
)

// Statement is a parsed console command.
type Statement interface {
	Execute(c *Console) (*Result, error)
}

// Result is the tabular outcome of a statement.
type Result struct {
	Header []string
	Rows   [][]string
}

type ShowVariablesStatement struct{}

func (s *ShowVariablesStatement) Execute(c *Console) (*Result, error) {
	var rows [][]string
	for v := range c.scope.All() {
		rows = append(rows, []string{v.Name(), v.String()})
	}
	return &Result{
		Header: []string{"name", "value"},
		Rows:   rows,
	}, nil
}

type ShowVariableStatement struct {
	VarName string
}

func (s *ShowVariableStatement) Execute(c *Console) (*Result, error) {
	v, ok := c.scope.Lookup(s.VarName)
	if !ok {
		return nil, &namedvars.ErrUnknownVariable{Name: s.VarName}
	}

	value, err := v.Text()
	if err != nil {
		return nil, err
	}
	return &Result{
		Header: []string{v.Name()},
		Rows:   [][]string{{value}},
	}, nil
}

type SetStatement struct {
	VarName string
	Value   string
}

func (s *SetStatement) Execute(c *Console) (*Result, error) {
	v, ok := c.scope.Lookup(s.VarName)
	if !ok {
		return nil, &namedvars.ErrUnknownVariable{Name: s.VarName}
	}

	text := literalText(s.Value)
	c.logger.Debug("set variable", zap.String("name", s.VarName), zap.String("value", s.Value), zap.String("text", text))
	if err := v.ParseAndSet(text); err != nil {
		return nil, err
	}
	return &Result{}, nil
}

type HelpVariablesStatement struct{}

func (s *HelpVariablesStatement) Execute(c *Console) (*Result, error) {
	var rows [][]string
	for v := range c.scope.All() {
		ops := []string{"read"}
		if v.CanParse() && !v.ReadOnly() {
			ops = append(ops, "write")
		}
		rows = append(rows, []string{v.Name(), v.Type().String(), strings.Join(ops, ","), v.Description()})
	}
	return &Result{
		Header: []string{"name", "type", "operations", "desc"},
		Rows:   rows,
	}, nil
}

type HelpStatement struct{}

func (s *HelpStatement) Execute(c *Console) (*Result, error) {
	var rows [][]string
	for _, h := range statementHandlers {
		for _, desc := range h.Descriptions {
			rows = append(rows, []string{desc.Usage, desc.Syntax + ";"})
		}
	}
	return &Result{
		Header: []string{"Usage", "Syntax"},
		Rows:   rows,
	}, nil
}

// SourceStatement runs the statements in a file.
type SourceStatement struct {
	FilePath string
}

func (s *SourceStatement) Execute(c *Console) (*Result, error) {
	return nil, c.source(s.FilePath)
}

type ExitStatement struct{}

func (s *ExitStatement) Execute(c *Console) (*Result, error) {
	c.exited = true
	return &Result{}, nil
}
