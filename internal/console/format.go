package console

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/apstndb/namedvars/parser"
)

// OutputFormat selects how statement results are rendered.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatYAML  OutputFormat = "yaml"
	FormatJSON  OutputFormat = "json"
)

// OutputFormats lists every supported format.
var OutputFormats = []OutputFormat{FormatTable, FormatYAML, FormatJSON}

func (f OutputFormat) String() string {
	return string(f)
}

// FormatRule is the parser rule for OutputFormat, matching names case-insensitively.
// Scopes passed to New must resolve OutputFormat through it.
func FormatRule() parser.Rule {
	return parser.EnumRule(OutputFormats, false)
}

// ParseFormat parses a string into an OutputFormat
func ParseFormat(s string) (OutputFormat, error) {
	return parser.FromEnum(OutputFormats, false).Parse(s)
}

// writeResult renders result to w in the given format.
// Results without a header produce no output.
func writeResult(w io.Writer, result *Result, format OutputFormat) error {
	if result == nil || len(result.Header) == 0 {
		return nil
	}

	switch format {
	case FormatYAML, FormatJSON:
		return writeStructured(w, result, format)
	default:
		return writeTable(w, result)
	}
}

// writeTable writes the result as an ASCII table.
func writeTable(w io.Writer, result *Result) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(
			renderer.NewBlueprint(tw.Rendition{Symbols: tw.NewSymbols(tw.StyleASCII)})),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithTrimSpace(tw.Off),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	).Configure(func(config *tablewriter.Config) {
		config.Row.Formatting.AutoWrap = tw.WrapNone
	})

	table.Header(result.Header)
	for _, row := range result.Rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// writeStructured writes the rows as a list of mappings keyed by column name,
// keeping the column order.
func writeStructured(w io.Writer, result *Result, format OutputFormat) error {
	docs := make([]yaml.MapSlice, 0, len(result.Rows))
	for _, row := range result.Rows {
		doc := make(yaml.MapSlice, 0, len(result.Header))
		for i, col := range result.Header {
			var value string
			if i < len(row) {
				value = row[i]
			}
			doc = append(doc, yaml.MapItem{Key: col, Value: value})
		}
		docs = append(docs, doc)
	}

	options := []yaml.EncodeOption{yaml.UseJSONMarshaler()}
	if format == FormatJSON {
		options = append(options, yaml.JSON())
	}
	b, err := yaml.MarshalWithOptions(docs, options...)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
