package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/expense-ledger/internal/aggregator"
	"fjacquet/expense-ledger/internal/logging"

	"gopkg.in/yaml.v3"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Generator renders summaries in the supported formats.
type Generator struct {
	logger      logging.Logger
	withHistory bool
}

// NewGenerator creates a Generator. withHistory adds the full ledger to the output.
func NewGenerator(logger logging.Logger, withHistory bool) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Generator{logger: logger, withHistory: withHistory}
}

// Generate renders s in format and returns the bytes.
func (g *Generator) Generate(s aggregator.Summary, format string) ([]byte, error) {
	var sb strings.Builder
	if err := g.Write(&sb, s, format); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// Write renders s in format to w.
func (g *Generator) Write(w io.Writer, s aggregator.Summary, format string) error {
	view := NewView(s, g.withHistory)

	switch strings.ToLower(format) {
	case FormatText, "":
		return writeText(w, view)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			g.logger.WithError(err).Error("Failed to marshal JSON report")
			return fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			g.logger.WithError(err).Error("Failed to marshal YAML report")
			return fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

func writeText(w io.Writer, v View) error {
	p := &printer{w: w}

	if len(v.History) > 0 {
		p.line("Expense History")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		p.fprintf(tw, "Date\tAmount\tCategory\tDescription\n")
		for _, r := range v.History {
			p.fprintf(tw, "%s\t%s\t%s\t%s\n", r.Date, r.Amount, r.Category, r.Description)
		}
		p.check(tw.Flush())
		p.line("")
	}

	if v.Count > 0 {
		p.line("Total Expenses: " + v.Total)
		p.line("")
		p.line("Expenses by Category")
		p.table(v.ByCategory)
		p.line("")
		p.line("Expenses Over Time")
		p.table(v.ByDate)
	}

	if v.Budget != nil {
		p.line("")
		p.line("50/30/20 Rule Summary")
		for _, r := range v.Budget.Rows {
			p.line(fmt.Sprintf("%s: %s%% of income (Recommended: %s%%)", r.Category, r.Percentage, r.Recommended))
		}
		p.line("")
		p.line("Compliance with 50/30/20 Rule")
		for _, r := range v.Budget.Rows {
			mark := "[x]"
			if r.Compliant {
				mark = "[ok]"
			}
			p.line(fmt.Sprintf("%s: %s %s", r.Category, mark, r.Message))
		}
	}

	if len(v.Notices) > 0 {
		p.line("")
		for _, n := range v.Notices {
			p.line(n)
		}
	}
	return p.err
}

// printer keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) check(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *printer) fprintf(w io.Writer, format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, err := fmt.Fprintf(w, format, args...)
	p.check(err)
}

func (p *printer) line(s string) {
	p.fprintf(p.w, "%s\n", s)
}

func (p *printer) table(rows []AmountRow) {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		p.fprintf(tw, "  %s\t%s\n", r.Label, r.Amount)
	}
	p.check(tw.Flush())
}
