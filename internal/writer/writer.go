// Package writer renders parse outcomes as text, JSON, YAML or CSV.
package writer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/insightdelivered/card-statement-parser/internal/models"
)

// Format is an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// Outcome is the result of parsing one file: exactly one of Result and Err is set.
type Outcome struct {
	File   string
	Result *models.ExtractionResult
	Err    error
}

// Body returns the value rendered for the outcome: the result, or an ErrorResult.
func (o Outcome) Body() interface{} {
	if o.Err != nil {
		return models.NewErrorResult(o.Err)
	}
	return o.Result
}

// Writer writes outcomes in a fixed format.
type Writer struct {
	Format Format
}

// WriteToFile writes outcomes to the file at path.
func (w *Writer) WriteToFile(path string, outcomes []Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, outcomes)
}

// Write writes outcomes to out.
func (w *Writer) Write(out io.Writer, outcomes []Outcome) error {
	switch w.Format {
	case FormatText, "":
		return writeText(out, outcomes)
	case FormatJSON:
		return writeJSON(out, outcomes)
	case FormatYAML:
		return writeYAML(out, outcomes)
	case FormatCSV:
		return writeCSV(out, outcomes)
	default:
		return fmt.Errorf("unsupported output format: %q", w.Format)
	}
}

func writeText(out io.Writer, outcomes []Outcome) error {
	var b bytes.Buffer
	for _, o := range outcomes {
		fmt.Fprintf(&b, "Processing file: %s\n\n", o.File)
		b.WriteString("--- PARSED DATA ---\n")
		if o.Err != nil {
			fmt.Fprintf(&b, "FAILED: %s\n\n", o.Err)
			continue
		}
		for _, f := range o.Result.Fields() {
			fmt.Fprintf(&b, "%s: %s\n", f.Name, f.Value)
		}
		b.WriteByte('\n')
	}
	if _, err := b.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// A single outcome is written as a bare object; several as a file-keyed list.
type namedBody struct {
	File string      `json:"file" yaml:"file"`
	Body interface{} `json:"result" yaml:"result"`
}

func bodies(outcomes []Outcome) interface{} {
	if len(outcomes) == 1 {
		return outcomes[0].Body()
	}
	list := make([]namedBody, 0, len(outcomes))
	for _, o := range outcomes {
		list = append(list, namedBody{File: o.File, Body: o.Body()})
	}
	return list
}

func writeJSON(out io.Writer, outcomes []Outcome) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bodies(outcomes)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeYAML(out io.Writer, outcomes []Outcome) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(bodies(outcomes)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// csvRow is one field of one file. Numeric holds the plain decimal form of
// total_balance so spreadsheets can sum it.
type csvRow struct {
	File    string `csv:"file"`
	Field   string `csv:"field"`
	Value   string `csv:"value"`
	Numeric string `csv:"numeric"`
}

func writeCSV(out io.Writer, outcomes []Outcome) error {
	var rows []*csvRow
	for _, o := range outcomes {
		if o.Err != nil {
			rows = append(rows, &csvRow{File: o.File, Field: "error", Value: o.Err.Error()})
			continue
		}
		for _, f := range o.Result.Fields() {
			row := &csvRow{File: o.File, Field: f.Name, Value: f.Value.String()}
			if f.Name == models.FieldTotalBalance {
				if amt, ok := o.Result.BalanceAmount(); ok {
					row.Numeric = amt.StringFixed(2)
				}
			}
			rows = append(rows, row)
		}
	}

	if err := gocsv.Marshal(rows, out); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
