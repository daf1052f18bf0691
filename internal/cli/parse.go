package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/card-statement-parser/internal/parser"
	"github.com/insightdelivered/card-statement-parser/internal/writer"
)

func newParseCmd(a *app) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "parse <statement.pdf> [statement2.pdf ...]",
		Short: "Parse one or more statement PDFs",
		Example: `  cardstmt parse hdfc_bank.pdf
  cardstmt parse --format json --output result.json chase.pdf
  cardstmt parse --format csv jan.pdf feb.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.Format
			}
			return a.runParse(cmd, args, writer.Format(format), output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, json, yaml, csv (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write output to this file instead of stdout")
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, files []string, format writer.Format, output string) error {
	p := parser.New(parser.WithLogger(a.log))

	outcomes := make([]writer.Outcome, 0, len(files))
	failed := 0
	for _, file := range files {
		log := a.log.WithField("file", file)
		log.Info("processing statement")

		res, err := p.ParseFile(file)
		if err != nil {
			failed++
			log.WithError(err).Warn("statement not parsed")
		} else {
			entry := log.WithField("bank", res.BankName.String())
			if amt, ok := res.BalanceAmount(); ok {
				entry = entry.WithField("balance", amt.StringFixed(2))
			}
			entry.Info("statement parsed")
		}
		outcomes = append(outcomes, writer.Outcome{File: file, Result: res, Err: err})
	}

	w := &writer.Writer{Format: format}
	var err error
	if output != "" {
		err = w.WriteToFile(output, outcomes)
	} else {
		err = w.Write(cmd.OutOrStdout(), outcomes)
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d statement(s) could not be parsed", failed, len(files))
	}
	return nil
}
