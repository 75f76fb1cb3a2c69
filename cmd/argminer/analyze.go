package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"argminer/internal/gateway/app"
	"argminer/internal/gateway/service/analysis"
)

const formatJSON = "json"

func newAnalyzeCmd() *cobra.Command {
	var (
		file   string
		strat  string
		format string
	)
	cmd := &cobra.Command{
		Use:   "analyze [-f file | -]",
		Short: "Analyze discussion text and print the diagram",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" && len(args) == 1 {
				file = args[0]
			}
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			text, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			deps, err := app.NewDeps(cmd.Context(), cfg, logger, nil)
			if err != nil {
				return err
			}
			defer deps.Close()

			asJSON := strings.EqualFold(strings.TrimSpace(format), formatJSON)
			req := analysis.AnalyzeRequest{Strategy: strat, Text: text}
			if !asJSON {
				req.Format = format
			}
			res, err := deps.Analysis.Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res.Graph)
			}
			_, err = io.WriteString(out, res.Diagram)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "input file, - for stdin (default stdin)")
	cmd.Flags().StringVarP(&strat, "strategy", "s", "", "analysis strategy (default from DEFAULT_STRATEGY)")
	cmd.Flags().StringVar(&format, "format", "", "output format: mermaid, dot or json")
	return cmd
}

func readInput(stdin io.Reader, file string) (string, error) {
	var (
		data []byte
		err  error
	)
	if file == "" || file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
