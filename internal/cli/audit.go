package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CrankHint/internal/engine"
	"github.com/piwi3910/CrankHint/internal/export"
)

func (c *CLI) auditCommand() *cobra.Command {
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "audit [file]",
		Short: "Compare the curated order tables with an exhaustive search",
		Long: `Audit places every scenario twice, once with the curated processing orders
and once with every permutation, and reports how much cost the curated tables
leave on the table. Scenarios come from a CSV, Excel or DXF file, or from the
library when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := c.logger(cmd)
			out := cmd.OutOrStdout()

			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			scenarios, err := c.scenarioSource(logger, file)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			results := engine.CompareModes(c.geometry, scenarios)
			prog.done(fmt.Sprintf("Audited %d scenarios", len(results)))

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				if r.Err != nil {
					rows = append(rows, []string{r.Scenario.Name, "-", "-", "-", r.Err.Error()})
					continue
				}
				rows = append(rows, []string{
					r.Scenario.Name,
					fmt.Sprintf("%d", r.Curated.Cost),
					fmt.Sprintf("%d", r.Exhaustive.Cost),
					fmt.Sprintf("%d", r.Regret),
					fmt.Sprintf("%.1f%%", r.RegretPercent()),
				})
			}
			printTable(out, []string{"Scenario", "Curated", "Exhaustive", "Regret", ""}, rows, -1)

			s := engine.Summarize(results)
			if s.Suboptimal == 0 && s.Failed == 0 {
				printSuccess(out, "curated orders are optimal for all %d scenarios", s.Scenarios)
			} else {
				if s.Suboptimal > 0 {
					printWarning(out, "%d of %d scenarios cost more with curated orders (worst: %s, +%d)",
						s.Suboptimal, s.Scenarios, s.MaxName, s.MaxRegret)
				}
				if s.Failed > 0 {
					printError(out, "%d scenarios could not be placed", s.Failed)
				}
			}

			if xlsxPath != "" {
				if err := export.ExportAuditXLSX(xlsxPath, results); err != nil {
					return fmt.Errorf("export audit: %w", err)
				}
				printFile(out, xlsxPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the comparison to an Excel workbook")
	return cmd
}
