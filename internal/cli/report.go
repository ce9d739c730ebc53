package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CrankHint/internal/export"
)

func (c *CLI) reportCommand() *cobra.Command {
	var output, mode string

	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Render a PDF report with one page per scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("--output is required")
			}
			logger := c.logger(cmd)

			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			scenarios, err := c.scenarioSource(logger, file)
			if err != nil {
				return err
			}
			p, err := c.placer(mode)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			pages := export.PlanReport(p, scenarios)
			for _, page := range pages {
				if page.Err != nil {
					logger.Warn("scenario not placed", "scenario", page.Scenario.Name, "err", page.Err)
				}
			}
			if err := export.ExportReport(output, c.geometry, p.Mode, pages); err != nil {
				return fmt.Errorf("export report: %w", err)
			}
			prog.done(fmt.Sprintf("Rendered %d scenarios", len(pages)))

			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PDF path")
	cmd.Flags().StringVar(&mode, "mode", "", "search mode: curated or exhaustive")
	return cmd
}
