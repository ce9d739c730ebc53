package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CrankHint/internal/engine"
	"github.com/piwi3910/CrankHint/internal/export"
	"github.com/piwi3910/CrankHint/internal/model"
	"github.com/piwi3910/CrankHint/internal/project"
)

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	targets []string // "x,y" per role, in role order
	mode    string   // search mode override
	trace   bool     // list every order tried
}

func (c *CLI) placeCommand() *cobra.Command {
	var opts placeOpts

	cmd := &cobra.Command{
		Use:   "place [scenario]",
		Short: "Place overlays for a scenario or for --target points",
		Long: `Place computes overlay positions for three or four targets.

Targets are given in role order (bottom wrist, elbow, top wrist, then the
optional action target) either with repeated --target x,y flags or by naming
a scenario from the library.`,
		Example: `  crankhint place --target 100,100 --target 300,100 --target 300,180
  crankhint place "Folded arm" --trace`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.targets, "target", "t", nil, "target as x,y (repeat 3 or 4 times)")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "search mode: curated or exhaustive")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "show every processing order tried")

	return cmd
}

func (c *CLI) runPlace(cmd *cobra.Command, args []string, opts placeOpts) error {
	logger := c.logger(cmd)
	out := cmd.OutOrStdout()

	var name string
	var targets []model.TargetPoint
	switch {
	case len(args) == 1 && len(opts.targets) > 0:
		return errors.New("give either a scenario name or --target points, not both")
	case len(args) == 1:
		store, err := project.LoadScenarios(c.scenarioPath)
		if err != nil {
			return fmt.Errorf("load scenario library: %w", err)
		}
		sc := store.FindByName(args[0])
		if sc == nil {
			sc = store.FindByID(args[0])
		}
		if sc == nil {
			return fmt.Errorf("no scenario named %q", args[0])
		}
		if err := model.ValidateTargets(sc.Targets); err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		name, targets = sc.Name, sc.Targets
	default:
		t, err := parseTargets(opts.targets)
		if err != nil {
			return err
		}
		targets = t
	}

	p, err := c.placer(opts.mode)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	result, err := p.Evaluate(targets)
	if err != nil {
		var pe *engine.PlacementError
		if errors.As(err, &pe) {
			printError(out, "%s has no legal overlay position (order %s, %d placed)",
				pe.Role, export.FormatOrder(pe.Order), len(pe.Committed))
		}
		return err
	}
	prog.done(fmt.Sprintf("Placed %d overlays", len(result.Best.Slots)))

	if name != "" {
		printTitle(out, "%s", name)
	}
	printSlots(cmd, targets, result.Best)
	printKeyValue(out, "Cost", fmt.Sprintf("%d", result.Best.Cost))
	printKeyValue(out, "Order", export.FormatOrder(result.Best.Order))
	printKeyValue(out, "Orders tried", fmt.Sprintf("%d (%s)", len(result.Attempts), p.Mode))

	if opts.trace {
		printAttempts(cmd, result)
	}
	return nil
}

func printSlots(cmd *cobra.Command, targets []model.TargetPoint, set model.PlacementSet) {
	rows := make([][]string, 0, len(set.Slots))
	for i, s := range set.Slots {
		t := targets[i]
		rows = append(rows, []string{
			s.Role.String(),
			fmt.Sprintf("%d,%d", t.X, t.Y),
			fmt.Sprintf("%d,%d", s.X, s.Y),
			fmt.Sprintf("%d", s.Score),
		})
	}
	printTable(cmd.OutOrStdout(), []string{"Role", "Target", "Overlay", "Score"}, rows, -1)
}

func printAttempts(cmd *cobra.Command, result engine.SearchResult) {
	rows := make([][]string, 0, len(result.Attempts))
	for _, a := range result.Attempts {
		cost := "-"
		if a.Err == nil {
			cost = fmt.Sprintf("%d", a.Set.Cost)
		}
		rows = append(rows, []string{export.FormatOrder(a.Order), cost})
	}
	printTable(cmd.OutOrStdout(), []string{"Order", "Cost"}, rows, result.BestIndex)
}
