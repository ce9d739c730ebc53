package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CrankHint/internal/model"
	"github.com/piwi3910/CrankHint/internal/project"
)

func (c *CLI) scenariosCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scenarios",
		Aliases: []string{"scenario"},
		Short:   "Manage the scenario library",
	}
	cmd.AddCommand(c.scenariosListCommand())
	cmd.AddCommand(c.scenariosAddCommand())
	cmd.AddCommand(c.scenariosRemoveCommand())
	cmd.AddCommand(c.scenariosImportCommand())
	return cmd
}

func (c *CLI) scenariosListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadScenarios(c.scenarioPath)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(store.Scenarios))
			for _, s := range store.Scenarios {
				rows = append(rows, []string{s.ID, s.Name, formatTargets(s.Targets), s.Description})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "Name", "Targets", "Description"}, rows, -1)
			return nil
		},
	}
}

func (c *CLI) scenariosAddCommand() *cobra.Command {
	var targets []string
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a scenario to the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseTargets(targets)
			if err != nil {
				return err
			}
			store, err := project.LoadScenarios(c.scenarioPath)
			if err != nil {
				return err
			}
			if store.FindByName(args[0]) != nil {
				return fmt.Errorf("scenario %q already exists", args[0])
			}

			points := make([]model.Point, len(parsed))
			for i, t := range parsed {
				points[i] = t.Point()
			}
			sc := model.NewScenario(args[0], points...)
			sc.Description = description
			store.Add(sc)

			if err := project.SaveScenarios(c.scenarioPath, store); err != nil {
				return err
			}
			c.logger(cmd).Debug("scenario saved", "id", sc.ID, "path", c.scenarioPath)
			printSuccess(cmd.OutOrStdout(), "added %s (%s)", sc.Name, sc.ID)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&targets, "target", "t", nil, "target as x,y (repeat 3 or 4 times)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "free-form description")
	return cmd
}

func (c *CLI) scenariosRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name|id>",
		Aliases: []string{"rm"},
		Short:   "Remove a scenario from the library",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadScenarios(c.scenarioPath)
			if err != nil {
				return err
			}
			sc := store.FindByName(args[0])
			if sc == nil {
				sc = store.FindByID(args[0])
			}
			if sc == nil {
				return fmt.Errorf("no scenario named %q", args[0])
			}
			name := sc.Name
			store.Remove(sc.ID)
			if err := project.SaveScenarios(c.scenarioPath, store); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "removed %s", name)
			return nil
		},
	}
}

func (c *CLI) scenariosImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import scenarios from a CSV, Excel or DXF file into the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imported, err := c.scenarioSource(c.logger(cmd), args[0])
			if err != nil {
				return err
			}
			store, err := project.LoadScenarios(c.scenarioPath)
			if err != nil {
				return err
			}
			for _, sc := range imported {
				store.Add(sc)
			}
			if err := project.SaveScenarios(c.scenarioPath, store); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "imported %d scenarios", len(imported))
			return nil
		},
	}
}

func formatTargets(targets []model.TargetPoint) string {
	parts := make([]string, len(targets))
	for i, t := range targets {
		parts[i] = fmt.Sprintf("%d,%d", t.X, t.Y)
	}
	return strings.Join(parts, " ")
}
