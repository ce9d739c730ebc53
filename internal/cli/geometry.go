package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CrankHint/internal/project"
)

func (c *CLI) geometryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geometry",
		Short: "Show the active geometry or list profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			g := c.geometry
			min, max := g.Inset()
			printTitle(out, "%s", g.Name)
			printKeyValue(out, "Screen", fmt.Sprintf("%dx%d", g.ScreenWidth, g.ScreenHeight))
			printKeyValue(out, "Scan area", fmt.Sprintf("%d,%d to %d,%d", min.X, min.Y, max.X, max.Y))
			printKeyValue(out, "Step", fmt.Sprintf("%d (%d positions)", g.Step, g.PerimeterLength()))
			printKeyValue(out, "Target clear", fmt.Sprintf("%d", g.TargetClearance))
			printKeyValue(out, "Overlay clear", fmt.Sprintf("%dx%d", g.OverlayClearX, g.OverlayClearY))
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List geometry profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := project.ListGeometryProfiles(project.DefaultProfilesDir())
			if err != nil {
				c.logger(cmd).Warn("some profiles failed to load", "err", err)
			}
			rows := [][]string{{"handheld", "built-in", "400x240"}}
			for _, p := range profiles {
				rows = append(rows, []string{p.Name, "profile", fmt.Sprintf("%dx%d", p.ScreenWidth, p.ScreenHeight)})
			}
			printTable(cmd.OutOrStdout(), []string{"Name", "Source", "Screen"}, rows, -1)
			return nil
		},
	}

	save := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the active geometry as a TOML profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := c.geometry
			g.Name = args[0]
			path := filepath.Join(project.DefaultProfilesDir(), args[0]+".toml")
			if err := project.SaveGeometryProfile(path, g); err != nil {
				return err
			}
			printFile(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.AddCommand(list, save)
	return cmd
}
