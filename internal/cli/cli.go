// Package cli implements the crankhint command-line interface.
//
// The commands place overlays for ad-hoc targets or stored scenarios,
// compare the curated order tables against an exhaustive search, render PDF
// reports, and manage the scenario library. The CLI is built using cobra and
// logs through charmbracelet/log; --verbose switches to debug level, which
// also shows overlay session activity.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/CrankHint/internal/engine"
	"github.com/piwi3910/CrankHint/internal/model"
	"github.com/piwi3910/CrankHint/internal/project"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds state shared by all commands. It is filled in before any
// subcommand runs.
type CLI struct {
	configPath   string
	geometryRef  string
	verbose      bool
	logOut       io.Writer
	config       model.AppConfig
	geometry     model.Geometry
	scenarioPath string
}

// NewRootCmd builds the command tree. Log output goes to logOut.
func NewRootCmd(logOut io.Writer) *cobra.Command {
	c := &CLI{logOut: logOut}

	root := &cobra.Command{
		Use:          "crankhint",
		Short:        "CrankHint places on-screen crank hints away from what they point at",
		Long:         `CrankHint computes where the arrow overlays for a crank-controlled arm go: on the screen border, clear of every target and of each other, as close as possible to the joint they explain.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("crankhint %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", project.DefaultConfigPath(), "config file")
	root.PersistentFlags().StringVarP(&c.geometryRef, "geometry", "g", "", "geometry profile name or TOML file")

	root.AddCommand(c.placeCommand())
	root.AddCommand(c.auditCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.scenariosCommand())
	root.AddCommand(c.geometryCommand())

	return root
}

// Execute runs the crankhint CLI.
func Execute(ctx context.Context) error {
	return NewRootCmd(os.Stderr).ExecuteContext(ctx)
}

// setup loads the config, resolves the geometry and attaches the logger.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := project.LoadAppConfig(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.config = cfg

	logger := newLogger(c.logOut, resolveLevel(cfg.LogLevel, c.verbose))
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, logger))

	geo, err := project.ResolveGeometry(c.geometryRef, cfg.Geometry)
	if err != nil {
		return fmt.Errorf("geometry: %w", err)
	}
	c.geometry = geo
	c.scenarioPath = filepath.Join(filepath.Dir(c.configPath), "scenarios.json")

	logger.Debug("configuration loaded",
		"config", c.configPath,
		"geometry", geo.Name,
		"mode", cfg.SearchMode,
	)
	return nil
}

// placer returns a placer for the active geometry. mode overrides the
// configured search mode when not empty.
func (c *CLI) placer(mode string) (*engine.Placer, error) {
	if mode == "" {
		mode = string(c.config.SearchMode)
	}
	m, err := model.ParseSearchMode(mode)
	if err != nil {
		return nil, err
	}
	return &engine.Placer{Geometry: c.geometry, Mode: m}, nil
}

func (c *CLI) logger(cmd *cobra.Command) *log.Logger {
	return loggerFromContext(cmd.Context())
}
