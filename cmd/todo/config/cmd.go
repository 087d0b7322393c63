// Package configcmd implements the `todo config` command group.
package configcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/todo/cmd/todo/shared"
)

const configTemplate = `# Todo configuration

shell:
  prompt: "todo>> "
  color: auto                   # auto | always | never

# Unfinished todos a single user may hold at once.
todos:
  max_active: 10

# Where users and todos live while the process runs.
# Nothing is kept after exit with either driver.
store:
  driver: memory                # memory | sqlite

log:
  level: warn                   # debug | info | warn | error
  format: auto                  # auto | text | json
`

// Command implements `todo config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Args:  cobra.NoArgs,
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(newConfigInit(ctx))
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	path, source := c.ctx.ConfigFile()
	cfg, err := c.ctx.LoadConfig()
	if err != nil {
		return err
	}
	data := map[string]any{
		"shell": map[string]any{
			"prompt": cfg.Shell.Prompt,
			"color":  cfg.Shell.Color,
		},
		"todos": map[string]any{
			"max_active": cfg.Todos.MaxActive,
		},
		"store": map[string]any{
			"driver": cfg.Store.Driver,
		},
		"log": map[string]any{
			"level":  cfg.Log.Level,
			"format": cfg.Log.Format,
		},
		"config_path":   path,
		"config_source": source,
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

// ---------------------------------------------------------------------------
// config init
// ---------------------------------------------------------------------------

func newConfigInit(ctx *shared.Context) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := ctx.ConfigFile()
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfgPath); err == nil && !force {
				fmt.Fprintf(out, "Config already exists at %s\n", cfgPath)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, []byte(configTemplate), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", cfgPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}
