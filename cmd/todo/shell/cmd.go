// Package shellcmd implements the `todo shell` command.
package shellcmd

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/logging"
	"github.com/go-ports/todo/internal/service"
	"github.com/go-ports/todo/internal/shell"
)

// Command implements `todo shell`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the shell command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive todo shell (the default command)",
		Args:  cobra.NoArgs,
		RunE:  c.Run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// Run starts the shell on cmd's input and output streams. It is also the
// root command's RunE.
func (c *Command) Run(cmd *cobra.Command, _ []string) error {
	cfg, err := c.ctx.LoadConfig()
	if err != nil {
		return err
	}
	logger := logging.Init(cfg.Log.Level, cfg.Log.Format)

	svc, err := service.Open(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	in := cmd.InOrStdin()
	sh := shell.New(svc, shell.Options{
		In:          in,
		Out:         cmd.OutOrStdout(),
		Prompt:      cfg.Shell.Prompt,
		Interactive: isTerminal(in),
		Color:       cfg.Shell.Color,
		Logger:      logger.With("command", "shell"),
	})
	return sh.Run(cmd.Context())
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
