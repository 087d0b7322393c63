// Package rootcmd wires the root cobra.Command for the todo CLI binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	configcmd "github.com/go-ports/todo/cmd/todo/config"
	mcpcmd "github.com/go-ports/todo/cmd/todo/mcp"
	"github.com/go-ports/todo/cmd/todo/shared"
	shellcmd "github.com/go-ports/todo/cmd/todo/shell"
	versioncmd "github.com/go-ports/todo/cmd/todo/version"
	"github.com/go-ports/todo/internal/buildinfo"
)

// New creates and returns the root cobra.Command for the todo CLI.
// Without a subcommand it starts the interactive shell.
func New() *cobra.Command {
	ctx := &shared.Context{}
	sh := shellcmd.New(ctx)

	root := &cobra.Command{
		Use:           "todo",
		Short:         "Todo: a multi-user, in-memory todo list shell",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          sh.Run,
	}

	root.PersistentFlags().StringVar(
		&ctx.ConfigPath, "config", "",
		"Config file (default: $TODO_CONFIG env → ~/.config/todo/config.yaml)",
	)
	root.PersistentFlags().StringVar(
		&ctx.LogLevel, "log-level", "",
		"Override log level: debug, info, warn, error",
	)

	root.AddCommand(
		sh.Cmd(),
		mcpcmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		versioncmd.New(ctx).Cmd(),
	)

	return root
}
