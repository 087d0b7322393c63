// Package versioncmd implements the `todo version` command.
package versioncmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/todo/cmd/todo/shared"
	"github.com/go-ports/todo/internal/buildinfo"
)

// Command implements `todo version`.
type Command struct {
	cmd *cobra.Command
}

// New creates the version command.
func New(_ *shared.Context) *Command {
	c := &Command{}
	c.cmd = &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "todo %s\n", buildinfo.Version)
			fmt.Fprintf(out, "commit: %s\n", buildinfo.GitCommit)
			fmt.Fprintf(out, "built:  %s\n", buildinfo.BuildDate)
			return nil
		},
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }
