package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kanbancal/core/cmd/api/commands"
)

// @title Kanban API
// @version 1.0
// @description Kanban board and calendar backend: cards, comments and PIN-protected projects

// @host localhost:5001
// @BasePath /api

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kanban",
		Short:         "Kanban board API server",
		Long:          `kanban serves the REST API behind the kanban board and calendar: cards, their comments, and PIN-protected projects.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewProjectCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
