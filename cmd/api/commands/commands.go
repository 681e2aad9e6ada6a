package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kanbancal/core/internal/adapters/repository"
	"github.com/kanbancal/core/internal/application/services"
	"github.com/kanbancal/core/internal/infrastructure/config"
	"github.com/kanbancal/core/internal/infrastructure/database"
	"github.com/kanbancal/core/internal/infrastructure/logger"
	"github.com/kanbancal/core/internal/infrastructure/server"
	"github.com/kanbancal/core/internal/ports"
)

// Build information, set with -ldflags
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "development"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the kanban API server",
		Long:  "Start the kanban API server with all configured routes and middleware",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version)",
	}

	for _, direction := range []string{database.MigrateUp, database.MigrateDown} {
		direction := direction
		migrateCmd.AddCommand(&cobra.Command{
			Use:   direction,
			Short: fmt.Sprintf("Run all %s migrations", direction),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigration(cmd, direction)
			},
		})
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			version, dirty, err := database.MigrationVersion(cfg.Database)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Dirty: %t\n", dirty)
			return nil
		},
	})

	return migrateCmd
}

// NewProjectCommand creates the project management command
func NewProjectCommand() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Project management commands",
		Long:  "Create and list PIN-protected projects",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			pin, _ := cmd.Flags().GetString("pin")

			return withProjectService(func(svc *services.ProjectService) error {
				project, err := svc.CreateProject(cmd.Context(), ports.CreateProjectRequest{Name: name, PIN: pin})
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Project created successfully:\n")
				fmt.Fprintf(cmd.OutOrStdout(), "  ID: %d\n", project.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "  Name: %s\n", project.Name)
				return nil
			})
		},
	}
	createCmd.Flags().String("name", "", "Project name (required)")
	createCmd.Flags().String("pin", "", "Project PIN (required)")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("pin")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProjectService(func(svc *services.ProjectService) error {
				projects, err := svc.ListProjects(cmd.Context())
				if err != nil {
					return err
				}

				for _, p := range projects {
					fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", p.ID, p.Name)
				}
				return nil
			})
		},
	}

	projectCmd.AddCommand(createCmd, listCmd)
	return projectCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print kanban version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kanban %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Build Date: %s\n", BuildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database, database.MigrateUp); err != nil && !errors.Is(err, database.ErrNoChange) {
			return err
		}
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	srv, err := server.New(cfg, db, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	appLogger.Infow("Starting kanban API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Server.GetAddr())
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func runMigration(cmd *cobra.Command, direction string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	err = database.Migrate(cfg.Database, direction)
	if errors.Is(err, database.ErrNoChange) {
		fmt.Fprintln(cmd.OutOrStdout(), "No migrations to run")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration %s completed successfully\n", direction)
	return nil
}

func withProjectService(fn func(svc *services.ProjectService) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	log := logger.NewNop()
	store := repository.NewTableStore(db.DB, log)
	return fn(services.NewProjectService(repository.NewProjectRepository(store), log))
}
