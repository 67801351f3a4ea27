package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"empedi/internal/app"
	"empedi/internal/config"
	"empedi/internal/database"
	"empedi/internal/database/migration"
	dbpostgres "empedi/internal/database/postgres"
	"empedi/internal/database/seeder"
	"empedi/internal/repository"
	"empedi/internal/usecase"

	"github.com/spf13/cobra"
)

var (
	timeout   time.Duration
	seedNames []string
)

var rootCmd = &cobra.Command{
	Use:          "empedi-admin",
	Short:        "Operational tasks for the empedi API",
	SilenceUsage: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db database.DB, logger *log.Logger) error {
			n, err := migration.Runner{Logger: logger}.Run(ctx, db.SQLDB())
			if err != nil {
				return err
			}
			logger.Printf("[Admin] migrations applied count=%d", n)
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo skills, accounts, postings, courses and mentors",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db database.DB, logger *log.Logger) error {
			seeders, err := seeder.Select(seeder.Defaults(), seedNames)
			if err != nil {
				return err
			}
			if err := (seeder.Runner{Seeders: seeders, Logger: logger}).Run(ctx, db); err != nil {
				return err
			}
			logger.Printf("[Admin] seed complete demo_password=%q", seeder.DemoPassword)
			return nil
		})
	},
}

var expireJobsCmd = &cobra.Command{
	Use:   "expire-jobs",
	Short: "Close active postings whose application deadline has passed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db database.DB, logger *log.Logger) error {
			uc := usecase.NewJobExpiryUsecase(repository.NewPostgresJobRepository(db), logger)
			n, err := uc.CloseExpired(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "closed %d postings\n", n)
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline for the command")
	seedCmd.Flags().StringSliceVar(&seedNames, "only", nil, "run only these seeders (skills, users, jobs, courses, mentor_profiles)")
	rootCmd.AddCommand(migrateCmd, seedCmd, expireJobsCmd)
}

func withDB(parent context.Context, fn func(ctx context.Context, db database.DB, logger *log.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger()

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	return fn(ctx, db, logger)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
