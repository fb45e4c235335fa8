// Command maturity runs the maturity assessment API and its maintenance tasks.
//
//	@title						Maturity Assessment API
//	@version					1.0
//	@description				Admin console, public assessment flow and client hours tracking.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/orgmaturity/assessment-api/internal/pkg/config"
	"github.com/orgmaturity/assessment-api/pkg/logger"
)

// app is shared by every subcommand once PersistentPreRunE has run.
type app struct {
	envFile string
	cfg     *config.Config
	log     zerolog.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "maturity",
		Short:         "Maturity assessment platform API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	cmd.AddCommand(newServeCommand(a))
	cmd.AddCommand(newMigrateCommand(a))
	cmd.AddCommand(newCreateUserCommand(a))

	return cmd
}

func (a *app) load(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", a.envFile, err)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "maturity-api",
	})
	return nil
}
