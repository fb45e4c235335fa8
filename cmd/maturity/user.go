package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orgmaturity/assessment-api/internal/core/domain"
	"github.com/orgmaturity/assessment-api/internal/core/service"
	"github.com/orgmaturity/assessment-api/internal/infrastructure/db/sqldb"
)

type createUserOptions struct {
	username string
	password string
	email    string
	fullName string
	role     string
}

// newCreateUserCommand bootstraps an account without going through the API,
// which is the only way to obtain the first super user.
func newCreateUserCommand(a *app) *cobra.Command {
	opts := &createUserOptions{}

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user account directly in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.username = strings.TrimSpace(opts.username)
			if opts.username == "" {
				return fmt.Errorf("--username is required")
			}
			if len(opts.password) < 8 {
				return domain.ErrWeakPassword
			}
			if !domain.ValidRole(opts.role) {
				return fmt.Errorf("%w: %q", domain.ErrInvalidRole, opts.role)
			}

			ctx := cmd.Context()
			db, err := openSQL(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer sqldb.Close(db)

			if err := sqldb.NewMigrator(db).Migrate(ctx); err != nil {
				return err
			}

			hash, err := service.HashPassword(opts.password)
			if err != nil {
				return err
			}
			user := &domain.User{
				Username:     opts.username,
				Email:        strings.TrimSpace(opts.email),
				FullName:     strings.TrimSpace(opts.fullName),
				PasswordHash: hash,
				Role:         opts.role,
			}
			if err := sqldb.NewUserRepository(db).Create(ctx, user); err != nil {
				return err
			}

			a.log.Info().
				Uint("id", user.ID).
				Str("username", user.Username).
				Str("role", user.Role).
				Msg("user created")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.username, "username", "", "login name")
	cmd.Flags().StringVar(&opts.password, "password", "", "initial password (min 8 characters)")
	cmd.Flags().StringVar(&opts.email, "email", "", "contact email")
	cmd.Flags().StringVar(&opts.fullName, "full-name", "", "display name")
	cmd.Flags().StringVar(&opts.role, "role", domain.RoleSuperUser, "super_user, admin, lead_consultant or user")

	return cmd
}
