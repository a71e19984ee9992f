package ctl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/fresherlink/internal/app/bootstrap"
	applicationstore "github.com/dalemusser/fresherlink/internal/app/store/applications"
	jobstore "github.com/dalemusser/fresherlink/internal/app/store/jobs"
	userstore "github.com/dalemusser/fresherlink/internal/app/store/users"
	"github.com/dalemusser/fresherlink/internal/app/system/auth"
	"github.com/dalemusser/fresherlink/internal/app/system/inputval"
	"github.com/dalemusser/fresherlink/internal/domain/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
)

func newSchemaCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create collections, validators and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), v, func(ctx context.Context, db *mongo.Database) error {
				if err := bootstrap.SetupSchema(ctx, db, newLogger(v)); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("Schema ready:"), db.Name())
				return nil
			})
		},
	}
}

func newAdminCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ensure-admin",
		Short:   "Create an admin account if the email is unused",
		Example: `  FRESHERLINK_ADMIN_PASSWORD=... fresherlinkctl ensure-admin --email ops@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			email := v.GetString("admin_email")
			password := v.GetString("admin_password")
			if !inputval.IsValidEmail(email) {
				return fmt.Errorf("a valid --email is required")
			}
			if len(password) < auth.MinPasswordLength {
				return fmt.Errorf("password must be at least %d characters", auth.MinPasswordLength)
			}
			return withDB(cmd.Context(), v, func(ctx context.Context, db *mongo.Database) error {
				if err := bootstrap.EnsureAdmin(ctx, db, email, password, newLogger(v)); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("Admin ensured:"), email)
				return nil
			})
		},
	}
	cmd.Flags().String("email", "", "admin email")
	cmd.Flags().String("password", "", "admin password (prefer FRESHERLINK_ADMIN_PASSWORD)")
	_ = v.BindPFlag("admin_email", cmd.Flags().Lookup("email"))
	_ = v.BindPFlag("admin_password", cmd.Flags().Lookup("password"))
	return cmd
}

func newCleanupCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup-expired",
		Short: "Delete jobs whose deadline has passed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), v, func(ctx context.Context, db *mongo.Database) error {
				n, err := jobstore.New(db).DeleteExpired(ctx, time.Now().UTC())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", labelStyle.Render("Expired jobs deleted:"), n)
				return nil
			})
		},
	}
}

type stats struct {
	Students, Companies, Admins, ActiveJobs, Applications int64
}

func collectStats(ctx context.Context, db *mongo.Database) (stats, error) {
	var (
		s    stats
		errs []error
		err  error
	)
	users := userstore.New(db)
	s.Students, err = users.CountByRole(ctx, models.RoleStudent)
	errs = append(errs, err)
	s.Companies, err = users.CountByRole(ctx, models.RoleCompany)
	errs = append(errs, err)
	s.Admins, err = users.CountByRole(ctx, models.RoleAdmin)
	errs = append(errs, err)
	s.ActiveJobs, err = jobstore.New(db).CountActive(ctx)
	errs = append(errs, err)
	s.Applications, err = applicationstore.New(db).Count(ctx)
	errs = append(errs, err)
	return s, errors.Join(errs...)
}

func newStatsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print platform counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), v, func(ctx context.Context, db *mongo.Database) error {
				s, err := collectStats(ctx, db)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, titleStyle.Render("FresherLink Statistics"))
				fmt.Fprintf(out, "  %s %d\n", labelStyle.Render("Students:"), s.Students)
				fmt.Fprintf(out, "  %s %d\n", labelStyle.Render("Companies:"), s.Companies)
				fmt.Fprintf(out, "  %s %d\n", labelStyle.Render("Admins:"), s.Admins)
				fmt.Fprintf(out, "  %s %d\n", labelStyle.Render("Active jobs:"), s.ActiveJobs)
				fmt.Fprintf(out, "  %s %d\n", labelStyle.Render("Applications:"), s.Applications)
				return nil
			})
		},
	}
}
