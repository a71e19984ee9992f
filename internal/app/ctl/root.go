// Package ctl is the operator command line: schema setup, admin bootstrap
// and maintenance against the same database the API server uses.
package ctl

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/dalemusser/fresherlink/internal/app/bootstrap"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)

// NewRootCmd builds the command tree. v holds the merged settings; tests
// pass their own.
func NewRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "fresherlinkctl",
		Short:         "Operate a FresherLink deployment",
		Long:          "fresherlinkctl prepares and maintains the MongoDB database behind the FresherLink API.",
		Version:       bootstrap.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v, cfgFile)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	root.PersistentFlags().String("mongo-database", "fresherlink", "MongoDB database name")
	root.PersistentFlags().Bool("verbose", false, "log at debug level")
	_ = v.BindPFlag("mongo_uri", root.PersistentFlags().Lookup("mongo-uri"))
	_ = v.BindPFlag("mongo_database", root.PersistentFlags().Lookup("mongo-database"))
	_ = v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(
		newSchemaCmd(v),
		newAdminCmd(v),
		newCleanupCmd(v),
		newStatsCmd(v),
	)
	return root
}

// loadConfig layers FRESHERLINK_* environment variables and an optional
// config file under the flags.
func loadConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(bootstrap.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile == "" {
		return nil
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", cfgFile, err)
	}
	return nil
}

func newLogger(v *viper.Viper) *zap.Logger {
	if v.GetBool("verbose") {
		l, err := zap.NewDevelopment()
		if err == nil {
			return l
		}
	}
	return zap.NewNop()
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(viper.New()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		stop()
		os.Exit(1)
	}
}
