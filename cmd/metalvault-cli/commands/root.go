package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/metalvault/metalvault/bootstrap"
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
	env        *bootstrap.Env
)

var rootCmd = &cobra.Command{
	Use:   "metalvault-cli",
	Short: "metalvault-cli extracts, fetches and refreshes catalog pages.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		env, err = bootstrap.NewEnv(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if verbose {
			env.LogLevel = "debug"
		}
		bootstrap.InitSlog(env)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", ".env", "path to the .env config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
