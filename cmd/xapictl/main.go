// Command xapictl is an operator tool for the xAPI connector: it sends single
// events, runs aggregate queries and decodes LRS responses.
package main

import (
	"fmt"
	"log/slog"
	"os"
	_ "time/tzdata"

	corecfg "github.com/aevon-lab/xapi-connect/internal/core/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	envFile    string
	verbose    bool
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "xapictl",
		Short:         "Operate the xAPI connector from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if g.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "xapi-connect.yaml", "Path to configuration file")
	cmd.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "Optional dotenv file loaded before the config")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(
		sendCmd(g),
		aggregateCmd(g),
		requestCmd(g),
		durationCmd(),
		statementIDCmd(),
	)
	return cmd
}

// loadConfig reads the dotenv file, if present, and the configuration.
func (g *globalFlags) loadConfig() (*corecfg.Config, error) {
	if err := godotenv.Load(g.envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load %s: %w", g.envFile, err)
	}
	return corecfg.Load(g.configPath)
}
