// Command support-engine-cli is the operator tool for the support engine:
// ask questions locally, seed the knowledge base, and inspect FAQ data.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lookog/scoot-assist-ai/internal/config"
	"github.com/lookog/scoot-assist-ai/internal/observability"
)

var (
	cfgPath string
	cfg     *config.Config
	logger  *observability.Logger
)

var rootCmd = &cobra.Command{
	Use:   "support-engine-cli",
	Short: "Operator CLI for the customer support engine",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger = observability.NewLogger(observability.LogConfig{
			Level:       "warn", // keep CLI output clean
			Format:      "console",
			ServiceName: "support-engine-cli",
		})
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", os.Getenv("CONFIG_PATH"), "path to config file")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(faqCmd)
	rootCmd.AddCommand(patternsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
