package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finlens/finlens/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "finlens",
	Short: "Financial statement analysis dashboard",
	Long:  "Analyzes three-column financial statements (line item, prior year, current year): growth rates, asset weights, current-ratio liquidity, and optional LLM commentary and chat.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Local .env, if present, feeds the environment viper reads.
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
