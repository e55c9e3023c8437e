package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cyrup-ai/get.cyrup.ai/config"
)

var (
	flagConfig  string
	flagEnvFile string
)

var rootCmd = &cobra.Command{
	Use:          "searchindex",
	Short:        "Build and query static documentation search indexes",
	SilenceUsage: true,
	Long: `searchindex generates the searchindex.json / searchindex.js files used by
mdBook's search widget, and can search, verify and inspect existing ones.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file (mdBook search keys)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file with SEARCHINDEX_* overrides")
}

// 读入--config指定的配置并应用环境变量
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(flagEnvFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
