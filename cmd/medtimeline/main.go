package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:          "medtimeline",
		Short:        "Personal medical timeline and vitals trends API",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", os.Getenv("MEDTIMELINE_CONFIG"), "path to a config file (yaml, json or env)")

	rootCmd.AddCommand(serveCmd(&configFile))
	rootCmd.AddCommand(migrateCmd(&configFile))
	rootCmd.AddCommand(tokenCmd(&configFile))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
