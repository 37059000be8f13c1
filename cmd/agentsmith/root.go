package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "agentsmith",
	Short: "Provider-agnostic text-generation gateway",
	Long:  "agentsmith sends one vendor-neutral prompt to any configured LLM backend and prints the normalized result.",
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "config.json", "Path to the gateway config file")
	rootCmd.PersistentFlags().StringP("provider", "p", "", "Provider key (inferred from model if empty)")
	rootCmd.PersistentFlags().StringP("model", "m", "", "Model identifier")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
