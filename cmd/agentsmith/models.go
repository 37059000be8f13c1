package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/agentsmith/agentsmith/llm"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known models, optionally filtered by provider",
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	provider, _ := cmd.Flags().GetString("provider")

	models := llm.ListModels(provider)
	if len(models) == 0 {
		return fmt.Errorf("no known models for provider %q", provider)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tPROVIDER\tCONTEXT\tTOOLS\tALIASES")
	for _, m := range models {
		tools := "-"
		if m.SupportsTools {
			tools = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			m.ID, m.Provider, m.ContextWindow, tools, strings.Join(m.Aliases, ","))
	}
	return w.Flush()
}
