package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/agentsmith/agentsmith/config"
	"github.com/agentsmith/agentsmith/llm"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <user prompt>",
	Short: "Send a prompt to an LLM backend and print the response",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringP("system", "s", "You are a helpful assistant.", "System prompt")
	generateCmd.Flags().Float64P("temperature", "t", 0, "Sampling temperature (0 = vendor default)")
	generateCmd.Flags().Int("max-tokens", 0, "Maximum output tokens (0 = vendor default)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	provider, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model")
	system, _ := cmd.Flags().GetString("system")
	temperature, _ := cmd.Flags().GetFloat64("temperature")
	maxTokens, _ := cmd.Flags().GetInt("max-tokens")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Read(configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	factory := llm.NewFactory(cfg)
	gateway := llm.NewGateway(factory, llm.WithMiddleware(llm.LoggingMiddleware(logger)))

	modelCfg := llm.ModelConfig{Model: model}
	if temperature != 0 {
		modelCfg.Temperature = &temperature
	}
	if maxTokens != 0 {
		modelCfg.MaxTokens = &maxTokens
	}

	prompt := llm.SimplePrompt(system, strings.Join(args, " "))
	result, err := gateway.Generate(cmd.Context(), provider, modelCfg, prompt)
	if err != nil {
		return err
	}

	if result.Kind == llm.ResultError {
		return fmt.Errorf("backend returned no content: %s", result.Message)
	}
	fmt.Println(result.Message)
	for _, call := range result.ToolCalls {
		fmt.Fprintf(os.Stderr, "tool call %s: %s\n", call.ID, call.Name)
	}
	return nil
}
