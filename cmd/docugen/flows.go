package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Adv-2005/DocuGenAI/common/llm"
	"github.com/Adv-2005/DocuGenAI/common/logger"
	"github.com/Adv-2005/DocuGenAI/core/config"
	"github.com/Adv-2005/DocuGenAI/internal/flow"
)

func newFlowsCmd(registry *flow.Registry) *cobra.Command {
	flowsCmd := &cobra.Command{
		Use:   "flows",
		Short: "List, render and run documentation flows",
	}

	flowsCmd.AddCommand(
		newFlowsListCmd(registry),
		newFlowsRenderCmd(registry),
		newFlowsRunCmd(registry),
	)
	return flowsCmd
}

func newFlowsListCmd(registry *flow.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List flows with their input fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tINPUT\tDESCRIPTION")
			for _, def := range registry.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", def.Name, describeInput(def), def.Description)
			}
			return w.Flush()
		},
	}
}

// describeInput marks optional fields with a trailing "?".
func describeInput(def *flow.Definition) string {
	names := make([]string, 0, len(def.Input.Fields))
	for _, f := range def.Input.Fields {
		name := f.Name
		if !f.Required {
			name += "?"
		}
		names = append(names, name)
	}
	return strings.Join(names, ",")
}

func newFlowsRenderCmd(registry *flow.Registry) *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "render <flow>",
		Short: "Validate the input and print the prompt without calling a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := lookupFlow(registry, args[0])
			if err != nil {
				return err
			}
			input, err := readInput(cmd.InOrStdin(), inputPath)
			if err != nil {
				return err
			}

			text, err := flow.New(nil).Render(cmd.Context(), def, input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "JSON or YAML input file, - for stdin")
	return cmd
}

func newFlowsRunCmd(registry *flow.Registry) *cobra.Command {
	var (
		inputPath  string
		showPrompt bool
	)

	cmd := &cobra.Command{
		Use:   "run <flow>",
		Short: "Run a flow against the configured model provider and print its output as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := lookupFlow(registry, args[0])
			if err != nil {
				return err
			}
			input, err := readInput(cmd.InOrStdin(), inputPath)
			if err != nil {
				return err
			}

			cfg, err := config.Load(config.ServiceTypeCLI)
			if err != nil {
				return err
			}
			logger.Setup(cfg)

			orchestrator, err := newOrchestrator(cmd.Context(), cfg.LLM)
			if err != nil {
				return err
			}

			result, err := orchestrator.Run(cmd.Context(), def, input)
			if err != nil {
				return err
			}

			if showPrompt {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n", result.Prompt)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result.Output.Map())
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "JSON or YAML input file, - for stdin")
	cmd.Flags().BoolVar(&showPrompt, "show-prompt", false, "print the rendered prompt to stderr")
	return cmd
}

func newOrchestrator(ctx context.Context, cfg config.LLMConfig) (*flow.Orchestrator, error) {
	provider, err := llm.NewProvider(ctx, llm.Config{
		Provider: llm.ProviderName(cfg.Provider),
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Model:    cfg.Model,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("creating llm provider: %w", err)
	}

	return flow.New(
		llm.NewInvoker(provider, cfg.Timeout),
		flow.WithMaxTokens(cfg.MaxTokens),
		flow.WithTemperature(cfg.TemperaturePtr()),
		flow.WithObserver(func(ctx context.Context, e flow.Event) {
			if e.Err != nil {
				slog.WarnContext(ctx, "flow step failed", "state", e.State, "error", e.Err)
			}
		}),
	), nil
}

func lookupFlow(registry *flow.Registry, name string) (*flow.Definition, error) {
	def, ok := registry.Get(name)
	if !ok {
		names := make([]string, 0)
		for _, d := range registry.List() {
			names = append(names, d.Name)
		}
		return nil, fmt.Errorf("unknown flow %q (available: %s)", name, strings.Join(names, ", "))
	}
	return def, nil
}
