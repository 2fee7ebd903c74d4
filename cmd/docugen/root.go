package main

import (
	"github.com/spf13/cobra"

	"github.com/Adv-2005/DocuGenAI/internal/flow"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "docugen",
		Short:         "Run DocuGenAI documentation flows",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newFlowsCmd(flow.DefaultRegistry()))
	return root
}
