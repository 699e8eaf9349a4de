package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tahcohcat/voicegen/internal/persona"
)

func newPersonasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "personas",
		Short: "List the available personas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, info := range persona.Catalog() {
				marker := " "
				if info.ID == persona.Default {
					marker = "*"
				}
				fmt.Fprintf(w, "%s %s %s\n", marker, TitleStyle.Render(fmt.Sprintf("%-13s", info.Label)), HelpStyle.Render(info.Description))
			}
			return nil
		},
	}
}
