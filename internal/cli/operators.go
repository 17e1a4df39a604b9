package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vinicius-lino-figueiredo/whynomatch/adapter/registry"
)

// NewOperatorsCommand creates the operators command, which lists every
// operator a query can use.
func NewOperatorsCommand(_ *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "operators",
		Short: "List the supported query operators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range registry.NewRegistry().Names() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
