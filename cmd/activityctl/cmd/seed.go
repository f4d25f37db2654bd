package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the initial catalog and teacher accounts",
		Long:  "Inserts the seed activities and teacher accounts that are not already present. Existing rosters are left untouched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			result, err := s.seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d activities and %d teachers into %s store\n",
				result.Activities, result.Teachers, s.stores.Driver)
			return nil
		},
	}
}
