package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noah-isme/mergington-activities-api/internal/service"
)

func newRosterCmd() *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "roster <activity>",
		Short: "Export the roster of an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rosterFormat, err := service.ParseRosterFormat(format)
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			if s.cfg.Store.SeedOnStart {
				if _, err := s.seed(cmd.Context()); err != nil {
					return err
				}
			}

			catalog := service.NewCatalogService(s.stores.Activities, nil, s.logger)
			file, err := service.NewExportService(catalog, s.logger, nil, nil).Roster(cmd.Context(), args[0], rosterFormat)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(file.Body)
				return err
			}
			if err := os.WriteFile(output, file.Body, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(service.RosterFormatCSV), "csv or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, stdout when empty")
	return cmd
}
