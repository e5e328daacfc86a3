package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSchemaCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the entity tables and indexes if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.newLogger()

			store, closeStore, openErr := opts.openStore(cmd.Context(), logger)
			if openErr != nil {
				return openErr
			}
			defer closeStore()

			if err := store.EnsureSchema(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")

			return nil
		},
	}
}
