package main

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/openshelf/loanengine/features/maintenance/auditandrepair"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func newAuditCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit every book's availability against its loans and repair drift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.newLogger()

			store, closeStore, openErr := opts.openStore(cmd.Context(), logger)
			if openErr != nil {
				return openErr
			}
			defer closeStore()

			handler := auditandrepair.NewHandler(store, auditandrepair.WithLogger(logger))

			report, handleErr := handler.Handle(cmd.Context())
			if handleErr != nil {
				return handleErr
			}

			if asJSON {
				encoded, marshalErr := json.MarshalIndent(report, "", "  ")
				if marshalErr != nil {
					return marshalErr
				}

				fmt.Fprintln(cmd.OutOrStdout(), string(encoded))

				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "audited %d books, repaired %d\n",
				report.BooksAudited, len(report.Corrections))

			for _, correction := range report.Corrections {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: available %d -> %d\n",
					correction.BookID, correction.ObservedAvailable, correction.ExpectedAvailable)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the audit report as JSON")

	return cmd
}
