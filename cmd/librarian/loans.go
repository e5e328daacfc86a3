package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/openshelf/loanengine/features/command/createloan"
	"github.com/openshelf/loanengine/features/command/returnloan"
)

const defaultLoanPeriodDays = 21

func newCheckoutCommand(opts *rootOptions) *cobra.Command {
	var loanPeriodDays int

	cmd := &cobra.Command{
		Use:   "checkout <book-id> <member-id>",
		Short: "Lend one copy of a book to a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, parseBookErr := parseID(args[0])
			if parseBookErr != nil {
				return parseBookErr
			}

			memberID, parseMemberErr := parseID(args[1])
			if parseMemberErr != nil {
				return parseMemberErr
			}

			store, closeStore, openErr := opts.openStore(cmd.Context(), opts.newLogger())
			if openErr != nil {
				return openErr
			}
			defer closeStore()

			handler := createloan.NewCommandHandler(store)

			loanedAt := time.Now().UTC()
			dueAt := loanedAt.AddDate(0, 0, loanPeriodDays)

			loan, handleErr := handler.Handle(cmd.Context(),
				createloan.BuildCommand(bookID, memberID, loanedAt, dueAt))
			if handleErr != nil {
				return handleErr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "loan %s due %s\n", loan.ID, loan.DueAt.Format(publishedAtLayout))

			return nil
		},
	}

	cmd.Flags().IntVar(&loanPeriodDays, "days", defaultLoanPeriodDays, "loan period in days")

	return cmd
}

func newReturnCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "return <loan-id>",
		Short: "Return a lent book copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loanID, parseErr := parseID(args[0])
			if parseErr != nil {
				return parseErr
			}

			logger := opts.newLogger()

			store, closeStore, openErr := opts.openStore(cmd.Context(), logger)
			if openErr != nil {
				return openErr
			}
			defer closeStore()

			handler := returnloan.NewCommandHandler(store, returnloan.WithLogger(logger))

			loan, handleErr := handler.Handle(cmd.Context(), returnloan.BuildCommand(loanID, time.Now().UTC()))
			if handleErr != nil {
				return handleErr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "loan %s returned\n", loan.ID)

			return nil
		},
	}
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", raw, err)
	}

	return id, nil
}

func parsePositiveInt(raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("invalid count %q: expected a positive integer", raw)
	}

	return value, nil
}
