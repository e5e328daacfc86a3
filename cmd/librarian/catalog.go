package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openshelf/loanengine/features/command/addauthor"
	"github.com/openshelf/loanengine/features/command/addbook"
	"github.com/openshelf/loanengine/features/command/registermember"
	"github.com/openshelf/loanengine/features/command/updatebookcapacity"
)

const publishedAtLayout = "2006-01-02"

func newAddAuthorCommand(opts *rootOptions) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add-author <first-name> <last-name>",
		Short: "Add an author to the catalog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, openErr := opts.openStore(cmd.Context(), opts.newLogger())
			if openErr != nil {
				return openErr
			}
			defer closeStore()

			handler := addauthor.NewCommandHandler(store)

			author, handleErr := handler.Handle(cmd.Context(), addauthor.BuildCommand(args[0], args[1], description))
			if handleErr != nil {
				return handleErr
			}

			fmt.Fprintln(cmd.OutOrStdout(), author.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "short author bio")

	return cmd
}

func newAddBookCommand(opts *rootOptions) *cobra.Command {
	var (
		isbn        string
		publishedAt string
		totalCopies int
	)

	cmd := &cobra.Command{
		Use:   "add-book <title> <author-id>",
		Short: "Add a book to the catalog with all copies available",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			authorID, parseErr := parseID(args[1])
			if parseErr != nil {
				return parseErr
			}

			published := time.Now().UTC()
			if publishedAt != "" {
				var parsePublishedErr error
				published, parsePublishedErr = time.Parse(publishedAtLayout, publishedAt)
				if parsePublishedErr != nil {
					return fmt.Errorf("invalid --published-at %q: %w", publishedAt, parsePublishedErr)
				}
			}

			store, closeStore, openErr := opts.openStore(cmd.Context(), opts.newLogger())
			if openErr != nil {
				return openErr
			}
			defer closeStore()

			handler := addbook.NewCommandHandler(store)

			book, handleErr := handler.Handle(cmd.Context(),
				addbook.BuildCommand(args[0], isbn, published, authorID, totalCopies))
			if handleErr != nil {
				return handleErr
			}

			fmt.Fprintln(cmd.OutOrStdout(), book.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN of the book")
	cmd.Flags().StringVar(&publishedAt, "published-at", "", "publication date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&totalCopies, "copies", 1, "number of copies the library owns")

	return cmd
}

func newRegisterMemberCommand(opts *rootOptions) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "register-member <first-name> <last-name>",
		Short: "Register a new library member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, openErr := opts.openStore(cmd.Context(), opts.newLogger())
			if openErr != nil {
				return openErr
			}
			defer closeStore()

			handler := registermember.NewCommandHandler(store)

			member, handleErr := handler.Handle(cmd.Context(),
				registermember.BuildCommand(args[0], args[1], email, time.Now().UTC()))
			if handleErr != nil {
				return handleErr
			}

			fmt.Fprintln(cmd.OutOrStdout(), member.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "member email address")

	return cmd
}

func newCapacityCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "capacity <book-id> <total-copies>",
		Short: "Change how many copies of a book the library owns",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, parseErr := parseID(args[0])
			if parseErr != nil {
				return parseErr
			}

			totalCopies, parseCopiesErr := parsePositiveInt(args[1])
			if parseCopiesErr != nil {
				return parseCopiesErr
			}

			store, closeStore, openErr := opts.openStore(cmd.Context(), opts.newLogger())
			if openErr != nil {
				return openErr
			}
			defer closeStore()

			handler := updatebookcapacity.NewCommandHandler(store)

			book, handleErr := handler.Handle(cmd.Context(), updatebookcapacity.BuildCommand(bookID, totalCopies))
			if handleErr != nil {
				return handleErr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "total: %d, available: %d\n", book.TotalCopies, book.AvailableCopies)

			return nil
		},
	}
}
