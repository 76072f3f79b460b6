package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/featurebook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/removebook"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/bookdetail"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/cataloghome"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

func (c *cli) bookCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Maintain the catalog",
	}

	cmd.AddCommand(
		c.bookAddCommand(),
		c.bookFeatureCommand(),
		c.bookRemoveCommand(),
		c.bookShowCommand(),
		c.bookHomeCommand(),
	)

	return cmd
}

type bookFlags struct {
	editionID   string
	workID      string
	title       string
	authors     []string
	description string
	coverURL    string
	publishedOn string
}

// book builds the catalog entry. Authors are given as "OL123A=Name".
func (f bookFlags) book(isbn core.ISBNString) (core.Book, error) {
	book := core.Book{
		ISBN:        isbn,
		EditionID:   f.editionID,
		WorkID:      f.workID,
		Title:       f.title,
		Description: f.description,
		CoverURL:    f.coverURL,
	}

	for _, raw := range f.authors {
		id, name, ok := strings.Cut(raw, "=")
		if !ok {
			return core.Book{}, fmt.Errorf("%w: author %q must be given as ID=Name", core.ErrInvalidOpenLibraryID, raw)
		}
		book.Authors = append(book.Authors, core.Author{ID: strings.TrimSpace(id), Name: strings.TrimSpace(name)})
	}

	if f.publishedOn != "" {
		publishedOn, err := time.Parse(time.DateOnly, f.publishedOn)
		if err != nil {
			return core.Book{}, fmt.Errorf("parsing --published: %w", err)
		}
		book.PublishedOn = &publishedOn
	}

	return book, nil
}

func (c *cli) bookAddCommand() *cobra.Command {
	var flags bookFlags

	cmd := &cobra.Command{
		Use:   "add <isbn>",
		Short: "Add a book to the catalog",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().StringVar(&flags.editionID, "edition", "", "Open Library edition id, e.g. OL7353617M")
	cmd.Flags().StringVar(&flags.workID, "work", "", "Open Library work id, e.g. OL66554W")
	cmd.Flags().StringVar(&flags.title, "title", "", "title")
	cmd.Flags().StringArrayVar(&flags.authors, "author", nil, "author as ID=Name, repeatable")
	cmd.Flags().StringVar(&flags.description, "description", "", "description")
	cmd.Flags().StringVar(&flags.coverURL, "cover", "", "cover image URL")
	cmd.Flags().StringVar(&flags.publishedOn, "published", "", "publication date as YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("edition")
	_ = cmd.MarkFlagRequired("title")

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		isbn, err := isbnArg(args[0])
		if err != nil {
			return nil, err
		}

		book, err := flags.book(isbn)
		if err != nil {
			return nil, err
		}

		return handleCommand[addbook.Command, shell.HandlerResult](
			ctx, a, addbook.NewCommandHandler(a.store), addbook.BuildCommand(book, a.clock.Now()))
	})

	return cmd
}

func (c *cli) bookFeatureCommand() *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "feature <isbn>",
		Short: "Feature a book on the catalog home, or stop featuring it with --off",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().BoolVar(&off, "off", false, "stop featuring the book")

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		isbn, err := isbnArg(args[0])
		if err != nil {
			return nil, err
		}

		return handleCommand[featurebook.Command, shell.HandlerResult](
			ctx, a, featurebook.NewCommandHandler(a.store), featurebook.BuildCommand(isbn, !off, a.clock.Now()))
	})

	return cmd
}

func (c *cli) bookRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <isbn>",
		Short: "Remove a book without copies or reservations from the catalog",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		isbn, err := isbnArg(args[0])
		if err != nil {
			return nil, err
		}

		return handleCommand[removebook.Command, shell.HandlerResult](
			ctx, a, removebook.NewCommandHandler(a.store), removebook.BuildCommand(isbn, a.clock.Now()))
	})

	return cmd
}

func (c *cli) bookShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <isbn>",
		Short: "Show a book with its copies, waiting list and other editions",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		isbn, err := isbnArg(args[0])
		if err != nil {
			return nil, err
		}

		return handleQuery[bookdetail.Query, bookdetail.BookDetail](
			ctx, a, bookdetail.NewQueryHandler(a.store), bookdetail.BuildQuery(isbn))
	})

	return cmd
}

func (c *cli) bookHomeCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "home",
		Short: "List the featured books and the newest additions",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().IntVar(&limit, "limit", cataloghome.DefaultNewestLimit, "number of newest books")

	cmd.RunE = c.run(func(ctx context.Context, a *app, _ []string) (any, error) {
		return handleQuery[cataloghome.Query, cataloghome.CatalogHome](
			ctx, a, cataloghome.NewQueryHandler(a.store), cataloghome.BuildQuery(limit))
	})

	return cmd
}
