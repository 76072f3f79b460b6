package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/library/features/command/addbookcopy"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/removebookcopy"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

func (c *cli) copyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Put physical copies into circulation or take them out",
	}

	cmd.AddCommand(c.copyAddCommand(), c.copyRemoveCommand())

	return cmd
}

func (c *cli) copyAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <isbn> <accession-code>",
		Short: "Add a copy of a catalog book to circulation",
		Args:  cobra.ExactArgs(2),
	}

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		isbn, err := isbnArg(args[0])
		if err != nil {
			return nil, err
		}

		return handleCommand[addbookcopy.Command, shell.HandlerResult](
			ctx, a, addbookcopy.NewCommandHandler(a.store), addbookcopy.BuildCommand(isbn, args[1], a.clock.Now()))
	})

	return cmd
}

func (c *cli) copyRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <accession-code>",
		Short: "Take a free copy out of circulation",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		code, err := accessionCodeArg(args[0])
		if err != nil {
			return nil, err
		}

		return handleCommand[removebookcopy.Command, shell.HandlerResult](
			ctx, a, removebookcopy.NewCommandHandler(a.store), removebookcopy.BuildCommand(code, a.clock.Now()))
	})

	return cmd
}
