package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/library/features/query/bookavailability"
)

func (c *cli) availabilityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "availability <isbn>",
		Short: "Show how many copies of a title are free and when the next one is due",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		isbn, err := isbnArg(args[0])
		if err != nil {
			return nil, err
		}

		return handleQuery[bookavailability.Query, bookavailability.Availability](
			ctx, a, bookavailability.NewQueryHandler(a.store), bookavailability.BuildQuery(isbn))
	})

	return cmd
}
