package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var errSchemaNotSupported = errors.New("the configured store has no schema")

func (c *cli) schemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Create the events table of a postgres or sqlite store if it does not exist",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = c.run(func(ctx context.Context, a *app, _ []string) (any, error) {
		creator, ok := a.store.(schemaCreator)
		if !ok {
			return nil, errSchemaNotSupported
		}

		if err := creator.CreateSchema(ctx); err != nil {
			return nil, err
		}

		return struct{ SchemaCreated bool }{SchemaCreated: true}, nil
	})

	return cmd
}
