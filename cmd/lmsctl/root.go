package main

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

type rootFlags struct {
	configPath string
	store      string
	logLevel   string
}

type cli struct {
	build  appBuilder
	flags  rootFlags
	out    io.Writer
	errOut io.Writer
}

func newRootCommand(build appBuilder, out, errOut io.Writer) *cobra.Command {
	c := &cli{build: build, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "lmsctl",
		Short:         "Operate the library circulation engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&c.flags.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&c.flags.store, "store", "", "event store: postgres, sqlite or memory (overrides the config)")
	root.PersistentFlags().StringVar(&c.flags.logLevel, "log-level", "", "debug, info, warn or error (overrides the config)")

	root.AddCommand(
		c.userCommand(),
		c.bookCommand(),
		c.copyCommand(),
		c.loanCommand(),
		c.reservationCommand(),
		c.availabilityCommand(),
		c.schemaCommand(),
	)

	return root
}

// run builds the app after cobra validated args and flags, runs fn and prints its result as JSON.
func (c *cli) run(fn func(ctx context.Context, a *app, args []string) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		a, err := c.build(cmd.Context(), c.flags, c.errOut)
		if err != nil {
			return err
		}

		defer func() {
			err = errors.Join(err, shutdown(a))
		}()

		result, err := fn(cmd.Context(), a, args)
		if err != nil {
			return err
		}

		return writeJSON(c.out, result)
	}
}

func shutdown(a *app) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return a.close(ctx)
}
