package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/assigncopy"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/cancelreservation"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/createreservation"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/markreservationoffshelves"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/turnreservationintoloan"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/bookavailability"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/expiredreservations"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/userreservations"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

func (c *cli) reservationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reservation",
		Aliases: []string{"res"},
		Short:   "Place, assign, collect and cancel reservations",
	}

	cmd.AddCommand(
		c.reservationCreateCommand(),
		c.reservationAssignCommand(),
		c.reservationCancelCommand(),
		c.reservationCollectCommand(),
		c.reservationOffShelvesCommand(),
		c.reservationListCommand(),
		c.reservationExpiredCommand(),
	)

	return cmd
}

// reservationCreated adds the availability of the title, so the desk can tell a user with a pending
// reservation when to expect a copy.
type reservationCreated struct {
	createreservation.Result

	ReservationID core.ReservationIDString
	Availability  bookavailability.Availability
}

func (c *cli) reservationCreateCommand() *cobra.Command {
	var reservationID string

	cmd := &cobra.Command{
		Use:   "create <user-id> <isbn>",
		Short: "Place a reservation, which takes a free copy right away if there is one",
		Args:  cobra.ExactArgs(2),
	}

	cmd.Flags().StringVar(&reservationID, "reservation-id", "", "reservation id, generated if empty")

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		isbn, err := isbnArg(args[1])
		if err != nil {
			return nil, err
		}

		command := createreservation.BuildCommand(idOrNew(a, reservationID), args[0], isbn, a.clock.Now())

		result, err := handleCommand[createreservation.Command, createreservation.Result](
			ctx, a, createreservation.NewCommandHandler(a.store), command)
		if err != nil {
			return nil, err
		}

		availability, err := handleQuery[bookavailability.Query, bookavailability.Availability](
			ctx, a, bookavailability.NewQueryHandler(a.store), bookavailability.BuildQuery(isbn))
		if err != nil {
			return nil, err
		}

		return reservationCreated{Result: result, ReservationID: command.ReservationID, Availability: availability}, nil
	})

	return cmd
}

func (c *cli) reservationAssignCommand() *cobra.Command {
	var (
		accessionCode string
		notify        bool
	)

	cmd := &cobra.Command{
		Use:   "assign <reservation-id>",
		Short: "Give a pending reservation a free copy, or the copy named with --copy",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().StringVar(&accessionCode, "copy", "", "accession code of the copy to assign")
	cmd.Flags().BoolVar(&notify, "notify", false, "tell the user that the copy is ready for collection")

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		var explicitCopy core.AccessionCodeString
		if accessionCode != "" {
			code, err := accessionCodeArg(accessionCode)
			if err != nil {
				return nil, err
			}
			explicitCopy = code
		}

		handler := assigncopy.NewCommandHandler(a.store, assigncopy.WithNotifier(a.notifier))
		command := assigncopy.BuildCommand(args[0], explicitCopy, notify, a.clock.Now())

		return withNotification[assigncopy.Result](handleCommand[assigncopy.Command, assigncopy.Result](
			ctx, a, handler, command))
	})

	return cmd
}

func (c *cli) reservationCancelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <reservation-id>",
		Short: "Cancel a reservation and hand its copy to the next waiting reservation",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		handler := cancelreservation.NewCommandHandler(a.store, cancelreservation.WithNotifier(a.notifier))

		return withNotification[cancelreservation.Result](handleCommand[cancelreservation.Command, cancelreservation.Result](
			ctx, a, handler, cancelreservation.BuildCommand(args[0], a.clock.Now())))
	})

	return cmd
}

func (c *cli) reservationCollectCommand() *cobra.Command {
	var loanID string

	cmd := &cobra.Command{
		Use:   "collect <reservation-id>",
		Short: "Turn a ready reservation into a loan of the held copy",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().StringVar(&loanID, "loan-id", "", "loan id, generated if empty")

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		command := turnreservationintoloan.BuildCommand(args[0], idOrNew(a, loanID), a.clock.Now())

		return handleCommand[turnreservationintoloan.Command, turnreservationintoloan.Result](
			ctx, a, turnreservationintoloan.NewCommandHandler(a.store), command)
	})

	return cmd
}

func (c *cli) reservationOffShelvesCommand() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "off-shelves <reservation-id>",
		Short: "Mark the held copy of a reservation as taken off the shelves, or undo with --undo",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "clear the flag")

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		command := markreservationoffshelves.BuildCommand(args[0], !undo, a.clock.Now())

		return handleCommand[markreservationoffshelves.Command, shell.HandlerResult](
			ctx, a, markreservationoffshelves.NewCommandHandler(a.store), command)
	})

	return cmd
}

func (c *cli) reservationListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <user-id>",
		Short: "List the ready and pending reservations of a user",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		return handleQuery[userreservations.Query, userreservations.UserReservations](
			ctx, a, userreservations.NewQueryHandler(a.store), userreservations.BuildQuery(args[0], a.clock.Now()))
	})

	return cmd
}

func (c *cli) reservationExpiredCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expired",
		Short: "List ready reservations whose collection window has passed",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = c.run(func(ctx context.Context, a *app, _ []string) (any, error) {
		return handleQuery[expiredreservations.Query, expiredreservations.ExpiredReservations](
			ctx, a, expiredreservations.NewQueryHandler(a.store), expiredreservations.BuildQuery(a.clock.Now()))
	})

	return cmd
}
