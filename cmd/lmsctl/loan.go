package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/closeloan"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/createloan"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/renewloan"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/loanhistory"
	"github.com/AntonStoeckl/library-circulation-go/library/features/query/userloans"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

func (c *cli) loanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Lend, renew and return copies",
	}

	cmd.AddCommand(
		c.loanCreateCommand(),
		c.loanRenewCommand(),
		c.loanReturnCommand(),
		c.loanListCommand(),
		c.loanHistoryCommand(),
	)

	return cmd
}

type loanCreated struct {
	shell.HandlerResult

	LoanID core.LoanIDString
}

func (c *cli) loanCreateCommand() *cobra.Command {
	var (
		loanID            string
		ignoreUnavailable bool
	)

	cmd := &cobra.Command{
		Use:   "create <user-id> <accession-code>",
		Short: "Lend a copy to a user",
		Args:  cobra.ExactArgs(2),
	}

	cmd.Flags().StringVar(&loanID, "loan-id", "", "loan id, generated if empty")
	cmd.Flags().BoolVar(&ignoreUnavailable, "ignore-unavailable", false, "lend the copy even if it is held for a reservation")

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		code, err := accessionCodeArg(args[1])
		if err != nil {
			return nil, err
		}

		command := createloan.BuildCommand(idOrNew(a, loanID), args[0], code, ignoreUnavailable, a.clock.Now())

		result, err := handleCommand[createloan.Command, shell.HandlerResult](
			ctx, a, createloan.NewCommandHandler(a.store), command)
		if err != nil {
			return nil, err
		}

		return loanCreated{HandlerResult: result, LoanID: command.LoanID}, nil
	})

	return cmd
}

func (c *cli) loanRenewCommand() *cobra.Command {
	var force, preview bool

	cmd := &cobra.Command{
		Use:   "renew <loan-id>",
		Short: "Renew a loan",
		Long: "Renew a loan. --force ignores the renewal limit of the borrower. " +
			"--preview shows the new due date without recording anything.",
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().BoolVar(&force, "force", false, "renew beyond the renewal limit")
	cmd.Flags().BoolVar(&preview, "preview", false, "only show what the renewal would do")

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		handler := renewloan.NewCommandHandler(a.store)
		command := renewloan.BuildCommand(args[0], force, a.clock.Now())

		if preview {
			return handler.Preview(ctx, command)
		}

		return handleCommand[renewloan.Command, renewloan.Result](ctx, a, handler, command)
	})

	return cmd
}

func (c *cli) loanReturnCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "return <loan-id>",
		Short: "Close a loan and hand the copy to the next waiting reservation",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		handler := closeloan.NewCommandHandler(a.store, closeloan.WithNotifier(a.notifier))

		return withNotification[closeloan.Result](handleCommand[closeloan.Command, closeloan.Result](
			ctx, a, handler, closeloan.BuildCommand(args[0], a.clock.Now())))
	})

	return cmd
}

func (c *cli) loanListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <user-id>",
		Short: "List the active loans of a user",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		return handleQuery[userloans.Query, userloans.UserLoans](
			ctx, a, userloans.NewQueryHandler(a.store), userloans.BuildQuery(args[0], a.clock.Now()))
	})

	return cmd
}

func (c *cli) loanHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [user-id]",
		Short: "List returned loans, newest first, of one user or of the whole library",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		userID := ""
		if len(args) == 1 {
			userID = args[0]
		}

		return handleQuery[loanhistory.Query, loanhistory.LoanHistory](
			ctx, a, loanhistory.NewQueryHandler(a.store), loanhistory.BuildQuery(userID))
	})

	return cmd
}
