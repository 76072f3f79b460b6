package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/changeuserpolicy"
	"github.com/AntonStoeckl/library-circulation-go/library/features/command/registeruser"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

func (c *cli) userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Register users and change their borrowing policy",
	}

	cmd.AddCommand(c.userRegisterCommand(), c.userPolicyCommand())

	return cmd
}

func addPolicyFlags(cmd *cobra.Command, p *policyFlags) {
	defaults := core.DefaultUserPolicy()

	cmd.Flags().IntVar(&p.loansAllowed, "loans-allowed", defaults.LoansAllowed, "maximum number of active loans")
	cmd.Flags().IntVar(&p.loanLengthDays, "loan-length", defaults.LoanLengthDays, "loan length in days")
	cmd.Flags().IntVar(&p.renewalLimit, "renewal-limit", defaults.RenewalLimit, "renewals allowed per loan")
}

func (c *cli) userRegisterCommand() *cobra.Command {
	var (
		name   string
		email  string
		policy policyFlags
	)

	cmd := &cobra.Command{
		Use:   "register <user-id>",
		Short: "Register a user",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "address for collection notifications")
	addPolicyFlags(cmd, &policy)

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		command := registeruser.BuildCommand(args[0], name, email, policy.policy(), a.clock.Now())

		return handleCommand[registeruser.Command, shell.HandlerResult](
			ctx, a, registeruser.NewCommandHandler(a.store), command)
	})

	return cmd
}

func (c *cli) userPolicyCommand() *cobra.Command {
	var policy policyFlags

	cmd := &cobra.Command{
		Use:   "policy <user-id>",
		Short: "Replace the borrowing policy of a user",
		Long:  "Replace the borrowing policy of a user. Due dates of active loans follow the new loan length.",
		Args:  cobra.ExactArgs(1),
	}

	addPolicyFlags(cmd, &policy)

	cmd.RunE = c.run(func(ctx context.Context, a *app, args []string) (any, error) {
		command := changeuserpolicy.BuildCommand(args[0], policy.policy(), a.clock.Now())

		return handleCommand[changeuserpolicy.Command, shell.HandlerResult](
			ctx, a, changeuserpolicy.NewCommandHandler(a.store), command)
	})

	return cmd
}
