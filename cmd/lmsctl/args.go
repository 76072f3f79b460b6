package main

import (
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

func isbnArg(raw string) (core.ISBNString, error) {
	isbn, err := core.NormalizeISBN(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, raw)
	}

	return isbn, nil
}

func accessionCodeArg(raw string) (core.AccessionCodeString, error) {
	code, err := core.NormalizeAccessionCode(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", err, raw)
	}

	return code, nil
}

// idOrNew returns id, or a fresh one from the app's generator if id is empty.
func idOrNew(a *app, id string) string {
	if id != "" {
		return id
	}

	return a.ids.NewID()
}

type policyFlags struct {
	loansAllowed   int
	loanLengthDays int
	renewalLimit   int
}

func (p policyFlags) policy() core.UserPolicy {
	return core.UserPolicy{
		LoansAllowed:   p.loansAllowed,
		LoanLengthDays: p.loanLengthDays,
		RenewalLimit:   p.renewalLimit,
	}
}
