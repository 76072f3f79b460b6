package core

import (
	"errors"
	"fmt"
)

var (
	ErrMaxLoans        = errors.New("user has reached the maximum number of loans")
	ErrBookUnavailable = errors.New("book copy is unavailable")
	ErrMaxRenewals     = errors.New("loan has reached the maximum number of renewals")
	ErrObjectExists    = errors.New("object already exists")
	ErrAPINotFound     = errors.New("object not found in the external catalog")

	ErrUserNotRegistered    = errors.New("user is not registered")
	ErrBookNotInCatalog     = errors.New("book is not in the catalog")
	ErrCopyNotFound         = errors.New("book copy is not in circulation")
	ErrLoanNotFound         = errors.New("loan not found")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrReservationHasNoCopy = errors.New("reservation has no copy assigned")
	ErrCopyNotFree          = errors.New("book copy is on loan or held by a reservation")
	ErrBookHasCopies        = errors.New("book still has copies in circulation")
	ErrBookHasReservations  = errors.New("book still has reservations")
	ErrInvalidISBN          = errors.New("isbn must contain digits")
	ErrInvalidOpenLibraryID = errors.New("open library id must start with OL")
	ErrInvalidAccessionCode = errors.New("accession code must be a positive integer")
	ErrInvalidPolicy        = errors.New("user policy is invalid")
)

// MaxLoansError is returned when a user already has LoansAllowed active loans.
type MaxLoansError struct {
	UserID       UserIDString
	LoansAllowed int
}

func (e MaxLoansError) Error() string {
	return fmt.Sprintf("user %s already has %d loans", e.UserID, e.LoansAllowed)
}

func (e MaxLoansError) Is(target error) bool {
	return target == ErrMaxLoans
}

// BookUnavailableError is returned when a copy is on loan or held for someone else.
type BookUnavailableError struct {
	AccessionCode AccessionCodeString
}

func (e BookUnavailableError) Error() string {
	return fmt.Sprintf("book copy %s is unavailable", e.AccessionCode)
}

func (e BookUnavailableError) Is(target error) bool {
	return target == ErrBookUnavailable
}

// MaxRenewalsError is returned when an unforced renewal would exceed the user's renewal limit.
type MaxRenewalsError struct {
	LoanID       LoanIDString
	RenewalLimit int
}

func (e MaxRenewalsError) Error() string {
	return fmt.Sprintf("loan %s was already renewed %d times", e.LoanID, e.RenewalLimit)
}

func (e MaxRenewalsError) Is(target error) bool {
	return target == ErrMaxRenewals
}

// ObjectExistsError is returned when an id that must be unique is already taken.
type ObjectExistsError struct {
	ID   string
	Type string
}

func (e ObjectExistsError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Type, e.ID)
}

func (e ObjectExistsError) Is(target error) bool {
	return target == ErrObjectExists
}

// APINotFoundError is returned by catalog import collaborators when the external catalog
// has no record for the id. Nothing in this module performs imports.
type APINotFoundError struct {
	ID   string
	Type string
}

func (e APINotFoundError) Error() string {
	return fmt.Sprintf("%s %s was not found in the external catalog", e.Type, e.ID)
}

func (e APINotFoundError) Is(target error) bool {
	return target == ErrAPINotFound
}
