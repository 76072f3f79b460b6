package core

import (
	"strings"
	"time"
)

// User is a registered library user with an explicit lending policy.
type User struct {
	UserID       UserIDString
	Name         string
	Email        string
	Policy       UserPolicy
	RegisteredAt time.Time
}

// Author is identified by an Open Library author id.
type Author struct {
	ID   string
	Name string
}

// Book is one edition in the catalog, keyed by its normalized ISBN.
type Book struct {
	ISBN        ISBNString
	EditionID   string
	WorkID      string
	Title       string
	Authors     []Author
	Description string
	CoverURL    string
	PublishedOn *time.Time
	Featured    bool
	AddedAt     time.Time
}

// AuthorsNameString joins author names as "A", "A and B" or "A, B, and C".
func (b Book) AuthorsNameString() string {
	names := make([]string, 0, len(b.Authors))
	for _, author := range b.Authors {
		names = append(names, author.Name)
	}

	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

// CopyStatus is the explicit state of a copy in circulation.
type CopyStatus int

const (
	CopyAvailable CopyStatus = iota
	CopyOnLoan
	CopyReservedHeld
)

func (s CopyStatus) String() string {
	switch s {
	case CopyOnLoan:
		return "on_loan"
	case CopyReservedHeld:
		return "reserved_held"
	default:
		return "available"
	}
}

// BookCopy is one physical copy. Removed copies stay known so their accession code is never reused.
type BookCopy struct {
	AccessionCode AccessionCodeString
	ISBN          ISBNString
	AddedAt       time.Time
	InCirculation bool
}

// Loan is an active loan. LoanLengthDays is the borrower's policy as last seen in the history.
type Loan struct {
	LoanID         LoanIDString
	UserID         UserIDString
	ISBN           ISBNString
	AccessionCode  AccessionCodeString
	LoanDate       time.Time
	RenewalDate    time.Time
	Renewals       int
	LoanLengthDays int
}

// DueDate is the day of the last renewal plus the loan length.
func (l Loan) DueDate() time.Time {
	return Day(l.RenewalDate).AddDate(0, 0, l.LoanLengthDays)
}

func (l Loan) IsOverdue(today time.Time) bool {
	return l.DueDate().Before(Day(today))
}

// HistoryLoan is the immutable record of a closed loan.
type HistoryLoan struct {
	LoanID        LoanIDString
	UserID        UserIDString
	ISBN          ISBNString
	AccessionCode AccessionCodeString
	LoanDate      time.Time
	ReturnedDate  time.Time
}

// DurationDays is the number of calendar days the copy was out.
func (h HistoryLoan) DurationDays() int {
	return DaysBetween(h.LoanDate, h.ReturnedDate)
}

// Reservation is an active reservation for a title. It is ready once a copy is assigned.
type Reservation struct {
	ReservationID ReservationIDString
	UserID        UserIDString
	ISBN          ISBNString
	AccessionCode AccessionCodeString
	PlacedAt      time.Time
	ReadySince    *time.Time
	OffShelves    bool

	position int
}

func (r Reservation) HasCopy() bool {
	return r.AccessionCode != ""
}

// Expiry is the last day of the collection window. It is undefined while the reservation is pending.
func (r Reservation) Expiry() (time.Time, bool) {
	if r.ReadySince == nil {
		return time.Time{}, false
	}

	return Day(*r.ReadySince).AddDate(0, 0, CollectionWindowDays), true
}

func (r Reservation) IsExpired(today time.Time) bool {
	expiry, ok := r.Expiry()

	return ok && expiry.Before(Day(today))
}

// DaysToCollect is negative once the reservation expired.
func (r Reservation) DaysToCollect(today time.Time) (int, bool) {
	if r.ReadySince == nil {
		return 0, false
	}

	return CollectionWindowDays - DaysBetween(*r.ReadySince, today), true
}

// AssignmentOutcome is the result of trying to give a reservation a copy.
type AssignmentOutcome int

const (
	NoCopyAvailable AssignmentOutcome = iota
	Assigned
	AlreadyHadCopy
)

func (o AssignmentOutcome) String() string {
	switch o {
	case Assigned:
		return "assigned"
	case AlreadyHadCopy:
		return "already_had_copy"
	default:
		return "no_copy_available"
	}
}

func (o AssignmentOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
