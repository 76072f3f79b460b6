package core

import (
	"slices"
	"time"
)

// Circulation is the state of the library as far as a history reveals it. It is the availability
// resolver: every decision about copies, loans and reservations is answered from here.
//
// A Circulation is built from whatever slice of the history a consistency boundary returns, so Apply
// tolerates events whose predecessors are missing (e.g. a loan of another title seen only through
// its borrower).
type Circulation struct {
	users        map[UserIDString]*User
	books        map[ISBNString]*Book
	copies       map[AccessionCodeString]*BookCopy
	loans        map[LoanIDString]*Loan
	closedLoans  map[LoanIDString]HistoryLoan
	history      []HistoryLoan
	reservations map[ReservationIDString]*Reservation
	ended        map[ReservationIDString]bool
	loanOfCopy   map[AccessionCodeString]LoanIDString
	holdOfCopy   map[AccessionCodeString]ReservationIDString
	placements   int
}

func NewCirculation() *Circulation {
	return &Circulation{
		users:        make(map[UserIDString]*User),
		books:        make(map[ISBNString]*Book),
		copies:       make(map[AccessionCodeString]*BookCopy),
		loans:        make(map[LoanIDString]*Loan),
		closedLoans:  make(map[LoanIDString]HistoryLoan),
		reservations: make(map[ReservationIDString]*Reservation),
		ended:        make(map[ReservationIDString]bool),
		loanOfCopy:   make(map[AccessionCodeString]LoanIDString),
		holdOfCopy:   make(map[AccessionCodeString]ReservationIDString),
	}
}

// ProjectCirculation replays history in order.
func ProjectCirculation(history DomainEvents) *Circulation {
	c := NewCirculation()
	c.Apply(history...)

	return c
}

// Apply folds events into the state. Refusal events are ignored.
func (c *Circulation) Apply(events ...DomainEvent) { //nolint:gocognit,cyclop // one case per event type
	for _, event := range events {
		switch e := event.(type) {
		case UserRegistered:
			c.users[e.UserID] = &User{
				UserID:       e.UserID,
				Name:         e.Name,
				Email:        e.Email,
				Policy:       e.Policy(),
				RegisteredAt: e.OccurredAt,
			}

		case UserPolicyChanged:
			if user, ok := c.users[e.UserID]; ok {
				user.Policy = e.Policy()
			}

			for _, loan := range c.loans {
				if loan.UserID == e.UserID {
					loan.LoanLengthDays = e.LoanLengthDays
				}
			}

		case BookAddedToCatalog:
			book := e.Book()
			c.books[e.ISBN] = &book

		case BookFeatureChanged:
			if book, ok := c.books[e.ISBN]; ok {
				book.Featured = e.Featured
			}

		case BookRemovedFromCatalog:
			delete(c.books, e.ISBN)

		case BookCopyAddedToCirculation:
			c.copies[e.AccessionCode] = &BookCopy{
				AccessionCode: e.AccessionCode,
				ISBN:          e.ISBN,
				AddedAt:       e.OccurredAt,
				InCirculation: true,
			}

		case BookCopyRemovedFromCirculation:
			c.copies[e.AccessionCode] = &BookCopy{
				AccessionCode: e.AccessionCode,
				ISBN:          e.ISBN,
				InCirculation: false,
			}

		case LoanStarted:
			c.loans[e.LoanID] = &Loan{
				LoanID:         e.LoanID,
				UserID:         e.UserID,
				ISBN:           e.ISBN,
				AccessionCode:  e.AccessionCode,
				LoanDate:       e.OccurredAt,
				RenewalDate:    e.OccurredAt,
				Renewals:       0,
				LoanLengthDays: e.LoanLengthDays,
			}
			c.loanOfCopy[e.AccessionCode] = e.LoanID

		case LoanRenewed:
			if loan, ok := c.loans[e.LoanID]; ok {
				loan.Renewals = e.Renewals
				loan.RenewalDate = e.OccurredAt
				loan.LoanLengthDays = e.LoanLengthDays
			}

		case LoanClosed:
			delete(c.loans, e.LoanID)
			if c.loanOfCopy[e.AccessionCode] == e.LoanID {
				delete(c.loanOfCopy, e.AccessionCode)
			}

			c.closedLoans[e.LoanID] = e.HistoryLoan()
			c.history = append(c.history, e.HistoryLoan())

		case ReservationPlaced:
			c.placements++
			c.reservations[e.ReservationID] = &Reservation{
				ReservationID: e.ReservationID,
				UserID:        e.UserID,
				ISBN:          e.ISBN,
				PlacedAt:      e.OccurredAt,
				position:      c.placements,
			}

		case ReservationCopyAssigned:
			reservation, ok := c.reservations[e.ReservationID]
			if !ok {
				reservation = &Reservation{ReservationID: e.ReservationID, UserID: e.UserID, ISBN: e.ISBN}
				c.reservations[e.ReservationID] = reservation
			}

			readySince := e.OccurredAt
			reservation.AccessionCode = e.AccessionCode
			reservation.ReadySince = &readySince
			c.holdOfCopy[e.AccessionCode] = e.ReservationID

		case ReservationMarkedOffShelves:
			if reservation, ok := c.reservations[e.ReservationID]; ok {
				reservation.OffShelves = e.OffShelves
			}

		case ReservationCancelled:
			c.endReservation(e.ReservationID, e.AccessionCode)

		case ReservationTurnedIntoLoan:
			c.endReservation(e.ReservationID, e.AccessionCode)
		}
	}
}

func (c *Circulation) endReservation(reservationID ReservationIDString, accessionCode AccessionCodeString) {
	delete(c.reservations, reservationID)
	c.ended[reservationID] = true

	if accessionCode != "" && c.holdOfCopy[accessionCode] == reservationID {
		delete(c.holdOfCopy, accessionCode)
	}
}

/***** Users *****/

func (c *Circulation) User(userID UserIDString) (User, bool) {
	user, ok := c.users[userID]
	if !ok {
		return User{}, false
	}

	return *user, true
}

/***** Catalog *****/

// Book returns a book that is currently in the catalog.
func (c *Circulation) Book(isbn ISBNString) (Book, bool) {
	book, ok := c.books[isbn]
	if !ok {
		return Book{}, false
	}

	return *book, true
}

// Books returns all books in the catalog, newest first.
func (c *Circulation) Books() []Book {
	books := make([]Book, 0, len(c.books))
	for _, book := range c.books {
		books = append(books, *book)
	}

	slices.SortFunc(books, func(a, b Book) int {
		if cmp := b.AddedAt.Compare(a.AddedAt); cmp != 0 {
			return cmp
		}

		return compareStrings(a.ISBN, b.ISBN)
	})

	return books
}

// BookWithEdition finds the catalog entry that uses editionID.
func (c *Circulation) BookWithEdition(editionID string) (Book, bool) {
	for _, book := range c.books {
		if book.EditionID == editionID {
			return *book, true
		}
	}

	return Book{}, false
}

// Copy returns a copy that is in circulation.
func (c *Circulation) Copy(accessionCode AccessionCodeString) (BookCopy, bool) {
	bookCopy, ok := c.copies[accessionCode]
	if !ok || !bookCopy.InCirculation {
		return BookCopy{}, false
	}

	return *bookCopy, true
}

// AccessionCodeUsed is true for any code that was ever in circulation.
func (c *Circulation) AccessionCodeUsed(accessionCode AccessionCodeString) bool {
	_, ok := c.copies[accessionCode]

	return ok
}

// Copies returns the copies of isbn in circulation, ordered by accession code.
func (c *Circulation) Copies(isbn ISBNString) []BookCopy {
	copies := make([]BookCopy, 0)
	for _, bookCopy := range c.copies {
		if bookCopy.ISBN == isbn && bookCopy.InCirculation {
			copies = append(copies, *bookCopy)
		}
	}

	slices.SortFunc(copies, func(a, b BookCopy) int {
		return accessionCodeLess(a.AccessionCode, b.AccessionCode)
	})

	return copies
}

/***** Availability *****/

// CopyStatus returns the state of a copy in circulation.
func (c *Circulation) CopyStatus(accessionCode AccessionCodeString) (CopyStatus, bool) {
	if _, ok := c.Copy(accessionCode); !ok {
		return CopyAvailable, false
	}

	if _, onLoan := c.loanOfCopy[accessionCode]; onLoan {
		return CopyOnLoan, true
	}

	if _, held := c.holdOfCopy[accessionCode]; held {
		return CopyReservedHeld, true
	}

	return CopyAvailable, true
}

// AvailableCopies returns the copies of isbn that are neither on loan nor held, ordered by accession code.
func (c *Circulation) AvailableCopies(isbn ISBNString) []BookCopy {
	available := make([]BookCopy, 0)

	for _, bookCopy := range c.Copies(isbn) {
		if status, _ := c.CopyStatus(bookCopy.AccessionCode); status == CopyAvailable {
			available = append(available, bookCopy)
		}
	}

	return available
}

func (c *Circulation) NumCopiesAvailable(isbn ISBNString) int {
	return len(c.AvailableCopies(isbn))
}

// NextAvailableDate is nil if a copy is available now or if there are no copies at all. Otherwise it
// is the earliest due date or collection expiry among the copies.
func (c *Circulation) NextAvailableDate(isbn ISBNString) *time.Time {
	copies := c.Copies(isbn)
	if len(copies) == 0 {
		return nil
	}

	var next *time.Time

	for _, bookCopy := range copies {
		var candidate time.Time

		switch status, _ := c.CopyStatus(bookCopy.AccessionCode); status {
		case CopyAvailable:
			return nil

		case CopyOnLoan:
			candidate = c.loans[c.loanOfCopy[bookCopy.AccessionCode]].DueDate()

		case CopyReservedHeld:
			expiry, ok := c.reservations[c.holdOfCopy[bookCopy.AccessionCode]].Expiry()
			if !ok {
				continue
			}
			candidate = expiry
		}

		if next == nil || candidate.Before(*next) {
			next = &candidate
		}
	}

	return next
}

/***** Loans *****/

// Loan returns an active loan.
func (c *Circulation) Loan(loanID LoanIDString) (Loan, bool) {
	loan, ok := c.loans[loanID]
	if !ok {
		return Loan{}, false
	}

	return *loan, true
}

// ClosedLoan returns the history record of a returned loan.
func (c *Circulation) ClosedLoan(loanID LoanIDString) (HistoryLoan, bool) {
	historyLoan, ok := c.closedLoans[loanID]

	return historyLoan, ok
}

// LoanOfCopy returns the active loan of a copy.
func (c *Circulation) LoanOfCopy(accessionCode AccessionCodeString) (Loan, bool) {
	loanID, ok := c.loanOfCopy[accessionCode]
	if !ok {
		return Loan{}, false
	}

	return c.Loan(loanID)
}

// ActiveLoansOf returns the user's active loans, oldest first.
func (c *Circulation) ActiveLoansOf(userID UserIDString) []Loan {
	loans := make([]Loan, 0)
	for _, loan := range c.loans {
		if loan.UserID == userID {
			loans = append(loans, *loan)
		}
	}

	slices.SortFunc(loans, func(a, b Loan) int {
		if cmp := a.LoanDate.Compare(b.LoanDate); cmp != 0 {
			return cmp
		}

		return compareStrings(a.LoanID, b.LoanID)
	})

	return loans
}

func (c *Circulation) NumActiveLoans(userID UserIDString) int {
	count := 0
	for _, loan := range c.loans {
		if loan.UserID == userID {
			count++
		}
	}

	return count
}

// History returns all closed loans in the order they were returned.
func (c *Circulation) History() []HistoryLoan {
	return slices.Clone(c.history)
}

/***** Reservations *****/

// Reservation returns an active reservation.
func (c *Circulation) Reservation(reservationID ReservationIDString) (Reservation, bool) {
	reservation, ok := c.reservations[reservationID]
	if !ok {
		return Reservation{}, false
	}

	return *reservation, true
}

// ReservationEnded is true for reservations that were cancelled or turned into a loan.
func (c *Circulation) ReservationEnded(reservationID ReservationIDString) bool {
	return c.ended[reservationID]
}

// HolderOf returns the reservation that holds a copy.
func (c *Circulation) HolderOf(accessionCode AccessionCodeString) (Reservation, bool) {
	reservationID, ok := c.holdOfCopy[accessionCode]
	if !ok {
		return Reservation{}, false
	}

	return c.Reservation(reservationID)
}

// Reservations returns all active reservations in placement order.
func (c *Circulation) Reservations() []Reservation {
	reservations := make([]Reservation, 0, len(c.reservations))
	for _, reservation := range c.reservations {
		reservations = append(reservations, *reservation)
	}

	slices.SortFunc(reservations, func(a, b Reservation) int {
		if a.position != b.position {
			return a.position - b.position
		}

		return compareStrings(a.ReservationID, b.ReservationID)
	})

	return reservations
}

// ReservationsOf returns the user's active reservations in placement order.
func (c *Circulation) ReservationsOf(userID UserIDString) []Reservation {
	return slices.DeleteFunc(c.Reservations(), func(r Reservation) bool {
		return r.UserID != userID
	})
}

// ReservationsFor returns the active reservations for isbn in placement order.
func (c *Circulation) ReservationsFor(isbn ISBNString) []Reservation {
	return slices.DeleteFunc(c.Reservations(), func(r Reservation) bool {
		return r.ISBN != isbn
	})
}

// OldestPendingReservation returns the longest waiting reservation for isbn that has no copy yet.
func (c *Circulation) OldestPendingReservation(isbn ISBNString) (Reservation, bool) {
	for _, reservation := range c.ReservationsFor(isbn) {
		if !reservation.HasCopy() {
			return reservation, true
		}
	}

	return Reservation{}, false
}

// HandOff gives a copy that has just become free to the oldest pending reservation for its title.
// It returns false if the copy is not free or nobody is waiting.
func (c *Circulation) HandOff(accessionCode AccessionCodeString, occurredAt time.Time) (ReservationCopyAssigned, bool) {
	bookCopy, ok := c.Copy(accessionCode)
	if !ok {
		return ReservationCopyAssigned{}, false
	}

	if status, _ := c.CopyStatus(accessionCode); status != CopyAvailable {
		return ReservationCopyAssigned{}, false
	}

	reservation, ok := c.OldestPendingReservation(bookCopy.ISBN)
	if !ok {
		return ReservationCopyAssigned{}, false
	}

	return BuildReservationCopyAssigned(reservation, accessionCode, occurredAt), true
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
