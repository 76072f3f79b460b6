package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

type notifierFunc func(ctx context.Context, notification shell.Notification) error

func (f notifierFunc) Notify(ctx context.Context, notification shell.Notification) error {
	return f(ctx, notification)
}

func Test_CollectionNotification_NamesTitleAndAuthors(t *testing.T) {
	// arrange
	book := core.Book{
		Title:   "Good Omens",
		Authors: []core.Author{{Name: "Terry Pratchett"}, {Name: "Neil Gaiman"}},
	}

	// act
	notification := shell.CollectionNotification("user-1", book)

	// assert
	assert.Equal(t, "user-1", notification.UserID)
	assert.Equal(t, "Reservation ready for collection", notification.Subject)
	assert.Contains(t, notification.Message, "The book you reserved, Good Omens by Terry Pratchett and Neil Gaiman is available to be collected")
	assert.Contains(t, notification.Message, "held for you for seven days")
}

func Test_NotifyCopyAssigned_WrapsDeliveryErrors(t *testing.T) {
	// arrange
	deliveryErr := errors.New("mail server down")
	notifier := notifierFunc(func(context.Context, shell.Notification) error { return deliveryErr })
	assigned := core.BuildReservationCopyAssigned(core.Reservation{ReservationID: "res-1", UserID: "user-1"}, "1", time.Now())

	// act
	err := shell.NotifyCopyAssigned(context.Background(), notifier, assigned, core.Book{Title: "Emma"})

	// assert
	assert.ErrorIs(t, err, deliveryErr)
	assert.ErrorContains(t, err, "res-1")
}

func Test_NotifyCopyAssigned_DoesNothing_WithoutNotifier(t *testing.T) {
	// act
	err := shell.NotifyCopyAssigned(context.Background(), nil, core.ReservationCopyAssigned{}, core.Book{})

	// assert
	assert.NoError(t, err)
}

func Test_NotifyHandOffs_NotifiesEveryAssignedHolder(t *testing.T) {
	// arrange
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	c := core.ProjectCirculation(core.DomainEvents{
		core.BuildBookAddedToCatalog(core.Book{ISBN: "9780141439518", Title: "Emma", Authors: []core.Author{{Name: "Jane Austen"}}}, at),
	})
	events := core.DomainEvents{
		core.BuildLoanClosed(core.Loan{LoanID: "loan-1", ISBN: "9780141439518", AccessionCode: "1"}, at),
		core.BuildReservationCopyAssigned(core.Reservation{ReservationID: "res-1", UserID: "user-2", ISBN: "9780141439518"}, "1", at),
	}

	var sent []shell.Notification
	notifier := notifierFunc(func(_ context.Context, n shell.Notification) error {
		sent = append(sent, n)
		return nil
	})

	// act
	err := shell.NotifyHandOffs(context.Background(), notifier, events, c)

	// assert
	assert.NoError(t, err)
	assert.Len(t, sent, 1)
	assert.Equal(t, "user-2", sent[0].UserID)
	assert.Contains(t, sent[0].Message, "Emma by Jane Austen")
}

func Test_NotifyHandOffs_JoinsFailures(t *testing.T) {
	// arrange
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	events := core.DomainEvents{
		core.BuildReservationCopyAssigned(core.Reservation{ReservationID: "res-1", UserID: "user-1", ISBN: "1"}, "1", at),
		core.BuildReservationCopyAssigned(core.Reservation{ReservationID: "res-2", UserID: "user-2", ISBN: "2"}, "2", at),
	}
	calls := 0
	notifier := notifierFunc(func(context.Context, shell.Notification) error {
		calls++
		return errors.New("mailbox full")
	})

	// act
	err := shell.NotifyHandOffs(context.Background(), notifier, events, core.NewCirculation())

	// assert
	assert.Equal(t, 2, calls)
	assert.ErrorContains(t, err, "res-1")
	assert.ErrorContains(t, err, "res-2")
}
