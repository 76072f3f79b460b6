package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
)

const collectionSubject = "Reservation ready for collection"

// Notification is a message to a library user. The delivery channel resolves UserID to an address.
type Notification struct {
	UserID  core.UserIDString
	Subject string
	Message string
}

// Notifier delivers notifications after the triggering events were appended.
// A failed delivery never undoes the append.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// CollectionNotification tells the holder of a reservation that a copy is waiting.
func CollectionNotification(userID core.UserIDString, book core.Book) Notification {
	return Notification{
		UserID:  userID,
		Subject: collectionSubject,
		Message: fmt.Sprintf(
			"The book you reserved, %s by %s is available to be collected from the library. "+
				"It will be held for you for seven days, before being returned to the shelves. "+
				"More information can be viewed on your account page on the library website.",
			book.Title,
			book.AuthorsNameString(),
		),
	}
}

// NotifyCopyAssigned sends a CollectionNotification for assigned. A missing notifier is not an error.
func NotifyCopyAssigned(ctx context.Context, notifier Notifier, assigned core.ReservationCopyAssigned, book core.Book) error {
	if notifier == nil {
		return nil
	}

	if err := notifier.Notify(ctx, CollectionNotification(assigned.UserID, book)); err != nil {
		return fmt.Errorf("notifying user %s about reservation %s: %w", assigned.UserID, assigned.ReservationID, err)
	}

	return nil
}

// NotifyHandOffs notifies the holder of every ReservationCopyAssigned in events. Books are looked up
// in c. Failures of single deliveries are joined, the remaining deliveries are still attempted.
func NotifyHandOffs(ctx context.Context, notifier Notifier, events core.DomainEvents, c *core.Circulation) error {
	var errs []error

	for _, event := range events {
		assigned, ok := event.(core.ReservationCopyAssigned)
		if !ok {
			continue
		}

		book, found := c.Book(assigned.ISBN)
		if !found {
			book = core.Book{ISBN: assigned.ISBN, Title: assigned.ISBN}
		}

		if err := NotifyCopyAssigned(ctx, notifier, assigned, book); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
