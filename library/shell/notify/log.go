package notify

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

// LogNotifier logs notifications instead of delivering them, e.g. on a kiosk without a mailer.
type LogNotifier struct {
	logger shell.ContextualLogger
}

func NewLogNotifier(logger shell.ContextualLogger) LogNotifier {
	return LogNotifier{logger: logger}
}

func (n LogNotifier) Notify(ctx context.Context, notification shell.Notification) error {
	if n.logger == nil {
		return nil
	}

	n.logger.InfoContext(ctx, shell.LogMsgNotificationSent,
		shell.LogAttrUserID, notification.UserID,
		shell.LogAttrSubject, notification.Subject,
	)

	return nil
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, shell.Notification) error {
	return nil
}
