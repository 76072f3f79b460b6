package main

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/library/core"
	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

const (
	exitOK = iota
	exitFailure
	exitRefused
)

var jsonAPI = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

func writeJSON(w io.Writer, v any) error {
	data, err := jsonAPI.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// businessErrors are the refusals of the circulation rules. They exit with exitRefused so scripts can
// tell them apart from infrastructure failures.
var businessErrors = []error{
	core.ErrMaxLoans,
	core.ErrBookUnavailable,
	core.ErrMaxRenewals,
	core.ErrObjectExists,
	core.ErrUserNotRegistered,
	core.ErrBookNotInCatalog,
	core.ErrCopyNotFound,
	core.ErrLoanNotFound,
	core.ErrReservationNotFound,
	core.ErrReservationHasNoCopy,
	core.ErrCopyNotFree,
	core.ErrBookHasCopies,
	core.ErrBookHasReservations,
	core.ErrInvalidISBN,
	core.ErrInvalidOpenLibraryID,
	core.ErrInvalidAccessionCode,
	core.ErrInvalidPolicy,
}

func isRefusal(err error) bool {
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

type errorOutput struct {
	Error   string `json:"error"`
	Refused bool   `json:"refused"`
}

// reportError prints err as JSON to w and returns the exit code for it.
func reportError(w io.Writer, err error) int {
	if err == nil {
		return exitOK
	}

	refused := isRefusal(err)
	_ = writeJSON(w, errorOutput{Error: err.Error(), Refused: refused})

	if refused {
		return exitRefused
	}

	return exitFailure
}

// notifiedOutput shows a failed notification next to the result. The command itself succeeded.
type notifiedOutput struct {
	Result            any    `json:"result"`
	NotificationError string `json:"notificationError,omitempty"`
}

func withNotification[R shell.ReportsNotificationFailure](result R, err error) (any, error) {
	if err != nil {
		return nil, err
	}

	output := notifiedOutput{Result: result}
	if notificationErr := result.NotificationFailure(); notificationErr != nil {
		output.NotificationError = notificationErr.Error()
	}

	return output, nil
}
