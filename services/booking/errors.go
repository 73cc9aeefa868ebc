package booking

import "fmt"

// SessionError codes.
const (
	CodeSessionNotFound  = "sessionNotFound"
	CodeInvalidState     = "invalidState"
	CodeDayNotSelectable = "dayNotSelectable"
	CodeSlotUnavailable  = "slotUnavailable"
	CodeSlotConflict     = "slotConflict"
	CodeReservationData  = "reservationDataUnavailable"
)

type SessionError struct {
	Code    string
	Message string
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSessionError(code, msg string) error {
	return &SessionError{Code: code, Message: msg}
}
