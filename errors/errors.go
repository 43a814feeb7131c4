package errors

import "fmt"

var (
	ErrNameTaken          = fmt.Errorf("participant name already taken")
	ErrEmptyName          = fmt.Errorf("participant name is empty")
	ErrUnknownParticipant = fmt.Errorf("unknown participant")
	ErrUserDisconnected   = fmt.Errorf("user disconnected")
	ErrWorkerPanic        = fmt.Errorf("worker panic")
)
