package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedSettings  = errors.New("malformed settings")
	ErrAssetUnreadable    = errors.New("asset unreadable")
	ErrSendingReplyFailed = errors.New("failed to send reply")
)

// DispatchError is returned when a trigger reply could not be delivered.
type DispatchError struct {
	Trigger string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch for trigger %q failed: %v", e.Trigger, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
