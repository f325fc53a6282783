package services

import (
	"errors"
	"plantflow/repositories"
)

// ErrNotFound is returned for unknown batch or record ids.
var ErrNotFound = repositories.ErrNotFound

const (
	MsgReplaceFailed = "Failed to replace existing batch."
	MsgBatchFailed   = "Failed to create batch."
	MsgInsertFailed  = "Failed to insert records."
	MsgCommitFailed  = "Failed to save upload."
	MsgFetchFailed   = "Failed to fetch records."
	MsgUpdateFailed  = "Failed to update record."
	MsgDeleteFailed  = "Failed to delete record."
)

// StoreError wraps a database failure with the message shown to the caller.
type StoreError struct {
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// InputError is a bad request outside of spreadsheet validation.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func storeErr(msg string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return &StoreError{Message: msg, Err: err}
}
