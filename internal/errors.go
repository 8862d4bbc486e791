package internal

import "errors"

var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrNoCategory         = errors.New("no category assigned")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrInvalidCellKey     = errors.New("invalid cell key")
	ErrOutOfRange         = errors.New("day or hour outside the plannable week")
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}
