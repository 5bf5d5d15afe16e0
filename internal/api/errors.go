package api

import (
	"errors"
	"net/http"

	"github.com/samcharles93/pngme/internal/sealed"
	"github.com/samcharles93/pngme/internal/stego"
	"github.com/samcharles93/pngme/pkg/png"
)

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrBodyTooLarge   = errors.New("request body too large")
)

type invalidRequestError struct {
	msg string
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func newInvalidRequest(msg string) error {
	return invalidRequestError{msg: msg}
}

// errorStatus maps domain errors to an HTTP status and error type.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBodyTooLarge), errors.Is(err, stego.ErrMessageTooLarge):
		return http.StatusRequestEntityTooLarge, "too_large_error"
	case errors.Is(err, png.ErrChunkNotFound):
		return http.StatusNotFound, "not_found_error"
	case errors.Is(err, sealed.ErrWrongPassphrase), errors.Is(err, stego.ErrSealed):
		return http.StatusUnprocessableEntity, "passphrase_error"
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, png.ErrSignatureMismatch),
		errors.Is(err, png.ErrChunkTypeLength),
		errors.Is(err, png.ErrIllegalCharacter),
		errors.Is(err, png.ErrInvalidChunkType),
		errors.Is(err, png.ErrTooShort),
		errors.Is(err, png.ErrTruncated),
		errors.Is(err, png.ErrCRCMismatch),
		errors.Is(err, sealed.ErrNotSealed),
		errors.Is(err, sealed.ErrCorrupt),
		errors.Is(err, stego.ErrLooksSealed):
		return http.StatusBadRequest, "invalid_request_error"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}
