package app_error

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

type statusError struct {
	error
	status int
}

func (e statusError) Unwrap() error {
	return e.error
}

func (e statusError) HTTPStatus() int {
	return e.status
}

func New(status int, format string, args ...any) error {
	return statusError{error: fmt.Errorf(format, args...), status: status}
}

// Rejected marks an expected business-rule rejection (closed registration,
// capacity reached, no matching category, already enrolled). These are
// regular outcomes, not faults.
func Rejected(format string, args ...any) error {
	return New(422, format, args...)
}

func NotFound(format string, args ...any) error {
	return New(404, format, args...)
}

func Forbidden(format string, args ...any) error {
	return New(403, format, args...)
}

func Persistence(err error) error {
	return statusError{error: fmt.Errorf("persistence failure: %w", err), status: 500}
}

// HTTPStatus returns the status carried by err, or 500 for plain errors.
func HTTPStatus(err error) int {
	var se statusError
	if errors.As(err, &se) {
		return se.status
	}
	return 500
}

func WithHTTPStatus(c *gin.Context, err error, status int) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// Handle writes err as a json response using its carried status.
func Handle(c *gin.Context, err error) {
	WithHTTPStatus(c, err, HTTPStatus(err))
}
