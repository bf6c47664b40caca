package freq

import (
	"errors"
	"fmt"

	"github.com/ch0t4nk/stm32h753zi-sub001/internal/clk"
)

// Error represents a failure detected while deriving frequencies.
//
// Frequency computation is the only fallible stage of the pipeline:
// decode and validate are total. A frequency error still leaves the
// decoded state and state-only findings available to the caller.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Source identifies the clock source involved, when known.
	Source clk.ClockSource
}

// ErrorCode categorizes frequency errors.
type ErrorCode string

const (
	// ErrCodeDivideByZero indicates DIVM1 is 0 while PLL1 is the
	// resolved source.
	ErrCodeDivideByZero ErrorCode = "DIVIDE_BY_ZERO"

	// ErrCodePllNotLocked indicates PLL1 drives the system clock with
	// the lock bit clear.
	ErrCodePllNotLocked ErrorCode = "PLL_NOT_LOCKED"

	// ErrCodeMissingHseFrequency indicates HSE is relevant but the
	// caller supplied no HSE frequency.
	ErrCodeMissingHseFrequency ErrorCode = "MISSING_HSE_FREQUENCY"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (source=%s)", e.Code, e.Message, e.Source)
}

// IsDivideByZero reports whether err is a DIVM1=0 error.
// Uses errors.As to handle wrapped errors.
func IsDivideByZero(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Code == ErrCodeDivideByZero
}

// IsPllNotLocked reports whether err is a PLL lock error.
func IsPllNotLocked(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Code == ErrCodePllNotLocked
}

// IsMissingHseFrequency reports whether err is a missing HSE frequency
// error.
func IsMissingHseFrequency(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Code == ErrCodeMissingHseFrequency
}

func newDivideByZeroError(src clk.ClockSource) *Error {
	return &Error{
		Code:    ErrCodeDivideByZero,
		Message: "DIVM1 is 0, PLL input divider disabled",
		Source:  src,
	}
}

func newPllNotLockedError() *Error {
	return &Error{
		Code:    ErrCodePllNotLocked,
		Message: "PLL1 selected as system clock but not locked",
		Source:  clk.SourcePLL1,
	}
}

func newMissingHseError() *Error {
	return &Error{
		Code:    ErrCodeMissingHseFrequency,
		Message: "HSE is in use but no HSE frequency was supplied",
		Source:  clk.SourceHSE,
	}
}
