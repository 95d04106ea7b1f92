package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrArgument matches every argument binding failure:
	// *ArgumentError, *TooManyArgumentsError and *TooFewArgumentsError.
	ErrArgument = errors.New("invalid generator arguments")

	// ErrAborted is returned by Run when the operator aborts at a conflict.
	ErrAborted = errors.New("generation aborted")
)

// ArgumentError reports a value rejected by an argument validator.
// Message is exactly the validator's rejection message.
type ArgumentError struct {
	Generator string
	Argument  string
	Message   string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrArgument
}

// TooManyArgumentsError reports more positional values than declared positions.
type TooManyArgumentsError struct {
	Generator string
	Max       int // number of declared positions (highest position + 1)
	Given     int
}

func (e *TooManyArgumentsError) Error() string {
	return fmt.Sprintf("too many arguments for %s: expected at most %d, got %d", e.Generator, e.Max, e.Given)
}

func (e *TooManyArgumentsError) Is(target error) bool {
	return target == ErrArgument
}

// TooFewArgumentsError reports a required argument left (or set to) nil.
type TooFewArgumentsError struct {
	Generator string
	Argument  string
}

func (e *TooFewArgumentsError) Error() string {
	return fmt.Sprintf("too few arguments for %s: %s is required", e.Generator, e.Argument)
}

func (e *TooFewArgumentsError) Is(target error) bool {
	return target == ErrArgument
}
