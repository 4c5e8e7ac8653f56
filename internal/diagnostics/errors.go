package diagnostics

import (
	"errors"
	"fmt"
)

const parseFailurePrefix = "failed to parse input. "

func render(message string, loc *Location, withLocation bool) string {
	msg := "Error"
	if withLocation && loc != nil {
		msg += fmt.Sprintf(" at line %d, col %d", loc.Line, loc.Column)
	}
	msg += ": " + message
	if withLocation && loc != nil {
		msg += "\n" + loc.Text
	}
	return msg
}

// SemanticError reports a structurally valid construct that is invalid in
// its context: redefinitions, unresolved variables, bad operands.
type SemanticError struct {
	Message       string
	Loc           *Location
	PrintLocation bool
	// Err is an optional sentinel classifying the error.
	Err error
}

func NewSemanticError(message string, loc *Location) *SemanticError {
	return &SemanticError{Message: message, Loc: loc, PrintLocation: true}
}

func (e *SemanticError) Render(withLocation bool) string {
	return render(e.Message, e.Loc, withLocation)
}

func (e *SemanticError) Error() string {
	return e.Render(e.PrintLocation)
}

func (e *SemanticError) Unwrap() error { return e.Err }

// SyntaxError reports input that does not match any grammar rule at Loc.
type SyntaxError struct {
	Message string
	Loc     *Location
}

func NewSyntaxError(message string, loc *Location) *SyntaxError {
	return &SyntaxError{Message: message, Loc: loc}
}

func (e *SyntaxError) Render(withLocation bool) string {
	return render(e.Message, e.Loc, withLocation)
}

func (e *SyntaxError) Error() string {
	return e.Render(true)
}

// ParseFailure is the single error shape handed to callers of the driver.
type ParseFailure struct {
	Cause error
}

func (e *ParseFailure) Error() string {
	return parseFailurePrefix + e.Cause.Error()
}

func (e *ParseFailure) Unwrap() error { return e.Cause }

// Located returns the location carried by err, if any.
func Located(err error) (*Location, bool) {
	var semErr *SemanticError
	if errors.As(err, &semErr) && semErr.Loc != nil {
		return semErr.Loc, true
	}
	var synErr *SyntaxError
	if errors.As(err, &synErr) && synErr.Loc != nil {
		return synErr.Loc, true
	}
	return nil, false
}
