package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/arthur-debert/tamodel/ids"
	"github.com/arthur-debert/tamodel/model"
	"github.com/arthur-debert/tamodel/storage"
)

// CLIError is a user-facing error with context and suggestions.
type CLIError struct {
	Operation   string   // what failed, e.g. "rename location"
	Cause       string   // short description of why
	Details     string   // underlying message
	Suggestions []string // ways out
	Underlying  error
}

func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		fmt.Fprintf(&msg, "failed to %s", e.Operation)
	} else {
		msg.WriteString("operation failed")
	}
	if e.Cause != "" {
		fmt.Fprintf(&msg, ": %s", e.Cause)
	}
	if e.Details != "" {
		fmt.Fprintf(&msg, " (%s)", e.Details)
	}
	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, s := range e.Suggestions {
			fmt.Fprintf(&msg, "\n  %d. %s", i+1, s)
		}
	}
	return msg.String()
}

func (e *CLIError) Unwrap() error { return e.Underlying }

// NewNotFoundError reports a name that does not resolve.
func NewNotFoundError(operation, kind, name string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("%s %q not found", kind, name),
		Suggestions: suggestions,
	}
}

// NewConfigError reports bad flags, environment or config files.
func NewConfigError(operation, issue string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("configuration error: %s", issue),
		Suggestions: suggestions,
	}
}

// NewStoreError reports a project file that could not be read or written.
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "project file operation failed"
	switch {
	case errors.Is(underlying, fs.ErrNotExist):
		cause = "project file not found"
		suggestions = append(suggestions, "Create one with 'tamodel new --project <file>'")
	case errors.Is(underlying, fs.ErrPermission):
		cause = "insufficient permissions to access the project file"
	case errors.Is(underlying, storage.ErrLocked):
		cause = "project file is locked by another process"
		suggestions = append(suggestions, "Retry with a longer --lock-timeout")
	case errors.Is(underlying, model.ErrDuplicateID):
		cause = "project file holds duplicate identifiers"
	case errors.Is(underlying, model.ErrInvalidValue), errors.Is(underlying, model.ErrUnknownReference):
		cause = "project file is not valid"
	}
	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     underlying.Error(),
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// NewModelError reports an edit the model refused.
func NewModelError(operation string, underlying error) *CLIError {
	e := &CLIError{Operation: operation, Details: underlying.Error(), Underlying: underlying}
	var cli *CLIError
	switch {
	case errors.As(underlying, &cli):
		return cli
	case errors.Is(underlying, model.ErrDuplicateID):
		e.Cause = "name already in use"
	case errors.Is(underlying, model.ErrComponentInUse):
		e.Cause = "component is instantiated in a system"
		e.Suggestions = []string{"Remove its instances with 'tamodel remove member' first"}
	case errors.Is(underlying, model.ErrInvalidEdge):
		e.Cause = "edge breaks the system tree"
	case errors.Is(underlying, model.ErrUnknownReference):
		e.Cause = "reference to an unknown entity"
	case errors.Is(underlying, model.ErrInvalidValue):
		e.Cause = "invalid value"
	case ids.IsInvariant(underlying):
		e.Cause = "internal identifier error"
	}
	return e
}
