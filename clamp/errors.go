package clamp

import (
	"fmt"

	"github.com/dzonerzy/go-clamp/internal/fuzzy"
)

// ErrorType represents error categories for parsing and schema validation.
// Schema errors are produced by Init and never during parsing; everything
// else aborts the current Parse call.
type ErrorType string

const (
	ErrorTypeSchema         ErrorType = "schema"
	ErrorTypeCannotParse    ErrorType = "cannot_parse"
	ErrorTypeInvalidValue   ErrorType = "invalid_value"
	ErrorTypeValueNotSet    ErrorType = "value_not_set"
	ErrorTypeKindMismatch   ErrorType = "kind_mismatch"
	ErrorTypeMissingValue   ErrorType = "missing_value"
	ErrorTypeMissingSubCmd  ErrorType = "missing_sub_command"
	ErrorTypeMissingVals    ErrorType = "missing_values"
	ErrorTypeTooManyValues  ErrorType = "too_many_values"
	ErrorTypeUnknownOption  ErrorType = "unknown_option"
	ErrorTypeUnknownCommand ErrorType = "unknown_command"
)

// ParseError carries the failing token and argument identity so callers can
// report precisely what went wrong.
type ParseError struct {
	Type       ErrorType
	Message    string
	Token      string // the raw token that triggered the failure, if any
	Arg        string // option or value name involved, if any
	Command    string // command context where the failure occurred
	Suggestion string
	Cause      error
}

func (e *ParseError) Error() string {
	if e.Suggestion != "" {
		return e.Message + " (did you mean '" + e.Suggestion + "'?)"
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// newSchemaError reports an invalid declaration detected at Init time.
func newSchemaError(format string, args ...any) *ParseError {
	return &ParseError{
		Type:    ErrorTypeSchema,
		Message: fmt.Sprintf(format, args...),
	}
}

// unknownOptionError builds a classification failure for an unmatched option
// token, with a fuzzy-matched suggestion when one is close enough.
func unknownOptionError(cmd *Command, name string) *ParseError {
	candidates := make([]string, 0, len(cmd.opts))
	for _, o := range cmd.opts {
		if o.Long != "" {
			candidates = append(candidates, o.Long)
		}
	}
	return &ParseError{
		Type:       ErrorTypeUnknownOption,
		Message:    "unknown option: " + name,
		Token:      name,
		Arg:        name,
		Command:    cmd.Name,
		Suggestion: fuzzy.FindBestOption(name, candidates, suggestionMaxDistance),
	}
}

// unknownCommandError builds a classification failure for a token that could
// only have been a sub-command of cmd.
func unknownCommandError(cmd *Command, name string) *ParseError {
	subs := cmd.realSubCmds()
	candidates := make([]string, 0, len(subs))
	for _, s := range subs {
		candidates = append(candidates, s.Name)
	}
	return &ParseError{
		Type:       ErrorTypeUnknownCommand,
		Message:    "unknown command: " + name,
		Token:      name,
		Command:    cmd.Name,
		Suggestion: fuzzy.FindBestCommand(name, candidates, suggestionMaxDistance),
	}
}

// suggestionMaxDistance is the maximum edit distance for "did you mean"
// suggestions on classification failures.
const suggestionMaxDistance = 2
