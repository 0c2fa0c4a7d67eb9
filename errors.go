// errors.go: structured error codes for DrJson core operations.
//
// A stable external enumeration (NONE, UNEXPECTED_EOF, ALLOC_FAILURE,
// MISSING_KEY, INDEX_ERROR, INVALID_CHAR, INVALID_VALUE, TOO_DEEP,
// TYPE_ERROR, INVALID_ERROR) doubled as structured errors built on
// go-errors, giving callers both a stable numeric Code (for embedding
// in ERROR Values, see value.go) and a rich error context for
// Go-idiomatic mutators.
//
// Copyright (c) 2026 The DrJson Authors
// SPDX-License-Identifier: MPL-2.0

package drjson

import (
	goerrors "errors"
	"fmt"
	"strconv"

	"github.com/agilira/go-errors"
)

// Code is the stable numeric error code carried by ERROR Values and
// by the structured errors returned from mutators.
type Code int

const (
	CodeNone Code = iota
	CodeUnexpectedEOF
	CodeAllocFailure
	CodeMissingKey
	CodeIndexError
	CodeInvalidChar
	CodeInvalidValue
	CodeTooDeep
	CodeTypeError
	CodeInvalidError
)

func (c Code) String() string {
	switch c {
	case CodeNone:
		return "None"
	case CodeUnexpectedEOF:
		return "UnexpectedEOF"
	case CodeAllocFailure:
		return "AllocFailure"
	case CodeMissingKey:
		return "MissingKey"
	case CodeIndexError:
		return "IndexError"
	case CodeInvalidChar:
		return "InvalidChar"
	case CodeInvalidValue:
		return "InvalidValue"
	case CodeTooDeep:
		return "TooDeep"
	case CodeTypeError:
		return "TypeError"
	case CodeInvalidError:
		return "InvalidError"
	default:
		return "Unknown"
	}
}

// Error codes for go-errors interop.
const (
	ErrCodeUnexpectedEOF errors.ErrorCode = "DRJSON_UNEXPECTED_EOF"
	ErrCodeAllocFailure  errors.ErrorCode = "DRJSON_ALLOC_FAILURE"
	ErrCodeMissingKey    errors.ErrorCode = "DRJSON_MISSING_KEY"
	ErrCodeIndexError    errors.ErrorCode = "DRJSON_INDEX_ERROR"
	ErrCodeInvalidChar   errors.ErrorCode = "DRJSON_INVALID_CHAR"
	ErrCodeInvalidValue  errors.ErrorCode = "DRJSON_INVALID_VALUE"
	ErrCodeTooDeep       errors.ErrorCode = "DRJSON_TOO_DEEP"
	ErrCodeTypeError     errors.ErrorCode = "DRJSON_TYPE_ERROR"
	ErrCodeReadOnly      errors.ErrorCode = "DRJSON_READ_ONLY"
	ErrCodeInvalidError  errors.ErrorCode = "DRJSON_INVALID_ERROR"
)

const (
	msgUnexpectedEOF = "unexpected end of input"
	msgAllocFailure  = "allocator exhausted or capacity limit reached"
	msgMissingKey    = "key not present in object"
	msgIndexError    = "index out of bounds"
	msgInvalidChar   = "unexpected character"
	msgInvalidValue  = "value could not be parsed"
	msgTooDeep       = "nesting depth exceeds limit"
	msgTypeError     = "operation not valid for this value's kind"
	msgReadOnly      = "container is read-only (structurally interned)"
	msgInvalidError  = "operation requested on an error value"
)

// ErrUnexpectedEOF reports the tokenizer running out of input mid-production.
func ErrUnexpectedEOF(offset int) error {
	return errors.NewWithField(ErrCodeUnexpectedEOF, msgUnexpectedEOF, "offset", strconv.Itoa(offset))
}

// ErrAllocFailure reports an allocator or capacity-limit failure.
func ErrAllocFailure(reason string) error {
	return errors.NewWithField(ErrCodeAllocFailure, msgAllocFailure, "reason", reason)
}

// ErrMissingKey reports a lookup for a key that is not present.
func ErrMissingKey(key string) error {
	return errors.NewWithField(ErrCodeMissingKey, msgMissingKey, "key", key)
}

// ErrIndexError reports an out-of-bounds array/view index.
func ErrIndexError(index, length int) error {
	return errors.NewWithContext(ErrCodeIndexError, msgIndexError, map[string]interface{}{
		"index":  index,
		"length": length,
	})
}

// ErrInvalidChar reports a tokenizer failure at a specific byte offset.
func ErrInvalidChar(b byte, offset int) error {
	return errors.NewWithContext(ErrCodeInvalidChar, msgInvalidChar, map[string]interface{}{
		"byte":   b,
		"offset": offset,
	})
}

// ErrInvalidValue reports a value (usually numeric) that failed to parse.
func ErrInvalidValue(text string) error {
	return errors.NewWithField(ErrCodeInvalidValue, msgInvalidValue, "text", text)
}

// ErrTooDeep reports the parser exceeding its maximum depth, or a path
// with more than MaxPathSegments segments.
func ErrTooDeep(depth int) error {
	return errors.NewWithField(ErrCodeTooDeep, msgTooDeep, "depth", strconv.Itoa(depth))
}

// ErrTypeError reports an operation applied to a value of the wrong kind.
func ErrTypeError(op string, got Kind) error {
	return errors.NewWithContext(ErrCodeTypeError, msgTypeError, map[string]interface{}{
		"operation": op,
		"kind":      got.String(),
	})
}

// ErrReadOnly reports a mutation attempted on a structurally-interned
// (frozen) container.
func ErrReadOnly(op string) error {
	return errors.NewWithField(ErrCodeReadOnly, msgReadOnly, "operation", op)
}

// ErrInvalidError reports an operation that only makes sense on a
// non-ERROR value being applied to an ERROR value.
func ErrInvalidError(code Code) error {
	return errors.NewWithField(ErrCodeInvalidError, msgInvalidError, "code", code.String())
}

// IsMissingKey reports whether err is a missing-key error.
func IsMissingKey(err error) bool { return errors.HasCode(err, ErrCodeMissingKey) }

// IsIndexError reports whether err is an out-of-bounds error.
func IsIndexError(err error) bool { return errors.HasCode(err, ErrCodeIndexError) }

// IsTypeError reports whether err is a wrong-kind error.
func IsTypeError(err error) bool { return errors.HasCode(err, ErrCodeTypeError) }

// IsReadOnly reports whether err is a mutation-on-frozen-container error.
func IsReadOnly(err error) bool { return errors.HasCode(err, ErrCodeReadOnly) }

// IsStructuralError reports whether err originated from the tokenizer/parser.
func IsStructuralError(err error) bool {
	if err == nil {
		return false
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		code := coder.ErrorCode()
		return code == ErrCodeUnexpectedEOF || code == ErrCodeInvalidChar ||
			code == ErrCodeInvalidValue || code == ErrCodeTooDeep
	}
	return false
}

// GetCode extracts the go-errors ErrorCode from err, or "" if absent.
func GetCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetContext extracts the structured context attached to err, if any.
func GetContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var drErr *errors.Error
	if goerrors.As(err, &drErr) {
		return drErr.Context
	}
	return nil
}

// errCodeMessage returns the static message associated with a Code, for
// embedding into ERROR Values (value.go) and the printer's
// "Error: <name>(Code N): <message>" rendering.
func errCodeMessage(c Code) string {
	switch c {
	case CodeNone:
		return "no error"
	case CodeUnexpectedEOF:
		return msgUnexpectedEOF
	case CodeAllocFailure:
		return msgAllocFailure
	case CodeMissingKey:
		return msgMissingKey
	case CodeIndexError:
		return msgIndexError
	case CodeInvalidChar:
		return msgInvalidChar
	case CodeInvalidValue:
		return msgInvalidValue
	case CodeTooDeep:
		return msgTooDeep
	case CodeTypeError:
		return msgTypeError
	case CodeInvalidError:
		return msgInvalidError
	default:
		return fmt.Sprintf("unknown error code %d", int(c))
	}
}
