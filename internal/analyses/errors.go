package analyses

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInputTooLarge   = errors.New("input too large")
	ErrUnsupportedTool = errors.New("unsupported tool")
)

const (
	ErrorCodeValidation      = "validation_error"
	ErrorCodeInputTooLarge   = "input_too_large"
	ErrorCodeUnsupportedTool = "unsupported_tool"
	ErrorCodeUnsupportedFile = "unsupported_file"
	ErrorCodeNotFound        = "not_found"
	ErrorCodeIdentity        = "identity_required"
	ErrorCodeInternal        = "internal_error"
)
