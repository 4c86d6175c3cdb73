package domain

import "errors"

var (
	// ErrNotFound will throw if the requested file or object does not exist
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given configuration or manifest is not valid
	ErrBadParamInput     = errors.New("Given Param is not valid")
	ErrUnsupportedSchema = errors.New("Unsupported schema")
	ErrInvalidJsonFormat = errors.New("invalid JSON format")

	// manifest errors
	ErrInvalidTokenId     = errors.New("invalid token id")
	ErrDuplicateTokenId   = errors.New("duplicate token id")
	ErrMissingTraitName   = errors.New("trait value has no name")
	ErrInvalidTraitValue  = errors.New("trait value is not an object")
	ErrUnsupportedBackend = errors.New("unsupported backend")
)
