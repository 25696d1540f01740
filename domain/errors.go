package domain

import "errors"

// request and storage errors shared by every store, the delivery layer maps them to http status
var (
	ErrNotFound          = errors.New("Your requested Item is not found")
	ErrConflict          = errors.New("Your Item already exist")
	ErrBadParamInput     = errors.New("Given Param is not valid")
	ErrInvalidJsonFormat = errors.New("invalid JSON format")
	ErrInvalidAddress    = errors.New("Invalid address")
	ErrInvalidSignature  = errors.New("Invalid signature")
)
