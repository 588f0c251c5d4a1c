package registry

import "errors"

var (
	ErrEmptyField     = errors.New("required field is empty")
	ErrInvalidDate    = errors.New("date must be a valid YYYY-MM-DD date")
	ErrInvalidValue   = errors.New("measurement value must be a positive number")
	ErrEmptySelection = errors.New("no plants selected")
	ErrNotFound       = errors.New("plant not found")
	ErrDuplicateLabel = errors.New("a quick card with this label already exists")
	ErrInvalidImport  = errors.New("import data has an unexpected shape")
)
