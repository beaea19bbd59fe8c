package physics

import "errors"

var (
	ErrDuplicateKind = errors.New("physics: quantity kind already present")
	ErrUnknownKind   = errors.New("physics: unknown quantity kind")
	ErrForeignOwner  = errors.New("physics: quantity belongs to another object")
	ErrNotFound      = errors.New("physics: quantity not found")
	ErrNotChangeable = errors.New("physics: quantity not changeable")
)
