package services

import (
	"errors"

	"inventory/internal/repositories"
)

var (
	ErrNotFound         = repositories.ErrNotFound
	ErrStoreUnavailable = repositories.ErrStoreUnavailable
	ErrConflict         = repositories.ErrVersionConflict
	ErrInvalidIndex     = errors.New("record index out of range")
	ErrRecordNotFound   = errors.New("record id not found")
	ErrInvalidKind      = errors.New("unknown record kind")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrPartialCascade   = errors.New("some deletions may have failed")
	ErrValidation       = errors.New("validation error")
)
