package domain

import "errors"

var (
	ErrImageNotFound    = errors.New("image not found")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrInvalidImageID   = errors.New("invalid image id")
	ErrInvalidSizeName  = errors.New("invalid size name")
	ErrInvalidTask      = errors.New("invalid resize task")
	ErrInvalidObjectKey = errors.New("invalid object key")
	ErrObjectNotFound   = errors.New("object not found")
)
