package catalog

import "errors"

var (
	ErrBungalowNotFound = errors.New("bungalow not found")
	ErrServiceNotFound  = errors.New("service not found")
)
