package brainviz

import "errors"

// ErrInvalidArgument reports input that violates a kernel's shape or range
// contract. Errors returned by this package wrap it; test with errors.Is.
var ErrInvalidArgument = errors.New("brainviz: invalid argument")
