package nest

import "github.com/ardnew/nestkit/pkg"

// Predefined errors (sentinel values).
var (
	ErrUnknownOperation = pkg.NewError("unknown operation")
	ErrInvalidArgument  = pkg.NewError("invalid argument")
	ErrNotStructure     = pkg.NewError("value is not a structure")
)
