package catalog

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnknownRole    = errors.New("unknown role")
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// UnknownRoleError reports a role that has no catalog entry.
type UnknownRoleError struct {
	Role string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q", e.Role)
}

// Is lets errors.Is(err, ErrUnknownRole) match any *UnknownRoleError.
func (e *UnknownRoleError) Is(target error) bool {
	return target == ErrUnknownRole
}
