// Package access decides whether a caller may read or change a resource.
package access

import (
	"Foodgram-Backend/domain"

	"github.com/google/uuid"
)

type Capability int

const (
	Read Capability = iota
	Write
)

func (c Capability) String() string {
	switch c {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return "unknown"
	}
}

// Authorize checks capability c of identity on a resource owned by ownerID.
// Reads are always allowed. Writes need an authenticated caller who owns the
// resource or is an admin.
func Authorize(identity domain.Identity, c Capability, ownerID uuid.UUID) error {
	switch c {
	case Read:
		return nil
	case Write:
		if !identity.Authenticated {
			return domain.ErrAuthenticationRequired
		}
		if identity.IsAdmin() || identity.UserID == ownerID {
			return nil
		}
		return domain.ErrPermissionDenied
	default:
		return domain.ErrPermissionDenied
	}
}

// RequireAuthenticated is the write check for resources that do not exist
// yet, such as a recipe being created.
func RequireAuthenticated(identity domain.Identity) error {
	if !identity.Authenticated {
		return domain.ErrAuthenticationRequired
	}
	return nil
}
