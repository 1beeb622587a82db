package access

import (
	"Foodgram-Backend/domain"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name     string
		identity domain.Identity
		cap      Capability
		want     error
	}{
		{name: "anonymous read", identity: domain.Anonymous(), cap: Read, want: nil},
		{name: "anonymous write", identity: domain.Anonymous(), cap: Write, want: domain.ErrAuthenticationRequired},
		{name: "author write", identity: domain.Identity{UserID: owner, Role: domain.RoleUser, Authenticated: true}, cap: Write, want: nil},
		{name: "stranger write", identity: domain.Identity{UserID: other, Role: domain.RoleUser, Authenticated: true}, cap: Write, want: domain.ErrPermissionDenied},
		{name: "admin write", identity: domain.Identity{UserID: other, Role: domain.RoleAdmin, Authenticated: true}, cap: Write, want: nil},
		{name: "unauthenticated admin role", identity: domain.Identity{UserID: owner, Role: domain.RoleAdmin}, cap: Write, want: domain.ErrAuthenticationRequired},
		{name: "unknown capability", identity: domain.Identity{UserID: owner, Authenticated: true}, cap: Capability(42), want: domain.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.identity, tt.cap, owner)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrPermission)
		})
	}
}

func TestRequireAuthenticated(t *testing.T) {
	assert.ErrorIs(t, RequireAuthenticated(domain.Anonymous()), domain.ErrAuthenticationRequired)
	assert.NoError(t, RequireAuthenticated(domain.Identity{UserID: uuid.New(), Authenticated: true}))
}
