// Package testutil provides helpers shared by the end-to-end tests of the
// dashboard backend: an HTTP client over a gin engine, token minting and an
// event recorder.
package testutil

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/identity"
	"github.com/shopdash/backend/internal/infrastructure/auth"
	"github.com/shopdash/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestJWTConfig is the JWT configuration used by test servers
func TestJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                "test-secret-key-with-at-least-32-bytes",
		AccessTokenExpiration: time.Hour,
		Issuer:                "shopdash-test",
	}
}

// Staff is a signed-in staff member of a tenant
type Staff struct {
	TenantID    uuid.UUID
	UserID      uuid.UUID
	Permissions []identity.Permission
	Token       string
}

// Principal returns the identity the API resolves from the staff token
func (s Staff) Principal() identity.Principal {
	return identity.Principal{
		TenantID:    s.TenantID,
		UserID:      s.UserID,
		Permissions: identity.Codes(s.Permissions...),
	}
}

// NewStaff mints a token for a new staff member of tenantID
func NewStaff(t *testing.T, svc *auth.JWTService, tenantID uuid.UUID, perms ...identity.Permission) Staff {
	t.Helper()

	staff := Staff{TenantID: tenantID, UserID: uuid.New(), Permissions: perms}
	token, err := svc.GenerateAccessToken(auth.GenerateTokenInput{
		TenantID:    staff.TenantID,
		UserID:      staff.UserID,
		Username:    "staff-" + staff.UserID.String()[:8],
		Permissions: identity.Codes(perms...),
	})
	require.NoError(t, err, "Failed to mint staff token")
	staff.Token = token.Token
	return staff
}
