package session

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver("test-secret", zap.NewNop())

	t.Run("raw JSON profile", func(t *testing.T) {
		v := r.Resolve([]byte(`{"id":"u1","role":"System Administrator"}`), "")
		assert.Equal(t, "u1", v.ID)
		assert.True(t, v.IsAdmin)
	})

	t.Run("base64 profile with legacy field names", func(t *testing.T) {
		profile := base64.StdEncoding.EncodeToString([]byte(`{"User_ID":"u2","User_Type":"District Coordinator","Staff_Type":"Admin"}`))
		v := r.Resolve([]byte(profile), "")
		assert.Equal(t, "u2", v.ID)
		assert.True(t, v.IsCoordinator())
		assert.True(t, v.IsStaffTypeAdmin)
		// Staff-level Admin is not the system-admin axis.
		assert.False(t, v.IsAdmin)
	})

	t.Run("malformed profile degrades to zero viewer", func(t *testing.T) {
		v := r.Resolve([]byte(`{"id": truncated`), "")
		assert.True(t, v.IsZero())
	})

	t.Run("profile gaps filled from verified token claims", func(t *testing.T) {
		bearer := signToken(t, "test-secret", jwt.MapClaims{
			"user_id": "u3",
			"role":    "Stakeholder",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		v := r.Resolve(nil, bearer)
		assert.Equal(t, "u3", v.ID)
		assert.True(t, v.IsStakeholder())
	})

	t.Run("token signed with the wrong secret is rejected", func(t *testing.T) {
		bearer := signToken(t, "other-secret", jwt.MapClaims{
			"user_id": "u4",
			"role":    "Stakeholder",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		v := r.Resolve(nil, bearer)
		assert.True(t, v.IsZero())
	})

	t.Run("profile wins over token claims", func(t *testing.T) {
		bearer := signToken(t, "test-secret", jwt.MapClaims{
			"user_id": "token-user",
			"role":    "Stakeholder",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		v := r.Resolve([]byte(`{"id":"profile-user","role":"System Admin"}`), bearer)
		assert.Equal(t, "profile-user", v.ID)
		assert.True(t, v.IsAdmin)
	})
}

func TestResolver_NoSecretReadsUnverified(t *testing.T) {
	r := NewResolver("", zap.NewNop())

	bearer := signToken(t, "whatever", jwt.MapClaims{
		"sub":  "u5",
		"role": "Coordinator",
	})
	v := r.Resolve(nil, bearer)
	assert.Equal(t, "u5", v.ID)
	assert.True(t, v.IsCoordinator())
}
