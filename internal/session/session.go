package session

import (
	"encoding/base64"
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"unite-dashboard/internal/domain"
)

// Resolver turns the dashboard's forwarded identity material (the stored
// profile blob plus the bearer token) into a typed Viewer. It is the single
// accessor replacing ad-hoc field probing at call sites.
type Resolver struct {
	secret string
	logger *zap.Logger
}

func NewResolver(secret string, logger *zap.Logger) *Resolver {
	return &Resolver{secret: secret, logger: logger}
}

type tokenClaims struct {
	UserID string `json:"user_id"`
	ID     string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Resolve never fails: malformed input degrades to a zero Viewer so the
// dashboard falls back to default display values instead of erroring.
func (r *Resolver) Resolve(profile []byte, bearer string) domain.Viewer {
	id, role, staffType := parseProfile(profile)

	if (id == "" || role == "") && bearer != "" {
		claimID, claimRole := r.parseToken(bearer)
		if id == "" {
			id = claimID
		}
		if role == "" {
			role = claimRole
		}
	}

	return domain.NewViewer(id, role, staffType)
}

// parseProfile reads the serialized user profile. Profiles were written by
// several dashboard versions, so every field has alternately-cased
// candidates. Parse failures are swallowed.
func parseProfile(profile []byte) (id, role, staffType string) {
	if len(profile) == 0 {
		return "", "", ""
	}

	// The profile header may be raw JSON or base64-wrapped JSON.
	raw := profile
	if decoded, err := base64.StdEncoding.DecodeString(string(profile)); err == nil && len(decoded) > 0 && decoded[0] == '{' {
		raw = decoded
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", "", ""
	}

	id = profileString(m, "id", "_id", "Id", "userId", "User_ID")
	role = profileString(m, "role", "Role", "userRole", "User_Type", "userType")
	staffType = profileString(m, "staffType", "Staff_Type", "staff_type")
	return id, role, staffType
}

func profileString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// parseToken extracts identity claims from the bearer token. With a shared
// secret configured the signature is checked; without one the claims are
// read unverified, which is acceptable because the derived identity is
// advisory and the upstream re-authorizes every mutation.
func (r *Resolver) parseToken(bearer string) (id, role string) {
	var claims tokenClaims

	if r.secret != "" {
		_, err := jwt.ParseWithClaims(bearer, &claims, func(t *jwt.Token) (any, error) {
			return []byte(r.secret), nil
		})
		if err != nil {
			r.logger.Debug("bearer token rejected", zap.Error(err))
			return "", ""
		}
	} else {
		parser := jwt.NewParser()
		if _, _, err := parser.ParseUnverified(bearer, &claims); err != nil {
			return "", ""
		}
	}

	id = claims.UserID
	if id == "" {
		id = claims.ID
	}
	if id == "" {
		id = claims.Subject
	}
	return id, claims.Role
}
