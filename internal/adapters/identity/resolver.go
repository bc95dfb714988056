package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/powderline/avalanche-report-service/internal/domain"
)

// Config wires the external identity provider.
type Config struct {
	// ProviderURL is the base URL of the provider's admin API.
	ProviderURL string
	// ServiceKey authenticates this service against the admin API.
	ServiceKey string
	// JWTSecret verifies HS256 session tokens issued by the provider.
	JWTSecret string
	// HTTPTimeout bounds admin API round trips.
	HTTPTimeout time.Duration
}

// Resolver verifies provider-issued session tokens locally and resolves
// display names through the provider's admin API. Token verification needs no
// network round trip; name resolution does and is therefore best-effort at
// the workflow layer.
type Resolver struct {
	cfg        Config
	secret     []byte
	httpClient *http.Client
}

func NewResolver(cfg Config) (*Resolver, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("identity jwt secret is required")
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Resolver{
		cfg:        cfg,
		secret:     []byte(cfg.JWTSecret),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type sessionClaims struct {
	Email        string `json:"email"`
	UserMetadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// ResolveCredential validates a session token and extracts the caller identity.
func (r *Resolver) ResolveCredential(_ context.Context, credential string) (domain.Identity, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(credential, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return r.secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parse session token: %w", err)
	}
	if !token.Valid {
		return domain.Identity{}, errors.New("invalid session token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parse subject: %w", err)
	}

	hint := strings.TrimSpace(claims.UserMetadata.Name)
	if hint == "" {
		hint = claims.Email
	}
	return domain.Identity{
		ID:              userID,
		Handle:          claims.Email,
		DisplayNameHint: hint,
		Administrator:   isAdminHandle(claims.Email),
	}, nil
}

// isAdminHandle classifies administrators by substring match on the contact
// handle. Known-weak rule carried over from the provider setup; replace with a
// role claim once the provider exposes one.
func isAdminHandle(handle string) bool {
	return strings.Contains(strings.ToLower(handle), "admin")
}

type adminUserResponse struct {
	Email        string `json:"email"`
	UserMetadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
}

// DisplayName fetches the current display name of any user from the provider
// admin API. Falls back to the email when no name is set.
func (r *Resolver) DisplayName(ctx context.Context, userID uuid.UUID) (string, error) {
	if r.cfg.ProviderURL == "" {
		return "", fmt.Errorf("%w: identity provider url not configured", domain.ErrDependency)
	}

	url := strings.TrimRight(r.cfg.ProviderURL, "/") + "/admin/users/" + userID.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+r.cfg.ServiceKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: identity provider: %v", domain.ErrDependency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var user adminUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("decode provider response: %w", err)
	}
	if name := strings.TrimSpace(user.UserMetadata.Name); name != "" {
		return name, nil
	}
	return user.Email, nil
}
