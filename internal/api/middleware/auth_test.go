package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perma-museum/custodian/internal/api/middleware"
	"github.com/perma-museum/custodian/internal/auth"
	"github.com/perma-museum/custodian/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type signer struct {
	key    *rsa.PrivateKey
	config middleware.AuthConfig
}

func newSigner(t *testing.T) *signer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	return &signer{
		key:    key,
		config: middleware.AuthConfig{JWTPublicKey: string(publicPEM)},
	}
}

func (s *signer) token(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.key)
	require.NoError(t, err)
	return signed
}

func TestAuthenticate(t *testing.T) {
	s := newSigner(t)

	validClaims := jwt.RegisteredClaims{
		Subject:   "louvre",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	t.Run("valid token", func(t *testing.T) {
		result := middleware.Authenticate("Bearer "+s.token(t, validClaims), s.config)

		assert.True(t, result.Success)
		assert.NoError(t, result.Error)
		assert.Equal(t, "louvre", result.Principal.String())
		assert.Equal(t, "louvre", result.Claims.Subject)
	})

	t.Run("missing header", func(t *testing.T) {
		result := middleware.Authenticate("", s.config)

		assert.False(t, result.Success)
		assert.ErrorContains(t, result.Error, "missing Authorization header")
	})

	t.Run("not a bearer token", func(t *testing.T) {
		result := middleware.Authenticate("Basic bG91dnJlOnM0Y3JldA==", s.config)

		assert.False(t, result.Success)
		assert.ErrorContains(t, result.Error, "invalid Authorization header format")
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.RegisteredClaims{
			Subject:   "louvre",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		}
		result := middleware.Authenticate("Bearer "+s.token(t, expired), s.config)

		assert.False(t, result.Success)
		assert.Error(t, result.Error)
	})

	t.Run("not yet valid token", func(t *testing.T) {
		future := jwt.RegisteredClaims{
			Subject:   "louvre",
			NotBefore: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
		}
		result := middleware.Authenticate("Bearer "+s.token(t, future), s.config)

		assert.False(t, result.Success)
		assert.Error(t, result.Error)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		other := newSigner(t)
		result := middleware.Authenticate("Bearer "+other.token(t, validClaims), s.config)

		assert.False(t, result.Success)
		assert.Error(t, result.Error)
	})

	t.Run("HMAC signing method rejected", func(t *testing.T) {
		hmacToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims).
			SignedString([]byte("shared-secret"))
		require.NoError(t, err)

		result := middleware.Authenticate("Bearer "+hmacToken, s.config)

		assert.False(t, result.Success)
		assert.Error(t, result.Error)
	})

	t.Run("empty subject", func(t *testing.T) {
		anonymous := jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		result := middleware.Authenticate("Bearer "+s.token(t, anonymous), s.config)

		assert.False(t, result.Success)
		assert.ErrorContains(t, result.Error, "no usable subject")
	})

	t.Run("public key not configured", func(t *testing.T) {
		result := middleware.Authenticate("Bearer "+s.token(t, validClaims), middleware.AuthConfig{})

		assert.False(t, result.Success)
		assert.Error(t, result.Error)
	})
}

func TestAuthMiddleware(t *testing.T) {
	s := newSigner(t)

	router := gin.New()
	router.Use(middleware.Auth(s.config))
	router.GET("/whoami", func(c *gin.Context) {
		principal, ok := auth.PrincipalFromContext(c.Request.Context())
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"principal": principal.String()})
	})

	t.Run("authenticated request carries the principal", func(t *testing.T) {
		token := s.token(t, jwt.RegisteredClaims{
			Subject:   "uffizi",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"principal":"uffizi"`)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "unauthorized")
	})
}
