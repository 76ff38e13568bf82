package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/auth"
)

var testSecret = []byte("test-jwt-secret-key-32-characters")

func signToken(t *testing.T, claims jwt.MapClaims, secret []byte) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func clientClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"uid":  "ana@example.com",
		"sid":  "session-1",
		"role": auth.RoleClient,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
}

func staffClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"aud":   "kitchen",
		"uid":   "kitchen",
		"role":  auth.RoleStaff,
		"scope": "orders",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
}

func newRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", JWTAuth(testSecret), RequireRole(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user":    UserID(c),
			"role":    c.GetString(ContextUserRole),
			"session": SessionID(c),
		})
	})
	return r
}

func call(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAcceptsClientToken(t *testing.T) {
	r := newRouter(auth.RoleClient)

	w := call(r, "Bearer "+signToken(t, clientClaims(), testSecret))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"session":"session-1"`)
	assert.Contains(t, w.Body.String(), `"user":"ana@example.com"`)
}

func TestJWTAuthAcceptsStaffToken(t *testing.T) {
	r := newRouter(auth.RoleStaff)

	w := call(r, "Bearer "+signToken(t, staffClaims(), testSecret))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"staff"`)
	assert.Contains(t, w.Body.String(), `"session":""`)
}

func TestJWTAuthRejections(t *testing.T) {
	r := newRouter(auth.RoleClient, auth.RoleStaff)

	expired := clientClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	noSession := clientClaims()
	delete(noSession, "sid")

	badRole := staffClaims()
	badRole["role"] = "admin"

	noUID := staffClaims()
	delete(noUID, "uid")

	testCases := []struct {
		name          string
		authorization string
		errorCode     string
	}{
		{"missing header", "", "authorization_required"},
		{"wrong scheme", "Basic Zm9vOmJhcg==", "invalid_request"},
		{"empty bearer", "Bearer ", "invalid_token"},
		{"wrong secret", "Bearer " + signToken(t, clientClaims(), []byte("another-secret")), "invalid_token"},
		{"expired", "Bearer " + signToken(t, expired, testSecret), "invalid_token"},
		{"client without session", "Bearer " + signToken(t, noSession, testSecret), "invalid_token"},
		{"unknown role", "Bearer " + signToken(t, badRole, testSecret), "invalid_token"},
		{"missing uid", "Bearer " + signToken(t, noUID, testSecret), "invalid_token"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			w := call(r, tt.authorization)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.errorCode)
		})
	}
}

func TestRequireRoleForbidsOtherRole(t *testing.T) {
	r := newRouter(auth.RoleStaff)

	w := call(r, "Bearer "+signToken(t, clientClaims(), testSecret))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}
