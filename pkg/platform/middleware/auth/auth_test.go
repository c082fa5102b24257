package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "proofgate/pkg/domain"
)

var testKey = []byte("test-signing-key")

func signToken(t *testing.T, sub string, key []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func newTestHandler(t *testing.T) (http.Handler, *id.SubjectID) {
	t.Helper()
	var seen id.SubjectID
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSubjectID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return SubjectAuth(testKey, logger)(inner), &seen
}

func TestSubjectAuth_ValidToken(t *testing.T) {
	handler, seen := newTestHandler(t)
	subject := uuid.New().String()

	req := httptest.NewRequest(http.MethodPut, "/consent/"+subject, nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, subject, testKey))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, subject, seen.String())
}

func TestSubjectAuth_MissingToken(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/consent/x", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubjectAuth_WrongKey(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/consent/x", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New().String(), []byte("other-key")))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubjectAuth_NonUUIDSubject(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/consent/x", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "not-a-uuid", testKey))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
