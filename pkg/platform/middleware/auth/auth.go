// Package auth provides subject authentication for consent endpoints.
// Consent records are mutable only by their subject, so the middleware binds
// the JWT "sub" claim to a typed SubjectID in the request context.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	id "proofgate/pkg/domain"
	"proofgate/pkg/requestcontext"
)

type subjectIDKey struct{}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// SubjectAuth validates a bearer token signed with the shared HMAC key and
// stores the authenticated SubjectID in the request context. Requests without
// a valid token are rejected with 401 before reaching the handler.
func SubjectAuth(signingKey []byte, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			subjectID, err := parseSubjectToken(token, signingKey)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid subject token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			ctx = context.WithValue(ctx, subjectIDKey{}, subjectID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubjectID retrieves the authenticated subject from context.
// Returns the nil SubjectID when no subject is authenticated.
func GetSubjectID(ctx context.Context) id.SubjectID {
	if sid, ok := ctx.Value(subjectIDKey{}).(id.SubjectID); ok {
		return sid
	}
	return id.SubjectID{}
}

// WithSubjectID injects a subject into a context. Test helper for handler
// tests that skip the middleware chain.
func WithSubjectID(ctx context.Context, subjectID id.SubjectID) context.Context {
	return context.WithValue(ctx, subjectIDKey{}, subjectID)
}

// parseSubjectToken validates the token signature and extracts the subject.
func parseSubjectToken(tokenString string, signingKey []byte) (id.SubjectID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return id.SubjectID{}, fmt.Errorf("parse token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return id.SubjectID{}, fmt.Errorf("token missing sub claim")
	}

	subjectID, err := id.ParseSubjectID(sub)
	if err != nil {
		return id.SubjectID{}, fmt.Errorf("invalid sub claim: %w", err)
	}
	return subjectID, nil
}
