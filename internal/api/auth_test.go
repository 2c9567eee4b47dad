package api

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
)

var testSigningKey = []byte("test-signing-key")

func signedToken(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestUserIdContext(t *testing.T) {
	ctx := WithUserId(context.Background(), "u1")
	userId, ok := UserId(ctx)
	assert.True(t, ok, "expected user id in context")
	assert.Equal(t, "u1", userId)

	_, ok = UserId(context.Background())
	assert.False(t, ok, "expected no user id in empty context")
}

func Test_extractUserIdFromToken(t *testing.T) {
	s := &VacationApp{signingKey: testSigningKey}

	tcases := []struct {
		name   string
		token  string
		want   string
		errStr string
	}{
		{
			name: "valid token",
			token: signedToken(t, testSigningKey, jwt.MapClaims{
				"sub": "u1",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			want: "u1",
		},
		{
			name: "expired token",
			token: signedToken(t, testSigningKey, jwt.MapClaims{
				"sub": "u1",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			errStr: "parse token",
		},
		{
			name: "wrong signing key",
			token: signedToken(t, []byte("other-key"), jwt.MapClaims{
				"sub": "u1",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			errStr: "parse token",
		},
		{
			name: "missing subject",
			token: signedToken(t, testSigningKey, jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			errStr: "invalid subject claim",
		},
		{
			name:   "garbage token",
			token:  "not-a-token",
			errStr: "parse token",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			userId, err := s.extractUserIdFromToken(tc.token)
			if tc.errStr != "" {
				assert.ErrorContains(t, err, tc.errStr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.want, userId)
		})
	}
}
