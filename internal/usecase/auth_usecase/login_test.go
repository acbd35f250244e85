package auth_test

import (
	"context"
	"testing"
	"time"

	auth "pharmacy/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

type stubIssuer struct {
	token string
	ttl   time.Duration
	err   error
}

func (i stubIssuer) Issue(username string, now time.Time) (string, time.Time, error) {
	if i.err != nil {
		return "", time.Time{}, i.err
	}
	return i.token, now.Add(i.ttl), nil
}

func newLoginUsecase(t *testing.T, username, password string, issuer auth.AccessTokenIssuer, now time.Time) *auth.LoginUsecase {
	t.Helper()

	hasher := auth.NewBcryptPasswordHasher(4)
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	creds := auth.Credentials{Username: username, PasswordHash: hash}
	return auth.NewLoginUsecase(creds, auth.NewBcryptPasswordVerifier(), issuer, fixedClock{t: now})
}

func TestLoginUsecase_Authenticate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	uc := newLoginUsecase(t, "admin", "secret-pass", stubIssuer{}, now)

	assert.True(t, uc.Authenticate(ctx, "admin", "secret-pass"))
	assert.False(t, uc.Authenticate(ctx, "admin", "wrong-pass"))
	assert.False(t, uc.Authenticate(ctx, "other", "secret-pass"))
	assert.False(t, uc.Authenticate(ctx, "", ""))
}

func TestLoginUsecase_Execute_Success(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	issuer := stubIssuer{token: "signed-token", ttl: time.Hour}
	uc := newLoginUsecase(t, "admin", "secret-pass", issuer, now)

	out, err := uc.Execute(ctx, auth.LoginInput{Username: "admin", Password: "secret-pass"})

	assert.NoError(t, err)
	assert.Equal(t, "admin", out.Username)
	assert.Equal(t, "signed-token", out.Token.AccessToken)
	assert.Equal(t, 3600, out.Token.ExpiresIn)
}

func TestLoginUsecase_Execute_WrongPassword(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	uc := newLoginUsecase(t, "admin", "secret-pass", stubIssuer{token: "signed-token", ttl: time.Hour}, now)

	_, err := uc.Execute(ctx, auth.LoginInput{Username: "admin", Password: "bad"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUsecase_Execute_UnknownUser(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	uc := newLoginUsecase(t, "admin", "secret-pass", stubIssuer{token: "signed-token", ttl: time.Hour}, now)

	_, err := uc.Execute(ctx, auth.LoginInput{Username: "intruder", Password: "secret-pass"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestBcryptPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasher(4)
	verifier := auth.NewBcryptPasswordVerifier()

	hash, err := hasher.Hash("p@ssw0rd")
	assert.NoError(t, err)
	assert.NotEqual(t, "p@ssw0rd", hash)

	assert.True(t, verifier.Verify("p@ssw0rd", hash))
	assert.False(t, verifier.Verify("p@ssw0rd!", hash))
}
