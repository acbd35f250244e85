package auth

import (
	"context"
	"errors"
	"time"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Username string
	Password string
}

type JwtAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	Username string         `json:"username"`
	Token    JwtAccessToken `json:"token"`
}

// ユーザー名またはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(username string, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// 時刻の供給元
type Clock interface {
	Now() time.Time
}

// 設定由来の管理者クレデンシャル（ユーザー名 + bcryptハッシュ）
type Credentials struct {
	Username     string
	PasswordHash string
}

type LoginUsecase struct {
	creds    Credentials
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewLoginUsecase(
	creds Credentials,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		creds:    creds,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

// ユーザー名とパスワードの組が正しいかだけを答える
func (u *LoginUsecase) Authenticate(ctx context.Context, username string, password string) bool {
	if username != u.creds.Username {
		return false
	}
	return u.verifier.Verify(password, u.creds.PasswordHash)
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	if !u.Authenticate(ctx, in.Username, in.Password) {
		return out, ErrInvalidCredentials
	}

	now := u.clock.Now()
	accessToken, accessExp, err := u.issuer.Issue(in.Username, now)
	if err != nil {
		return out, err
	}

	out.Username = in.Username
	out.Token = JwtAccessToken{
		AccessToken: accessToken,
		ExpiresIn:   int(accessExp.Sub(now).Seconds()),
	}
	return out, nil
}
