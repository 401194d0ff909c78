// Package model はドメインモデルを定義する。
package model

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User はサービス利用ユーザーを表す。
// PasswordHashはbcryptハッシュのみを保持し、APIレスポンスには一切含めない。
// 平文パスワードはSetPasswordを経由してのみ設定でき、読み出し経路は存在しない。
type User struct {
	ID        int
	Username  string
	ImageURL  *string
	Bio       *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// PasswordHash はbcryptハッシュ。シリアライズ対象外（write-only）。
	PasswordHash string
}

// NewUser はユーザー名のバリデーションを行った上でUserを生成する。
// ユーザー名が空白のみの場合はバリデーションエラーを返す。
func NewUser(username string, imageURL, bio *string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	now := time.Now()
	return &User{
		Username:  username,
		ImageURL:  imageURL,
		Bio:       bio,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidateUsername はユーザー名が空白を除いて非空であることを検証する。
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return NewValidationError("Username must be present")
	}
	return nil
}

// SetPassword は平文パスワードを検証し、bcryptハッシュとして保存する。
// 6文字未満のパスワードはバリデーションエラーで拒否する。
// 平文はハッシュ化後に保持されない。
func (u *User) SetPassword(plain string) error {
	if len(plain) < 6 {
		return NewValidationError("Password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// Authenticate は平文パスワードを保存済みハッシュと照合する。
// 空のパスワードはハッシュの内容にかかわらず常に失敗する。
func (u *User) Authenticate(plain string) bool {
	if plain == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// Session はユーザーのログインセッションを表す。
// IDは推測不能なopaqueトークンとしてHTTP Only Cookieに載る。
type Session struct {
	ID        string
	UserID    int
	ExpiresAt time.Time
	CreatedAt time.Time
}
