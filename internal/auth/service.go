// Package auth はパスワード認証とセッション管理を提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/recipebook/internal/model"
	"github.com/hitoshi/recipebook/internal/repository"
)

// BioSanitizer は自己紹介文のHTML除去インターフェース。
// security.BioSanitizerServiceの部分集合として定義する。
type BioSanitizer interface {
	Sanitize(raw string) string
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionMaxAge int // セッション有効期間（秒）
}

// SignupParams はサインアップの入力値。
type SignupParams struct {
	Username string
	Password string
	ImageURL *string
	Bio      *string
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	sanitizer   BioSanitizer
	config      ServiceConfig
}

// NewService はServiceを生成する。
func NewService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	sanitizer BioSanitizer,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sanitizer:   sanitizer,
		config:      config,
	}
}

// Signup は新規ユーザーを登録し、セッションを発行する。
// バリデーションの順序: ユーザー名 → パスワード → 一意性（INSERT時）。
// ユーザー名が既に存在する場合はmodel.ErrCodeUsernameTakenのAPIErrorを返す。
func (s *Service) Signup(ctx context.Context, params SignupParams) (*model.User, *model.Session, error) {
	user, err := model.NewUser(params.Username, params.ImageURL, params.Bio)
	if err != nil {
		return nil, nil, err
	}

	if err := user.SetPassword(params.Password); err != nil {
		return nil, nil, err
	}

	// 自己紹介文は保存前にHTMLを除去する
	if s.sanitizer != nil && user.Bio != nil {
		clean := s.sanitizer.Sanitize(*user.Bio)
		user.Bio = &clean
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("new user created",
		slog.Int("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, session, nil
}

// Login はユーザー名とパスワードで認証し、セッションを発行する。
// ユーザーが存在しない場合とパスワードが一致しない場合で同一のエラーを返す
// （ユーザー名列挙の防止）。
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, *model.Session, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user == nil || !user.Authenticate(password) {
		return nil, nil, model.NewInvalidCredentialsError()
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("user logged in",
		slog.Int("user_id", user.ID),
	)

	return user, session, nil
}

// Logout はセッションを破棄する。
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.Info("user logged out", slog.String("session_id", sessionID))
	return nil
}

// GetCurrentUser は認証済みユーザーIDからユーザーを取得する。
// ユーザーが存在しない場合（セッションだけ残っている場合）は
// model.ErrCodeNotAuthorizedのAPIErrorを返す。
func (s *Service) GetCurrentUser(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewNotAuthorizedError()
	}

	return user, nil
}

// createSession はセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, userID int) (*model.Session, error) {
	session := &model.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}
