package auth

import (
	"context"
	"testing"

	"github.com/hitoshi/recipebook/internal/model"
)

// --- モック ---

type mockUserRepo struct {
	createFn         func(ctx context.Context, user *model.User) error
	findByIDFn       func(ctx context.Context, id int) (*model.User, error)
	findByUsernameFn func(ctx context.Context, username string) (*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = 1
	return nil
}
func (m *mockUserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return nil, nil
}

type mockSessionRepo struct {
	createFn     func(ctx context.Context, session *model.Session) error
	deleteByIDFn func(ctx context.Context, id string) error
}

func (m *mockSessionRepo) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}
func (m *mockSessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	return nil, nil
}
func (m *mockSessionRepo) DeleteByID(ctx context.Context, id string) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

type mockSanitizer struct {
	sanitizeFn func(raw string) string
}

func (m *mockSanitizer) Sanitize(raw string) string {
	if m.sanitizeFn != nil {
		return m.sanitizeFn(raw)
	}
	return raw
}

func newTestService(userRepo *mockUserRepo, sessionRepo *mockSessionRepo) *Service {
	return NewService(userRepo, sessionRepo, &mockSanitizer{}, ServiceConfig{SessionMaxAge: 86400})
}

// --- サインアップ ---

func TestSignup_Success(t *testing.T) {
	var created *model.User
	userRepo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 1
			created = user
			return nil
		},
	}
	sessionCreated := false
	sessionRepo := &mockSessionRepo{
		createFn: func(ctx context.Context, session *model.Session) error {
			sessionCreated = true
			if session.UserID != 1 {
				t.Errorf("session.UserID = %d, want %d", session.UserID, 1)
			}
			if session.ID == "" {
				t.Error("expected non-empty session ID")
			}
			return nil
		},
	}

	svc := newTestService(userRepo, sessionRepo)

	user, session, err := svc.Signup(context.Background(), SignupParams{
		Username: "ana",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("user.ID = %d, want %d", user.ID, 1)
	}
	if session == nil {
		t.Fatal("expected session, got nil")
	}
	if !sessionCreated {
		t.Error("expected session to be persisted")
	}
	if created.PasswordHash == "" || created.PasswordHash == "secret1" {
		t.Error("expected password to be stored as a hash")
	}
}

func TestSignup_ShortPassword(t *testing.T) {
	createCalled := false
	userRepo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			createCalled = true
			return nil
		},
	}

	svc := newTestService(userRepo, &mockSessionRepo{})

	_, _, err := svc.Signup(context.Background(), SignupParams{
		Username: "ana",
		Password: "abc12",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	apiErr, ok := err.(*model.APIError)
	if !ok {
		t.Fatalf("expected *model.APIError, got %T", err)
	}
	if apiErr.Message != "Password must be at least 6 characters" {
		t.Errorf("message = %q, want %q", apiErr.Message, "Password must be at least 6 characters")
	}
	if createCalled {
		t.Error("expected no user to be persisted")
	}
}

func TestSignup_BlankUsername(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{})

	_, _, err := svc.Signup(context.Background(), SignupParams{
		Username: "  ",
		Password: "secret1",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	apiErr := err.(*model.APIError)
	if apiErr.Message != "Username must be present" {
		t.Errorf("message = %q, want %q", apiErr.Message, "Username must be present")
	}
}

func TestSignup_DuplicateUsername(t *testing.T) {
	userRepo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			return model.NewUsernameTakenError()
		},
	}

	svc := newTestService(userRepo, &mockSessionRepo{})

	_, _, err := svc.Signup(context.Background(), SignupParams{
		Username: "ana",
		Password: "secret1",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	apiErr := err.(*model.APIError)
	if apiErr.Message != "Username must be unique" {
		t.Errorf("message = %q, want %q", apiErr.Message, "Username must be unique")
	}
}

func TestSignup_SanitizesBio(t *testing.T) {
	var storedBio *string
	userRepo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 1
			storedBio = user.Bio
			return nil
		},
	}
	sanitizer := &mockSanitizer{
		sanitizeFn: func(raw string) string {
			return "clean"
		},
	}

	svc := NewService(userRepo, &mockSessionRepo{}, sanitizer, ServiceConfig{SessionMaxAge: 86400})

	bio := "<script>alert(1)</script>"
	_, _, err := svc.Signup(context.Background(), SignupParams{
		Username: "ana",
		Password: "secret1",
		Bio:      &bio,
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if storedBio == nil || *storedBio != "clean" {
		t.Errorf("stored bio = %v, want %q", storedBio, "clean")
	}
}

// --- ログイン ---

// 照合用のハッシュ済みユーザーを生成する
func hashedUser(t *testing.T, username, password string) *model.User {
	t.Helper()
	user := &model.User{ID: 1, Username: username}
	if err := user.SetPassword(password); err != nil {
		t.Fatalf("SetPassword returned error: %v", err)
	}
	return user
}

func TestLogin_Success(t *testing.T) {
	userRepo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return hashedUser(t, username, "secret1"), nil
		},
	}
	sessionCreated := false
	sessionRepo := &mockSessionRepo{
		createFn: func(ctx context.Context, session *model.Session) error {
			sessionCreated = true
			return nil
		},
	}

	svc := newTestService(userRepo, sessionRepo)

	user, session, err := svc.Login(context.Background(), "ana", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.Username != "ana" {
		t.Errorf("username = %q, want %q", user.Username, "ana")
	}
	if session == nil || !sessionCreated {
		t.Error("expected session to be created")
	}
}

// ユーザー不在とパスワード誤りで同一のエラーを返す（列挙防止）
func TestLogin_WrongPasswordAndUnknownUser_SameError(t *testing.T) {
	known := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return hashedUser(t, username, "secret1"), nil
		},
	}
	unknown := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return nil, nil
		},
	}

	_, _, errWrongPassword := newTestService(known, &mockSessionRepo{}).Login(context.Background(), "ana", "wrong-password")
	_, _, errUnknownUser := newTestService(unknown, &mockSessionRepo{}).Login(context.Background(), "ghost", "secret1")

	if errWrongPassword == nil || errUnknownUser == nil {
		t.Fatal("expected both logins to fail")
	}
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Errorf("error messages differ: %q vs %q", errWrongPassword.Error(), errUnknownUser.Error())
	}
	apiErr := errWrongPassword.(*model.APIError)
	if apiErr.Message != "Invalid username or password" {
		t.Errorf("message = %q, want %q", apiErr.Message, "Invalid username or password")
	}
}

func TestLogin_EmptyPassword(t *testing.T) {
	userRepo := &mockUserRepo{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return hashedUser(t, username, "secret1"), nil
		},
	}

	_, _, err := newTestService(userRepo, &mockSessionRepo{}).Login(context.Background(), "ana", "")
	if err == nil {
		t.Fatal("expected error for empty password, got nil")
	}
}

// --- ログアウト ---

func TestLogout_DeletesSession(t *testing.T) {
	deleted := ""
	sessionRepo := &mockSessionRepo{
		deleteByIDFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	svc := newTestService(&mockUserRepo{}, sessionRepo)

	if err := svc.Logout(context.Background(), "session-123"); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if deleted != "session-123" {
		t.Errorf("deleted session = %q, want %q", deleted, "session-123")
	}
}

func TestLogout_EmptySessionID(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{})

	if err := svc.Logout(context.Background(), ""); err == nil {
		t.Error("expected error for empty session ID")
	}
}

// --- 現在ユーザー取得 ---

func TestGetCurrentUser_Found(t *testing.T) {
	userRepo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id int) (*model.User, error) {
			return &model.User{ID: id, Username: "ana"}, nil
		},
	}

	svc := newTestService(userRepo, &mockSessionRepo{})

	user, err := svc.GetCurrentUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetCurrentUser returned error: %v", err)
	}
	if user.Username != "ana" {
		t.Errorf("username = %q, want %q", user.Username, "ana")
	}
}

func TestGetCurrentUser_NotFound(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockSessionRepo{})

	_, err := svc.GetCurrentUser(context.Background(), 99)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	apiErr := err.(*model.APIError)
	if apiErr.Message != "Not authorized" {
		t.Errorf("message = %q, want %q", apiErr.Message, "Not authorized")
	}
}
