package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/recipebook/internal/model"
)

// --- モック ---

type mockSessionFinder struct {
	findByIDFn func(ctx context.Context, id string) (*model.Session, error)
}

func (m *mockSessionFinder) FindByID(ctx context.Context, id string) (*model.Session, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

// nextHandler はコンテキストのユーザーIDを記録して200を返すハンドラーを生成する。
func nextHandler(t *testing.T, gotUserID *int) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := UserIDFromContext(r.Context())
		if err == nil {
			*gotUserID = userID
		}
		w.WriteHeader(http.StatusOK)
	})
}

// --- テスト ---

func TestSessionMiddleware_ValidSession(t *testing.T) {
	finder := &mockSessionFinder{
		findByIDFn: func(ctx context.Context, id string) (*model.Session, error) {
			return &model.Session{ID: id, UserID: 42}, nil
		},
	}

	var gotUserID int
	mw := NewSessionMiddleware(finder)
	handler := mw(nextHandler(t, &gotUserID))

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotUserID != 42 {
		t.Errorf("user ID in context = %d, want %d", gotUserID, 42)
	}
}

func TestSessionMiddleware_NoCookie(t *testing.T) {
	mw := NewSessionMiddleware(&mockSessionFinder{})
	var gotUserID int
	handler := mw(nextHandler(t, &gotUserID))

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	var body ErrorResponseBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Errors) != 1 || body.Errors[0] != "Not authorized" {
		t.Errorf("errors = %v, want [Not authorized]", body.Errors)
	}
}

func TestSessionMiddleware_SessionNotFound(t *testing.T) {
	finder := &mockSessionFinder{
		findByIDFn: func(ctx context.Context, id string) (*model.Session, error) {
			return nil, nil // 期限切れまたは不明
		},
	}

	mw := NewSessionMiddleware(finder)
	var gotUserID int
	handler := mw(nextHandler(t, &gotUserID))

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "expired"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if gotUserID != 0 {
		t.Error("expected next handler not to receive a user ID")
	}
}

func TestSessionMiddleware_FinderError(t *testing.T) {
	finder := &mockSessionFinder{
		findByIDFn: func(ctx context.Context, id string) (*model.Session, error) {
			return nil, errors.New("db connection lost")
		},
	}

	mw := NewSessionMiddleware(finder)
	var gotUserID int
	handler := mw(nextHandler(t, &gotUserID))

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sess-1"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestUserIDFromContext_NotSet(t *testing.T) {
	_, err := UserIDFromContext(context.Background())
	if err == nil {
		t.Error("expected error for context without user ID")
	}
}

func TestContextWithUserID_RoundTrip(t *testing.T) {
	ctx := ContextWithUserID(context.Background(), 7)

	userID, err := UserIDFromContext(ctx)
	if err != nil {
		t.Fatalf("UserIDFromContext returned error: %v", err)
	}
	if userID != 7 {
		t.Errorf("userID = %d, want %d", userID, 7)
	}
}
