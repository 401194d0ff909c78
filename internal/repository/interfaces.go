// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/recipebook/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// Create はユーザーを作成し、採番されたIDをuser.IDに書き戻す。
	// ユーザー名の一意制約違反の場合はmodel.ErrCodeUsernameTakenのAPIErrorを返す。
	Create(ctx context.Context, user *model.User) error

	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int) (*model.User, error)

	// FindByUsername はユーザー名でユーザーを検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// RecipeRepository はレシピデータの永続化インターフェース。
type RecipeRepository interface {
	// Create はレシピを作成し、採番されたIDをrecipe.IDに書き戻す。
	Create(ctx context.Context, recipe *model.Recipe) error

	// ListWithUsers は全レシピを所有ユーザー付きで取得する。
	// 所有ユーザーはJOINで各レシピのUserフィールドに埋め込まれる。
	ListWithUsers(ctx context.Context) ([]*model.Recipe, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
}
