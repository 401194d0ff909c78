// Package recipe はレシピ管理のドメインロジックを提供する。
package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hitoshi/recipebook/internal/model"
	"github.com/hitoshi/recipebook/internal/repository"
)

// CreateParams はレシピ作成の入力値。
// MinutesToCompleteはJSONの生の値のまま受け取り、モデル層で整数へ強制変換する。
type CreateParams struct {
	Title             string
	Instructions      string
	MinutesToComplete json.RawMessage
}

// Service はレシピ管理のサービス層。
type Service struct {
	recipeRepo repository.RecipeRepository
	userRepo   repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(recipeRepo repository.RecipeRepository, userRepo repository.UserRepository) *Service {
	return &Service{
		recipeRepo: recipeRepo,
		userRepo:   userRepo,
	}
}

// List は全レシピを所有ユーザー付きで返す。
// ページネーションは行わず、格納順のまま返す。
func (s *Service) List(ctx context.Context) ([]*model.Recipe, error) {
	recipes, err := s.recipeRepo.ListWithUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// Create は認証済みユーザーのレシピを作成する。
// バリデーションは永続化の前にモデル層で行い、違反があれば何も書き込まずに
// APIErrorを返す（リクエスト単位の all-or-nothing）。
// 作成されたレシピには所有ユーザーを埋め込んで返す。
func (s *Service) Create(ctx context.Context, userID int, params CreateParams) (*model.Recipe, error) {
	recipe, err := model.NewRecipe(params.Title, params.Instructions, params.MinutesToComplete, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewNotAuthorizedError()
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	recipe.User = user

	slog.Info("recipe created",
		slog.Int("recipe_id", recipe.ID),
		slog.Int("user_id", userID),
	)

	return recipe, nil
}
