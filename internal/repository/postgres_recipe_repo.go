package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/recipebook/internal/model"
)

// PostgresRecipeRepo はPostgreSQLを使用したレシピリポジトリ。
type PostgresRecipeRepo struct {
	db *sql.DB
}

// NewPostgresRecipeRepo はPostgresRecipeRepoを生成する。
func NewPostgresRecipeRepo(db *sql.DB) *PostgresRecipeRepo {
	return &PostgresRecipeRepo{db: db}
}

// Create はレシピを作成し、採番されたIDをrecipe.IDに書き戻す。
// バリデーション済みのレシピのみを受け取る前提のため、ここでの失敗は
// そのまま内部エラーとして呼び出し元へ返す。
func (r *PostgresRecipeRepo) Create(ctx context.Context, recipe *model.Recipe) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO recipes (title, instructions, minutes_to_complete, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		recipe.Title, recipe.Instructions, recipe.MinutesToComplete, recipe.UserID, recipe.CreatedAt,
	).Scan(&recipe.ID)

	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}

	return nil
}

// ListWithUsers は全レシピを所有ユーザー付きで取得する。
// 所有ユーザーはJOINで埋め込み、並び順はid昇順（格納順）とする。
func (r *PostgresRecipeRepo) ListWithUsers(ctx context.Context) ([]*model.Recipe, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.title, r.instructions, r.minutes_to_complete, r.user_id, r.created_at,
		        u.id, u.username, u.image_url, u.bio, u.created_at, u.updated_at
		 FROM recipes r
		 JOIN users u ON u.id = r.user_id
		 ORDER BY r.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*model.Recipe
	for rows.Next() {
		recipe := &model.Recipe{User: &model.User{}}
		var imageURL, bio sql.NullString

		err := rows.Scan(
			&recipe.ID, &recipe.Title, &recipe.Instructions, &recipe.MinutesToComplete,
			&recipe.UserID, &recipe.CreatedAt,
			&recipe.User.ID, &recipe.User.Username, &imageURL, &bio,
			&recipe.User.CreatedAt, &recipe.User.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}

		if imageURL.Valid {
			recipe.User.ImageURL = &imageURL.String
		}
		if bio.Valid {
			recipe.User.Bio = &bio.String
		}

		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}

	return recipes, nil
}

// compile-time interface check
var _ RecipeRepository = (*PostgresRecipeRepo)(nil)
