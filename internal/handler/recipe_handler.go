package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/recipebook/internal/middleware"
	"github.com/hitoshi/recipebook/internal/model"
	"github.com/hitoshi/recipebook/internal/recipe"
)

// RecipeServiceInterface はレシピハンドラーが必要とするサービスインターフェース。
type RecipeServiceInterface interface {
	// List は全レシピを所有ユーザー付きで返す。
	List(ctx context.Context) ([]*model.Recipe, error)
	// Create は認証済みユーザーのレシピを作成する。
	Create(ctx context.Context, userID int, params recipe.CreateParams) (*model.Recipe, error)
}

// RecipeMetricsRecorder はレシピ作成イベントのメトリクス記録インターフェース。
type RecipeMetricsRecorder interface {
	RecordRecipeCreated()
}

// RecipeHandler はレシピ管理のHTTPハンドラー。
type RecipeHandler struct {
	service RecipeServiceInterface
	metrics RecipeMetricsRecorder
}

// NewRecipeHandler はRecipeHandlerを生成する。
// metricsはnilの場合イベント記録をスキップする。
func NewRecipeHandler(service RecipeServiceInterface, metrics RecipeMetricsRecorder) *RecipeHandler {
	return &RecipeHandler{
		service: service,
		metrics: metrics,
	}
}

// createRecipeRequest はレシピ作成リクエストのボディ。
// minutes_to_completeは数値・数値文字列の両方を受け付けるため生のまま保持する。
type createRecipeRequest struct {
	Title             string          `json:"title"`
	Instructions      string          `json:"instructions"`
	MinutesToComplete json.RawMessage `json:"minutes_to_complete"`
}

// recipeResponse はレシピ情報のAPIレスポンス。所有ユーザーを埋め込む。
type recipeResponse struct {
	ID                int          `json:"id"`
	Title             string       `json:"title"`
	Instructions      string       `json:"instructions"`
	MinutesToComplete int          `json:"minutes_to_complete"`
	User              userResponse `json:"user"`
}

// ListRecipes は全レシピの一覧を返す。
// GET /recipes
func (h *RecipeHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// レシピが1件もない場合もnullではなく空配列を返す
	resp := make([]recipeResponse, 0, len(recipes))
	for _, rec := range recipes {
		resp = append(resp, toRecipeResponse(rec))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// CreateRecipe は認証済みユーザーのレシピ作成を処理する。
// バリデーション違反は422とerrorsリストで返す。
// POST /recipes
func (h *RecipeHandler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req createRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), userID, recipe.CreateParams{
		Title:             req.Title,
		Instructions:      req.Instructions,
		MinutesToComplete: req.MinutesToComplete,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordRecipeCreated()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toRecipeResponse(created))
}

// toRecipeResponse はmodel.RecipeからAPIレスポンスに変換する。
func toRecipeResponse(rec *model.Recipe) recipeResponse {
	resp := recipeResponse{
		ID:                rec.ID,
		Title:             rec.Title,
		Instructions:      rec.Instructions,
		MinutesToComplete: rec.MinutesToComplete,
	}
	if rec.User != nil {
		resp.User = toUserResponse(rec.User)
	}
	return resp
}
