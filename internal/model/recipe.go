// Package model はドメインモデルを定義する。
package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Recipe は投稿されたレシピを表す。
// 1件のレシピは必ず1人のユーザーに属する。
type Recipe struct {
	ID                int
	Title             string
	Instructions      string
	MinutesToComplete int
	UserID            int
	CreatedAt         time.Time

	// User は所有ユーザー。一覧取得時にJOINで埋め込まれる。
	User *User
}

// minInstructionsLength は作り方の最小文字数。
const minInstructionsLength = 50

// NewRecipe は各フィールドのバリデーションを行った上でRecipeを生成する。
// minutesはJSONからデコードされた生の値を受け取り、整数へ強制変換する。
// バリデーションはタイトル、作り方、所要時間の順に行い、最初の違反を返す。
func NewRecipe(title, instructions string, minutes json.RawMessage, userID int) (*Recipe, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := ValidateInstructions(instructions); err != nil {
		return nil, err
	}
	m, err := CoerceMinutes(minutes)
	if err != nil {
		return nil, err
	}
	return &Recipe{
		Title:             title,
		Instructions:      instructions,
		MinutesToComplete: m,
		UserID:            userID,
		CreatedAt:         time.Now(),
	}, nil
}

// ValidateTitle はタイトルが空白を除いて非空であることを検証する。
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("Title must be present")
	}
	return nil
}

// ValidateInstructions は作り方が50文字以上であることを検証する。
func ValidateInstructions(instructions string) error {
	if len(instructions) < minInstructionsLength {
		return NewValidationError("Instructions must be at least 50 characters")
	}
	return nil
}

// CoerceMinutes は所要時間の入力値を非負整数へ強制変換する。
// JSONの整数値に加え、"10"のような数値文字列も受け付ける（緩い変換）。
// 小数部を持つ数値、数値でない文字列、欠損はいずれも整数エラーとする。
func CoerceMinutes(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, NewValidationError("Minutes to complete must be an integer")
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, NewValidationError("Minutes to complete must be an integer")
	}

	var m int
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return 0, NewValidationError("Minutes to complete must be an integer")
		}
		m = int(t)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, NewValidationError("Minutes to complete must be an integer")
		}
		m = i
	default:
		return 0, NewValidationError("Minutes to complete must be an integer")
	}

	if m < 0 {
		return 0, NewValidationError("Minutes to complete must be non negative")
	}
	return m, nil
}
