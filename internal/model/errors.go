// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// MessageはそのままクライアントのerrorsリストJSONに載るため、
// フロントエンドが表示する文言として固定する。
type APIError struct {
	Code    string // エラーコード
	Message string // クライアントに返すエラーメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation         = "VALIDATION_FAILED"
	ErrCodeUsernameTaken      = "USERNAME_TAKEN"
	ErrCodeNotAuthorized      = "NOT_AUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
)

// NewValidationError はフィールドバリデーション違反のエラーを生成する。
// messageには違反したルールを説明する固定文言を渡す。
func NewValidationError(message string) *APIError {
	return &APIError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// NewUsernameTakenError はユーザー名の一意性違反のエラーを生成する。
func NewUsernameTakenError() *APIError {
	return &APIError{
		Code:    ErrCodeUsernameTaken,
		Message: "Username must be unique",
	}
}

// NewNotAuthorizedError はセッション未確立・無効時のエラーを生成する。
func NewNotAuthorizedError() *APIError {
	return &APIError{
		Code:    ErrCodeNotAuthorized,
		Message: "Not authorized",
	}
}

// NewInvalidCredentialsError は認証失敗時のエラーを生成する。
// ユーザー名誤りとパスワード誤りで文言を変えない（ユーザー名列挙の防止）。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:    ErrCodeInvalidCredentials,
		Message: "Invalid username or password",
	}
}
