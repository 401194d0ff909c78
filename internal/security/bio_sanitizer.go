// Package security はアプリケーションのセキュリティ機能を提供する。
//
// BioSanitizerService はユーザーが入力した自己紹介文からHTMLを除去し、
// 保存データ経由のXSSを防止する。bluemondayのStrictPolicyを使用し、
// タグを一切通過させないプレーンテキスト化を行う。
package security

import "github.com/microcosm-cc/bluemonday"

// BioSanitizerService は自己紹介文サニタイズ機能のインターフェースを定義する。
// サインアップ時の保存前に使用される。
type BioSanitizerService interface {
	// Sanitize は入力からすべてのHTMLタグを除去したテキストを返す。
	// タグを含まない入力はそのまま返る。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// bioSanitizer はBioSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type bioSanitizer struct {
	policy *bluemonday.Policy
}

// NewBioSanitizer はBioSanitizerServiceの新しいインスタンスを生成する。
// 自己紹介文は書式を持たないプレーンテキストとして扱うため、
// 許可リストが空のStrictPolicyを使用する。
func NewBioSanitizer() *bioSanitizer {
	return &bioSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からすべてのHTMLタグを除去したテキストを返す。
func (s *bioSanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}
