// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterReq は/auth/registerエンドポイントのリクエストボディを表します。
// 必須チェックはユースケース側で行うため、バインディングタグは付けません。
type RegisterReq struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"s3cret-pass"`
}

// LoginReq は/auth/loginエンドポイントのリクエストボディを表します。
type LoginReq struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"s3cret-pass"`
}

// TokenRes はログイン成功時のレスポンスです。
type TokenRes struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
