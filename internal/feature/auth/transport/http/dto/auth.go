// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RequestLinkReq は/api/auth/request-linkのリクエストボディです。
type RequestLinkReq struct {
	Email string `json:"email" binding:"required,email,max=254"`
}

// RefreshReq represents the optional body for token refresh.
// The refresh_token cookie takes precedence.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenPairRes is returned by a JSON confirmation.
type TokenPairRes struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AccessTokenRes represents the response for a successful token refresh.
type AccessTokenRes struct {
	AccessToken string `json:"access_token"`
}

// DetailRes はユーザー向けメッセージです。
type DetailRes struct {
	Detail string `json:"detail"`
}

// ErrorRes は機械判定用のエラーコードです。
type ErrorRes struct {
	Error string `json:"error"`
}
