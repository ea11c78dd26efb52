// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"riskwizard_backend/internal/feature/auth/domain/entity"
	"riskwizard_backend/internal/feature/auth/transport/http/dto"
	"riskwizard_backend/internal/feature/auth/usecase"
	jwtmw "riskwizard_backend/internal/platform/jwt"
)

// LinkUsecase はマジックリンクの発行と確認を定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type LinkUsecase interface {
	RequestLink(ctx context.Context, email string) error
	Confirm(ctx context.Context, token string, meta entity.SessionMeta) (*entity.Credentials, error)
}

// CredentialUsecase はリフレッシュとログアウトを定義します。
type CredentialUsecase interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Revoke(ctx context.Context, refreshToken string) error
}

// UserUsecase はユーザー参照を定義します。
type UserUsecase interface {
	CurrentUser(ctx context.Context, userID string) (*entity.User, error)
	ListUsers(ctx context.Context, requesterID string) ([]entity.User, error)
}

const (
	msgLinkSent      = "A sign-in link has been sent to your email address."
	msgNotAllowed    = "This email address is not allowed to sign in."
	msgLinkFailed    = "The sign-in link could not be sent. Please try again later."
	msgLoggedOut     = "Logged out."
	errInvalidLink   = "invalid_link"
	errExpiredLink   = "expired_link"
	errServerError   = "server_error"
	errInvalidRefTok = "invalid refresh token"
)

// AuthHandler はマジックリンク認証のHTTPリクエストを処理します。
type AuthHandler struct {
	links       LinkUsecase
	creds       CredentialUsecase
	users       UserUsecase
	cookies     CookieConfig
	frontendURL string
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(links LinkUsecase, creds CredentialUsecase, users UserUsecase, cookies CookieConfig, frontendURL string) *AuthHandler {
	return &AuthHandler{
		links:       links,
		creds:       creds,
		users:       users,
		cookies:     cookies,
		frontendURL: frontendURL,
	}
}

// RequestLink はマジックリンク送信APIエンドポイントを処理します。
// - 許可リスト外のアドレスは403
// - 発行・送信の失敗は400（詳細は公開しない）
// - 既存ユーザーか新規ユーザーかに関わらず同じ200を返す
func (h *AuthHandler) RequestLink(c *gin.Context) {
	var req dto.RequestLinkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("request-link validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	if err := h.links.RequestLink(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, usecase.ErrEmailNotAllowed) {
			slog.Warn("request-link rejected by allow-list", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusForbidden, dto.DetailRes{Detail: msgNotAllowed})
			return
		}
		slog.Error("request-link failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.DetailRes{Detail: msgLinkFailed})
		return
	}

	slog.Info("magic link sent", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.DetailRes{Detail: msgLinkSent})
}

// Confirm はメール内のリンクを処理します。
// Accept: application/json の場合はトークンをJSONで返し、それ以外はCookieを設定してフロントエンドへリダイレクトします。
func (h *AuthHandler) Confirm(c *gin.Context) {
	meta := entity.SessionMeta{
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	}
	creds, err := h.links.Confirm(c.Request.Context(), c.Query("token"), meta)
	wantsJSON := strings.Contains(c.GetHeader("Accept"), "application/json")

	if err != nil {
		code, status := confirmErrorCode(err)
		if status == http.StatusInternalServerError {
			slog.Error("magic link confirmation failed", "error", err, "remote_addr", c.ClientIP())
		} else {
			slog.Warn("magic link rejected", "reason", code, "remote_addr", c.ClientIP())
		}
		if wantsJSON {
			c.JSON(status, dto.ErrorRes{Error: code})
			return
		}
		c.Redirect(http.StatusFound, h.frontendRedirect(code))
		return
	}

	if wantsJSON {
		c.JSON(http.StatusOK, dto.TokenPairRes{AccessToken: creds.AccessToken, RefreshToken: creds.RefreshToken})
		return
	}
	h.cookies.setAccess(c, creds.AccessToken)
	h.cookies.setRefresh(c, creds.RefreshToken)
	c.Redirect(http.StatusFound, h.frontendRedirect(""))
}

// Refresh はrefresh_token Cookie（なければJSONボディ）から新しいアクセストークンを発行します。
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh := refreshTokenFrom(c)
	if refresh == "" {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "missing refresh token"})
		return
	}

	access, err := h.creds.Refresh(c.Request.Context(), refresh)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRefreshToken) {
			slog.Warn("refresh rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: errInvalidRefTok})
			return
		}
		slog.Error("refresh failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: errServerError})
		return
	}

	h.cookies.setAccess(c, access)
	c.JSON(http.StatusOK, dto.AccessTokenRes{AccessToken: access})
}

// Logout はリフレッシュトークンを失効させ、両方のCookieを削除します。失効に失敗しても200を返します。
func (h *AuthHandler) Logout(c *gin.Context) {
	if refresh := refreshTokenFrom(c); refresh != "" {
		if err := h.creds.Revoke(c.Request.Context(), refresh); err != nil {
			slog.Warn("logout could not revoke session", "error", err, "remote_addr", c.ClientIP())
		}
	}
	h.cookies.clearAll(c)
	c.JSON(http.StatusOK, dto.DetailRes{Detail: msgLoggedOut})
}

// Session は現在のユーザーを返します。未認証なら {"user": null}。
// jwtmw.OptionalAuth の後ろに置く前提です。
func (h *AuthHandler) Session(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusOK, dto.SessionRes{})
		return
	}

	user, err := h.users.CurrentUser(c.Request.Context(), userID)
	if err != nil || !user.IsActive {
		if err != nil && !errors.Is(err, usecase.ErrUserNotFound) {
			slog.Error("session lookup failed", "error", err, "user_id", userID)
		}
		c.JSON(http.StatusOK, dto.SessionRes{})
		return
	}

	res := dto.NewUserRes(user)
	c.JSON(http.StatusOK, dto.SessionRes{User: &res})
}

func confirmErrorCode(err error) (string, int) {
	switch {
	case errors.Is(err, usecase.ErrInvalidToken):
		return errInvalidLink, http.StatusBadRequest
	case errors.Is(err, usecase.ErrExpiredToken):
		return errExpiredLink, http.StatusBadRequest
	default:
		return errServerError, http.StatusInternalServerError
	}
}

// frontendRedirect は FRONTEND_URL に error クエリを付けたURLを返します。
func (h *AuthHandler) frontendRedirect(code string) string {
	if code == "" {
		return h.frontendURL
	}
	u, err := url.Parse(h.frontendURL)
	if err != nil {
		return h.frontendURL
	}
	q := u.Query()
	q.Set("error", code)
	u.RawQuery = q.Encode()
	return u.String()
}

func refreshTokenFrom(c *gin.Context) string {
	if v, err := c.Cookie(RefreshTokenCookie); err == nil && v != "" {
		return v
	}
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}
