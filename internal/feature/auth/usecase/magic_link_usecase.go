package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"riskwizard_backend/internal/feature/auth/domain/entity"
)

// MagicLinkConfig は magic link フローの設定値です。
type MagicLinkConfig struct {
	// ExpiryWindow はトークンの有効期間です。
	ExpiryWindow time.Duration
	// ConfirmURL は確認エンドポイントのベースURLです（例: https://api.example.com/api/auth/confirm）。
	ConfirmURL string
	// SiteName はメール本文に表示するサイト名です。
	SiteName string
	// AllowList はログインを許可するアドレスの集合です。
	AllowList AllowList
}

// magicLinkUsecase はリンク発行（Link Issuer）とリンク確認（Link Confirmer）を実装します。
type magicLinkUsecase struct {
	users       UserRepository
	links       MagicLinkRepository
	mailer      Mailer
	credentials CredentialIssuer
	cfg         MagicLinkConfig

	now      func() time.Time
	newToken func() string
}

// NewMagicLinkUsecase はmagicLinkUsecaseの新しいインスタンスを生成します。
func NewMagicLinkUsecase(users UserRepository, links MagicLinkRepository, mailer Mailer, credentials CredentialIssuer, cfg MagicLinkConfig) *magicLinkUsecase {
	return &magicLinkUsecase{
		users:       users,
		links:       links,
		mailer:      mailer,
		credentials: credentials,
		cfg:         cfg,
		now:         time.Now,
		newToken:    uuid.NewString,
	}
}

// RequestLink はメールアドレス宛てにログイン用の magic link を発行・送信します。
// 許可リスト外のアドレスは書き込みを行う前にErrEmailNotAllowedで拒否します。
// それ以外の失敗はすべてErrMagicLinkCreationでラップされます。
// メール送信に失敗しても発行済みトークンは削除しません。
func (u *magicLinkUsecase) RequestLink(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if !u.cfg.AllowList.Allows(email) {
		return ErrEmailNotAllowed
	}

	user, err := u.getOrCreateUser(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMagicLinkCreation, err)
	}

	link := &entity.MagicLinkToken{
		Token:     u.newToken(),
		UserID:    user.ID,
		CreatedAt: u.now().UTC(),
		Used:      false,
	}
	if err := u.links.Create(ctx, link); err != nil {
		return fmt.Errorf("%w: store token: %w", ErrMagicLinkCreation, err)
	}

	confirmURL, err := u.buildConfirmURL(link.Token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMagicLinkCreation, err)
	}

	subject, body, err := renderMagicLinkMail(magicLinkMailData{
		SiteName:      u.cfg.SiteName,
		URL:           confirmURL,
		ExpiryMinutes: int(u.cfg.ExpiryWindow / time.Minute),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMagicLinkCreation, err)
	}

	if err := u.mailer.Send(ctx, MailMessage{To: user.Email, Subject: subject, Body: body}); err != nil {
		return fmt.Errorf("%w: %w: %w", ErrMagicLinkCreation, ErrMailDelivery, err)
	}

	slog.Info("magic link issued", "user_id", user.ID, "expires_at", link.ExpiresAt(u.cfg.ExpiryWindow))
	return nil
}

// Confirm はトークンを検証・消費し、セッション資格情報を発行します。
// 検証と使用済みへの更新はトークンストアの単一の条件付き更新で行うため、
// 同じトークンで同時に呼び出しても成功するのは1回だけです。
// 資格情報の発行に失敗した場合もトークンは消費済みのままです。
func (u *magicLinkUsecase) Confirm(ctx context.Context, token string, meta entity.SessionMeta) (*entity.Credentials, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	now := u.now().UTC()
	link, err := u.links.Consume(ctx, token, now.Add(-u.cfg.ExpiryWindow))
	if err != nil {
		if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to consume magic link: %w", err)
	}

	user, err := u.users.FindByID(ctx, link.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: load user: %w", ErrCredentialIssuance, err)
	}

	creds, err := u.credentials.IssueFor(ctx, user, meta)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCredentialIssuance, err)
	}

	slog.Info("magic link confirmed", "user_id", user.ID)
	return creds, nil
}

// getOrCreateUser はメールアドレスでユーザーを検索し、存在しなければ作成します。
// 同時リクエストで作成が競合した場合は再検索します。
func (u *magicLinkUsecase) getOrCreateUser(ctx context.Context, email string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	user = &entity.User{
		ID:       uuid.NewString(),
		Email:    email,
		IsActive: true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return u.users.FindByEmail(ctx, email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	slog.Info("user created from magic link request", "user_id", user.ID)
	return user, nil
}

// buildConfirmURL は確認エンドポイントのURLにトークンをクエリパラメータとして付与します。
func (u *magicLinkUsecase) buildConfirmURL(token string) (string, error) {
	base, err := url.Parse(u.cfg.ConfirmURL)
	if err != nil {
		return "", fmt.Errorf("parse confirm url: %w", err)
	}
	q := base.Query()
	q.Set("token", token)
	base.RawQuery = q.Encode()
	return base.String(), nil
}
