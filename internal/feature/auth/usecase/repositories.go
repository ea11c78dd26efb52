package usecase

import (
	"context"
	"time"

	"riskwizard_backend/internal/feature/auth/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// ListAll は登録日時の新しい順に全ユーザーを返します。
	ListAll(ctx context.Context) ([]entity.User, error)
}

// MagicLinkRepository はマジックリンクトークンの永続化層（トークンストア）を抽象化します。
type MagicLinkRepository interface {
	// Create は新しいトークンを保存します。
	Create(ctx context.Context, token *entity.MagicLinkToken) error

	// FindByToken はトークン値でトークンを取得します。
	// 存在しない場合、ErrMagicLinkNotFoundを返します。
	FindByToken(ctx context.Context, token string) (*entity.MagicLinkToken, error)

	// MarkUsed は未使用のトークンを使用済みにします。
	// 既に使用済みの場合はErrMagicLinkAlreadyUsedを返します。
	MarkUsed(ctx context.Context, token string) error

	// Consume は「有効性の確認」と「使用済みへの更新」を単一の条件付き更新で行います。
	// issuedAfterより後に発行され、かつ未使用のトークンのみ成功します。
	// 存在しない場合はErrInvalidToken、期限切れまたは使用済みの場合はErrExpiredTokenを返します。
	Consume(ctx context.Context, token string, issuedAfter time.Time) (*entity.MagicLinkToken, error)

	// DeleteExpired はbefore以前に発行されたトークンを削除し、削除件数を返します。
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// MailMessage はメール送信コラボレーターに渡すメッセージです。
type MailMessage struct {
	To      string
	Subject string
	Body    string
}

// Mailer はメール送信のインターフェースです。
type Mailer interface {
	// Send はメッセージを送信します。
	Send(ctx context.Context, msg MailMessage) error
}

// TokenSigner はJWTの署名・検証のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenSigner interface {
	// SignAccess は短命のアクセストークンを生成します。
	SignAccess(userID, email string) (string, error)
	// SignRefresh はjtiを埋め込んだリフレッシュトークンを生成し、その有効期限を返します。
	SignRefresh(userID, email, jti string) (string, time.Time, error)
	// ParseAccess はアクセストークンを検証してクレームを返します。
	ParseAccess(token string) (*entity.TokenClaims, error)
	// ParseRefresh はリフレッシュトークンを検証してクレームを返します。
	ParseRefresh(token string) (*entity.TokenClaims, error)
}

// CredentialIssuer はユーザーのセッション資格情報を発行します。
type CredentialIssuer interface {
	IssueFor(ctx context.Context, user *entity.User, meta entity.SessionMeta) (*entity.Credentials, error)
}
