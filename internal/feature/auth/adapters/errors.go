package adapters

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL unique_violation
const pgUniqueViolation = "23505"

// isDuplicateKey はドライバーを問わずユニーク制約違反を判定します。
// gorm.Config.TranslateError が有効なら gorm.ErrDuplicatedKey に変換済みです。
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	// sqlite (TranslateError 無効時)
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
