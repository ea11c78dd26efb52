package usecase

import "strings"

// AllowList は magic link でのログインを許可するメールアドレスの集合です。
// 空の AllowList はすべてのアドレスを許可します。
type AllowList struct {
	emails map[string]struct{}
}

// NewAllowList は設定値から AllowList を生成します。空文字列は無視されます。
func NewAllowList(emails []string) AllowList {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = normalizeEmail(e)
		if e == "" {
			continue
		}
		set[e] = struct{}{}
	}
	return AllowList{emails: set}
}

// Allows はアドレスがログインを許可されているかを返します。
func (a AllowList) Allows(email string) bool {
	if len(a.emails) == 0 {
		return true
	}
	_, ok := a.emails[normalizeEmail(email)]
	return ok
}

// normalizeEmail は前後の空白を除去し小文字化します。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
