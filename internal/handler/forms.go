package handler

import (
	"regexp"
	"strings"
)

// emailRegexp はフォーム入力のメールアドレス形式を検証する。
var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// formErrors はフィールド名からエラーメッセージへのマップ。
// 空のマップは検証成功を意味する。
type formErrors map[string]string

// HasErrors は検証エラーが1つ以上あるかどうかを返す。
func (e formErrors) HasErrors() bool {
	return len(e) > 0
}

// requireFields は指定フィールドがすべて非空であることを検証し、
// 欠けているフィールドのエラーを返す。
func requireFields(values map[string]string) formErrors {
	errs := formErrors{}
	for field, value := range values {
		if strings.TrimSpace(value) == "" {
			errs[field] = "This field is required."
		}
	}
	return errs
}

// validateEmail はメールアドレスの形式を検証し、不正な場合はerrsに追加する。
func validateEmail(errs formErrors, field, email string) formErrors {
	if _, exists := errs[field]; exists {
		return errs
	}
	if !emailRegexp.MatchString(email) {
		errs[field] = "Invalid email address."
	}
	return errs
}
