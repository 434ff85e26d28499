// Package avatar はメールアドレスからのアバターURLの導出を提供する。
package avatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// DefaultSize はGravatar URLのデフォルトの画像サイズ（ピクセル）。
const DefaultSize = 100

// defaultStyle は該当アバターがない場合に使われる生成スタイル。
const defaultStyle = "retro"

// Gravatar はメールアドレスから決定的なGravatar URLを構築する。
// メールアドレスを小文字化してMD5ハッシュ（Gravatarの規約）を取り、
// スタイルとサイズをクエリに付与したURLを返す。
// 純粋関数であり、どんな文字列に対してもエラーなくURLを返す。
func Gravatar(email string, size int) string {
	sum := md5.Sum([]byte(strings.ToLower(email)))
	digest := hex.EncodeToString(sum[:])
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&d=%s", digest, size, defaultStyle)
}
