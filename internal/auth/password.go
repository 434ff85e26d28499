package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// pbkdf2Iterations はPBKDF2の反復回数。
	pbkdf2Iterations = 600000

	// saltBytes はソルトの長さ（バイト）。ダイジェスト内ではhexで16文字になる。
	saltBytes = 8

	// keyBytes は導出鍵の長さ（バイト）。SHA-256の出力長に合わせる。
	keyBytes = 32

	// digestMethod はダイジェスト文字列に埋め込む方式識別子。
	digestMethod = "pbkdf2:sha256"
)

// HashPassword は平文パスワードからソルト付きPBKDF2-SHA256ダイジェストを生成する。
// ソルトは呼び出しごとにランダム生成され、ダイジェスト文字列に含めて保存する。
// 形式: "pbkdf2:sha256:<iterations>$<salt>$<hex digest>"
func HashPassword(plaintext string) (string, error) {
	saltRaw := make([]byte, saltBytes)
	if _, err := rand.Read(saltRaw); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	salt := hex.EncodeToString(saltRaw)

	key := pbkdf2.Key([]byte(plaintext), []byte(salt), pbkdf2Iterations, keyBytes, sha256.New)
	return fmt.Sprintf("%s:%d$%s$%s", digestMethod, pbkdf2Iterations, salt, hex.EncodeToString(key)), nil
}

// VerifyPassword は保存済みダイジェストに対して平文パスワードを検証する。
// ダイジェストに埋め込まれたソルトと反復回数で再計算し、定数時間比較する。
// 形式不正なダイジェストは検証失敗として扱い、パニックやエラーにはしない。
func VerifyPassword(digest, plaintext string) bool {
	iterations, salt, storedKey, ok := parseDigest(digest)
	if !ok {
		return false
	}

	key := pbkdf2.Key([]byte(plaintext), []byte(salt), iterations, len(storedKey), sha256.New)
	return subtle.ConstantTimeCompare(key, storedKey) == 1
}

// parseDigest は"pbkdf2:sha256:<iter>$<salt>$<hex>"形式のダイジェストを分解する。
func parseDigest(digest string) (iterations int, salt string, key []byte, ok bool) {
	parts := strings.SplitN(digest, "$", 3)
	if len(parts) != 3 {
		return 0, "", nil, false
	}

	method := parts[0]
	if !strings.HasPrefix(method, digestMethod+":") {
		return 0, "", nil, false
	}
	iterations, err := strconv.Atoi(strings.TrimPrefix(method, digestMethod+":"))
	if err != nil || iterations <= 0 {
		return 0, "", nil, false
	}

	salt = parts[1]
	if salt == "" {
		return 0, "", nil, false
	}

	key, err = hex.DecodeString(parts[2])
	if err != nil || len(key) == 0 {
		return 0, "", nil, false
	}

	return iterations, salt, key, true
}
