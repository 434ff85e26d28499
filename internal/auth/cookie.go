package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignSessionID はセッションIDにHMAC-SHA256署名を付与したCookie値を返す。
// 形式: "<session id>.<hex hmac>"。署名鍵はSESSION_SECRET。
func SignSessionID(secret, sessionID string) string {
	return sessionID + "." + computeMAC(secret, sessionID)
}

// ParseSignedSessionID は署名付きCookie値を検証してセッションIDを取り出す。
// 署名が欠落・改ざんされている場合はok=falseを返し、呼び出し側は
// 匿名リクエストとして扱う。
func ParseSignedSessionID(secret, value string) (sessionID string, ok bool) {
	i := strings.LastIndex(value, ".")
	if i <= 0 || i == len(value)-1 {
		return "", false
	}

	sessionID = value[:i]
	mac := value[i+1:]

	if !hmac.Equal([]byte(mac), []byte(computeMAC(secret, sessionID))) {
		return "", false
	}
	return sessionID, true
}

func computeMAC(secret, sessionID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(sessionID))
	return hex.EncodeToString(h.Sum(nil))
}
