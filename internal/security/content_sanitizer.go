// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService はユーザー投稿のHTMLコンテンツ（リッチテキストの
// 記事本文とコメント）をサニタイズし、XSS攻撃からリーダーを保護する。
// bluemondayライブラリを使用した許可リストベースのポリシーで、
// 安全なタグと属性のみを通過させる。
package security

import (
	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService はHTMLコンテンツのサニタイズ機能のインターフェースを定義する。
// 記事本文・コメントの保存前に使用される。
type ContentSanitizerService interface {
	// SanitizeBody はリッチテキストの記事本文をサニタイズして安全なHTMLを返す。
	// 見出し・段落・リスト・リンク・画像など編集UIが生成するタグのみを通過させ、
	// script, iframe, styleタグおよびon*イベント属性を除去する。
	// 空文字列の入力には空文字列を返す。同一入力に対して常に同一出力を返す（冪等）。
	SanitizeBody(rawHTML string) string

	// SanitizeComment はコメント本文をサニタイズする。
	// コメントはプレーンテキスト扱いで、全タグを除去する。
	SanitizeComment(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	bodyPolicy    *bluemonday.Policy
	commentPolicy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// 記事本文のポリシー:
//   - 許可タグ: h1-h6, p, br, a, ul, ol, li, blockquote, pre, code, strong, em, img
//     （リッチテキストエディタが生成する範囲）
//   - script, iframe, style等は許可リストに含めないことで自動的に除去される
//   - on*イベント属性はbluemondayのデフォルトで許可されないため除去される
//   - imgのsrc属性: http/httpsスキームのみ許可
//   - aタグ: target="_blank" と rel="noreferrer noopener" を強制付与
//
// コメントのポリシーはStrictPolicy（全タグ除去）。
func NewContentSanitizer() *contentSanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em",
	)

	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowURLSchemes("http", "https")

	return &contentSanitizer{
		bodyPolicy:    p,
		commentPolicy: bluemonday.StrictPolicy(),
	}
}

// SanitizeBody はリッチテキストの記事本文をサニタイズして安全なHTMLを返す。
func (s *contentSanitizer) SanitizeBody(rawHTML string) string {
	return s.bodyPolicy.Sanitize(rawHTML)
}

// SanitizeComment はコメント本文から全タグを除去してプレーンテキストを返す。
func (s *contentSanitizer) SanitizeComment(raw string) string {
	return s.commentPolicy.Sanitize(raw)
}
