// internal/telegram/format.go
package telegram

import "strings"

// Characters Telegram requires escaping in MarkdownV2 text.
var mdEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

// EscapeMarkdown escapes all MarkdownV2 reserved characters in s.
func EscapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}

var platformLabels = map[string]string{
	"twitter":   "Twitter",
	"linkedin":  "LinkedIn",
	"instagram": "Instagram",
	"facebook":  "Facebook",
}

// PlatformLabel returns the display name for a platform key.
func PlatformLabel(platform string) string {
	if label, ok := platformLabels[platform]; ok {
		return label
	}
	return platform
}

// Format renders a post into a MarkdownV2 message. Platform and brand are
// controlled values and appear in the bold header; only the user-authored
// body gets escaped.
func Format(platform, brand, body string) string {
	var b strings.Builder
	b.WriteString("*")
	b.WriteString(PlatformLabel(platform))
	if brand != "" {
		b.WriteString(" · ")
		b.WriteString(brand)
	}
	b.WriteString("*\n\n")
	b.WriteString(EscapeMarkdown(body))
	return b.String()
}
