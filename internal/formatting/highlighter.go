package formatting

import (
	"regexp"
	"strings"

	"github.com/fatih/color"
)

const (
	ClassKey     = "json-key"
	ClassString  = "json-string"
	ClassNumber  = "json-number"
	ClassBoolean = "json-boolean"
	ClassNull    = "json-null"
)

var (
	tokenPattern = regexp.MustCompile(`("(\\u[a-zA-Z0-9]{4}|\\[^u]|[^\\"])*"(\s*:)?|\b(true|false|null)\b|-?\d+(?:\.\d*)?(?:[eE][+-]?\d+)?)`)

	htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

	terminalColors = map[string]*color.Color{
		ClassKey:     color.New(color.FgCyan),
		ClassString:  color.New(color.FgGreen),
		ClassNumber:  color.New(color.FgYellow),
		ClassBoolean: color.New(color.FgMagenta),
		ClassNull:    color.New(color.FgRed),
	}
)

// Highlight wraps every JSON token of v in a span carrying its class. The text
// is HTML-escaped before tokens are wrapped.
func Highlight(v interface{}) (string, error) {
	text, err := Pretty(v)
	if err != nil {
		return "", err
	}

	return tokenPattern.ReplaceAllStringFunc(htmlEscaper.Replace(text), func(token string) string {
		return `<span class="` + classify(token) + `">` + token + `</span>`
	}), nil
}

// HighlightTerminal colours the same tokens for a terminal.
func HighlightTerminal(v interface{}) (string, error) {
	text, err := Pretty(v)
	if err != nil {
		return "", err
	}

	return tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		return terminalColors[classify(token)].Sprint(token)
	}), nil
}

func classify(token string) string {
	switch {
	case strings.HasPrefix(token, `"`):
		if strings.HasSuffix(token, ":") {
			return ClassKey
		}
		return ClassString
	case strings.Contains(token, "true"), strings.Contains(token, "false"):
		return ClassBoolean
	case strings.Contains(token, "null"):
		return ClassNull
	default:
		return ClassNumber
	}
}
