package previewservice

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/xerrors"
)

var (
	blankLinesPattern = regexp.MustCompile(`\n{3,}`)
	spacesPattern     = regexp.MustCompile(`[ \t]+`)
)

// PlainText flattens a preview fragment for a terminal. Headings, list items
// and links keep a light markdown shape.
func PlainText(fragment string) (string, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return "", xerrors.Errorf("failed to parse preview: %w", err)
	}

	var sb strings.Builder
	writeText(doc, &sb)

	lines := strings.Split(spacesPattern.ReplaceAllString(sb.String(), " "), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text := blankLinesPattern.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")

	return strings.TrimSpace(text), nil
}

func writeText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(strings.ReplaceAll(n.Data, "\n", " "))
	case html.ElementNode:
		switch n.Data {
		case "script", "style":
			return
		case "h1", "h2":
			sb.WriteString("\n\n# ")
		case "h3", "h4", "h5", "h6":
			sb.WriteString("\n\n## ")
		case "p", "div", "section", "table", "ul", "ol", "pre":
			sb.WriteString("\n\n")
		case "tr", "br":
			sb.WriteString("\n")
		case "td", "th":
			sb.WriteString(" | ")
		case "li":
			sb.WriteString("\n- ")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(c, sb)
	}

	if n.Type == html.ElementNode && n.Data == "a" {
		if href := attr(n, "href"); href != "" {
			sb.WriteString(" (" + href + ")")
		}
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
