package export

import (
	"fmt"
	"html"
	"strings"
)

// buildHTML wraps a plain-text document in a minimal printable page. The
// pre-wrap body keeps the text's own line breaks while still wrapping long
// lines on the printed page.
func buildHTML(title, text string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString(`<style>
body {
  font-family: "Courier New", Courier, monospace;
  font-size: 11pt;
  line-height: 1.4;
  margin: 1in;
  white-space: pre-wrap;
  word-wrap: break-word;
}
</style>
`)
	b.WriteString("</head>\n<body>")
	b.WriteString(html.EscapeString(text))
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
