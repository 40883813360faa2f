package book

import (
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Namespace-agnostic: FictionBook documents declare a default namespace.
const (
	fb2BodyQuery      = "//*[local-name()='body']"
	fb2ParagraphQuery = ".//*[local-name()='p']"
)

// extractFB2 returns one segment per <body>, built from the direct text of
// its paragraphs. Text nested in inline markup (<emphasis>, <strong>, links)
// is not part of a paragraph's direct text and is skipped.
func extractFB2(path string) (Content, error) {
	f, err := os.Open(path)
	if err != nil {
		return Content{}, err
	}
	defer f.Close()

	doc, err := xmlquery.Parse(f)
	if err != nil {
		return Content{}, err
	}

	bodies, err := xmlquery.QueryAll(doc, fb2BodyQuery)
	if err != nil {
		return Content{}, err
	}

	var chapters []string
	for _, body := range bodies {
		paragraphs, err := xmlquery.QueryAll(body, fb2ParagraphQuery)
		if err != nil {
			return Content{}, err
		}

		var parts []string
		for _, p := range paragraphs {
			if text := strings.TrimSpace(directText(p)); text != "" {
				parts = append(parts, text)
			}
		}

		if len(parts) > 0 {
			chapters = append(chapters, strings.Join(parts, " "))
		}
	}

	return SegmentedContent(chapters), nil
}

// directText returns the text preceding the first child element or comment.
func directText(n *xmlquery.Node) string {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.TextNode && child.Type != xmlquery.CharDataNode {
			break
		}
		sb.WriteString(child.Data)
	}
	return sb.String()
}
