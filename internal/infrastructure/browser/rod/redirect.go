package rod

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// ExtractRedirectTarget pulls the destination out of a search-engine redirect
// page. These pages carry anchors shaped like /url?q=https://store.example/...;
// the q query parameter is the real target. Returns "" when the page holds no
// such anchor.
func ExtractRedirectTarget(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	href := findRedirectHref(doc)
	if href == "" {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("q")
}

func findRedirectHref(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "a" {
		for _, attr := range n.Attr {
			if attr.Key == "href" && strings.Contains(attr.Val, "url?q=") {
				return attr.Val
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if href := findRedirectHref(c); href != "" {
			return href
		}
	}
	return ""
}
