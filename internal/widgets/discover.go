package widgets

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"
)

// DiscoverImages returns the absolute http(s) <img src> URLs embedded as
// inline HTML in a markdown document, in document order and without
// duplicates. Each widget is named after the image's alt text, falling back
// to its host and path.
func DiscoverImages(doc string) []Widget {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil
	}

	var found []Widget
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "img" {
			src := getAttr(n, "src")
			if isRemote(src) && !seen[src] {
				seen[src] = true
				found = append(found, Widget{Name: widgetName(src, getAttr(n, "alt")), URL: src})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// Merge appends the widgets of extra whose URL is not already in base.
func Merge(base []Widget, extra ...[]Widget) []Widget {
	out := append([]Widget(nil), base...)
	seen := make(map[string]bool, len(base))
	for _, w := range base {
		seen[w.URL] = true
	}
	for _, set := range extra {
		for _, w := range set {
			if !seen[w.URL] {
				seen[w.URL] = true
				out = append(out, w)
			}
		}
	}
	return out
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func isRemote(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func widgetName(src, alt string) string {
	if alt = strings.TrimSpace(alt); alt != "" {
		return alt
	}
	u, _ := url.Parse(src)
	p := strings.Trim(path.Clean(u.Path), "/.")
	if p == "" {
		return u.Host
	}
	return u.Host + "/" + p
}
