package site

import (
	"html"
	"sort"
	"strings"
)

// Page is one entry in the site navigation.
type Page struct {
	RelPath string // Output path relative to the site root, e.g. "precios.html".
	Title   string // Display title, from the first markdown heading.
}

// Nav holds the ordered page list rendered into every page header.
type Nav struct {
	Pages []Page
}

// BuildNav sorts pages for the header navigation: the menu page first,
// the rest alphabetically by title.
func BuildNav(pages []Page) *Nav {
	sorted := make([]Page, len(pages))
	copy(sorted, pages)

	sort.SliceStable(sorted, func(i, j int) bool {
		if (sorted[i].RelPath == "index.html") != (sorted[j].RelPath == "index.html") {
			return sorted[i].RelPath == "index.html"
		}
		return sorted[i].Title < sorted[j].Title
	})

	return &Nav{Pages: sorted}
}

// ToHTML renders the navigation links, marking the active page. basePath
// prefixes hrefs so nested pages resolve links relative to the site root.
func (n *Nav) ToHTML(activePath, basePath string) string {
	var sb strings.Builder
	for _, p := range n.Pages {
		sb.WriteString(`<a href="`)
		sb.WriteString(basePath)
		sb.WriteString(html.EscapeString(p.RelPath))
		sb.WriteString(`"`)
		if p.RelPath == activePath {
			sb.WriteString(` class="active"`)
		}
		sb.WriteString(`>`)
		sb.WriteString(html.EscapeString(p.Title))
		sb.WriteString(`</a>`)
		sb.WriteString("\n")
	}
	return sb.String()
}

// mdPathToHTML converts a markdown relative path to its output HTML path.
func mdPathToHTML(p string) string {
	if strings.HasSuffix(p, ".md") {
		return strings.TrimSuffix(p, ".md") + ".html"
	}
	return p
}
