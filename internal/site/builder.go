package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/casadelapaleta/ventas-site/internal/assets"
	"github.com/casadelapaleta/ventas-site/internal/config"
	vlog "github.com/casadelapaleta/ventas-site/internal/log"
	"github.com/casadelapaleta/ventas-site/internal/progress"
	"github.com/casadelapaleta/ventas-site/internal/walker"
	"github.com/casadelapaleta/ventas-site/internal/widget"
)

// Builder assembles the published site from the content directory:
// markdown pages rendered through the page template, hand-authored HTML
// passed through, everything else copied. Every page except the menu page
// itself gets the back-button injected.
type Builder struct {
	cfg      *config.Config
	reporter progress.Reporter
	md       goldmark.Markdown
	tmpl     *template.Template
	log      zerolog.Logger
}

// Stats summarises one build.
type Stats struct {
	Pages  int // HTML pages written (rendered markdown + passed-through HTML)
	Assets int // other files copied verbatim
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title     string
	SiteTitle string
	Content   template.HTML
	NavHTML   template.HTML
	BasePath  string
}

// NewBuilder creates a Builder for the given configuration.
func NewBuilder(cfg *config.Config) (*Builder, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	return &Builder{
		cfg:      cfg,
		reporter: progress.NewReporter(),
		md:       md,
		tmpl:     tmpl,
		log:      vlog.WithComponent("site"),
	}, nil
}

// Build walks the content directory and writes the full site to the output
// directory. Returns counts of pages and copied assets.
func (b *Builder) Build() (Stats, error) {
	var stats Stats

	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: b.cfg.ContentDir,
		Include: b.cfg.Include,
		Exclude: b.cfg.Exclude,
	})
	if err != nil {
		return stats, fmt.Errorf("walking content dir: %w", err)
	}

	var mdFiles, htmlFiles, assetFiles []walker.FileInfo
	for _, f := range files {
		switch {
		case strings.HasSuffix(f.RelPath, ".md"):
			mdFiles = append(mdFiles, f)
		case strings.HasSuffix(f.RelPath, ".html"):
			htmlFiles = append(htmlFiles, f)
		default:
			assetFiles = append(assetFiles, f)
		}
	}

	if len(mdFiles) == 0 && len(htmlFiles) == 0 {
		return stats, fmt.Errorf("no pages found in %s", b.cfg.ContentDir)
	}

	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return stats, err
	}

	// Static assets shared by every page.
	if err := os.WriteFile(filepath.Join(b.cfg.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return stats, err
	}
	script, err := assets.ConfigScript(b.cfg)
	if err != nil {
		return stats, fmt.Errorf("rendering config script: %w", err)
	}
	jsDir := filepath.Join(b.cfg.OutputDir, "js")
	if err := os.MkdirAll(jsDir, 0o755); err != nil {
		return stats, err
	}
	if err := os.WriteFile(filepath.Join(jsDir, "config.js"), []byte(script), 0o644); err != nil {
		return stats, err
	}

	nav := b.buildNav(mdFiles, htmlFiles)

	b.reporter.Start(len(files))
	defer b.reporter.Finish()
	done := 0

	for _, f := range mdFiles {
		if err := b.renderPage(f, nav); err != nil {
			return stats, fmt.Errorf("rendering %s: %w", f.RelPath, err)
		}
		stats.Pages++
		done++
		b.reporter.Update(done, f.RelPath)
	}

	for _, f := range htmlFiles {
		if err := b.passThroughPage(f); err != nil {
			return stats, fmt.Errorf("copying page %s: %w", f.RelPath, err)
		}
		stats.Pages++
		done++
		b.reporter.Update(done, f.RelPath)
	}

	for _, f := range assetFiles {
		if err := b.copyAsset(f); err != nil {
			return stats, fmt.Errorf("copying %s: %w", f.RelPath, err)
		}
		stats.Assets++
		done++
		b.reporter.Update(done, f.RelPath)
	}

	if err := b.ensureMenu(); err != nil {
		return stats, fmt.Errorf("copying catalog: %w", err)
	}

	b.log.Debug().Int("pages", stats.Pages).Int("assets", stats.Assets).Msg("site built")
	return stats, nil
}

// buildNav collects header navigation entries: rendered markdown pages by
// their first heading, passed-through HTML pages by file name. The menu
// page is always titled Menú.
func (b *Builder) buildNav(mdFiles, htmlFiles []walker.FileInfo) *Nav {
	var pages []Page

	for _, f := range mdFiles {
		title := strings.TrimSuffix(filepath.Base(f.RelPath), ".md")
		if content, err := os.ReadFile(f.Path); err == nil {
			title = extractTitle(string(content), f.RelPath)
		}
		pages = append(pages, Page{RelPath: mdPathToHTML(f.RelPath), Title: title})
	}

	for _, f := range htmlFiles {
		title := strings.TrimSuffix(filepath.Base(f.RelPath), ".html")
		pages = append(pages, Page{RelPath: f.RelPath, Title: title})
	}

	for i := range pages {
		if pages[i].RelPath == "index.html" {
			pages[i].Title = "Menú"
		}
	}

	return BuildNav(pages)
}

// renderPage converts a single markdown file to an HTML page and writes it.
func (b *Builder) renderPage(f walker.FileInfo, nav *Nav) error {
	src, err := os.ReadFile(f.Path)
	if err != nil {
		return err
	}

	var htmlBuf bytes.Buffer
	if err := b.md.Convert(src, &htmlBuf); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}
	htmlContent := rewriteMDLinks(htmlBuf.String())

	htmlRel := mdPathToHTML(f.RelPath)

	// Compute base path for CSS/JS references.
	depth := strings.Count(htmlRel, "/")
	basePath := strings.Repeat("../", depth)

	data := pageData{
		Title:     extractTitle(string(src), f.RelPath),
		SiteTitle: b.siteTitle(),
		Content:   template.HTML(htmlContent),
		NavHTML:   template.HTML(nav.ToHTML(htmlRel, basePath)),
		BasePath:  basePath,
	}

	var pageBuf bytes.Buffer
	if err := b.tmpl.Execute(&pageBuf, data); err != nil {
		return err
	}

	page := pageBuf.Bytes()
	if htmlRel != "index.html" {
		page, err = widget.InjectPage(page)
		if err != nil {
			return fmt.Errorf("injecting back button: %w", err)
		}
	}

	return b.writeOut(htmlRel, page)
}

// passThroughPage copies a hand-authored HTML file into the site, injecting
// the back button unless it is the menu page.
func (b *Builder) passThroughPage(f walker.FileInfo) error {
	page, err := os.ReadFile(f.Path)
	if err != nil {
		return err
	}

	if f.RelPath != "index.html" {
		page, err = widget.InjectPage(page)
		if err != nil {
			return fmt.Errorf("injecting back button: %w", err)
		}
	}

	return b.writeOut(f.RelPath, page)
}

// copyAsset copies a non-page file into the site unchanged.
func (b *Builder) copyAsset(f walker.FileInfo) error {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return err
	}
	return b.writeOut(f.RelPath, data)
}

// ensureMenu guarantees a catalog file at the site root. If the content
// walk did not already place one there, the project-root copy is published;
// with neither, pages fall back to the remote catalog URL at runtime.
func (b *Builder) ensureMenu() error {
	name := b.cfg.MenuLocal
	if name == "" || strings.Contains(name, "/") {
		return nil
	}

	dst := filepath.Join(b.cfg.OutputDir, name)
	if _, err := os.Stat(dst); err == nil {
		return nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return renameio.WriteFile(dst, data, 0o644)
}

func (b *Builder) siteTitle() string {
	if b.cfg.Title != "" {
		return b.cfg.Title
	}
	return b.cfg.Repo
}

func (b *Builder) writeOut(relPath string, data []byte) error {
	outPath := filepath.Join(b.cfg.OutputDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}

// extractTitle pulls the first # heading from markdown content, or falls
// back to the filename.
func extractTitle(content, relPath string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return strings.TrimSuffix(filepath.Base(relPath), ".md")
}

// rewriteMDLinks changes .md links in rendered HTML to .html links so
// cross-page links keep working after the build.
func rewriteMDLinks(content string) string {
	result := strings.ReplaceAll(content, `.md"`, `.html"`)
	result = strings.ReplaceAll(result, `.md#`, `.html#`)
	return result
}
