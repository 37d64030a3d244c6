package site

// pageTemplate is the Go html/template for each rendered markdown page.
// js/config.js is loaded in <head> so the VENTAS_CONFIG global exists
// before any page script runs.
const pageTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} — {{.SiteTitle}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
  <script src="{{.BasePath}}js/config.js"></script>
</head>
<body>
  <header class="site-header">
    <a href="{{.BasePath}}index.html" class="site-title">{{.SiteTitle}}</a>
    <nav class="site-nav">
      {{.NavHTML}}
    </nav>
  </header>
  <main class="content">
    <article class="page-content">
      {{.Content}}
    </article>
  </main>
</body>
</html>`

// cssContent is the stylesheet written next to the generated pages.
const cssContent = `/* ============ Variables ============ */
:root {
  --bg: #fffdfa;
  --bg-header: #ffffff;
  --text: #3d2c29;
  --text-muted: #8c7a74;
  --border: #f0e4da;
  --accent: #e05c7a;
  --accent-hover: #c94866;
  --content-max-width: 820px;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
}

/* ============ Reset & Base ============ */
*, *::before, *::after {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}

html {
  font-size: 16px;
  scroll-behavior: smooth;
}

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
}

/* ============ Header ============ */
.site-header {
  position: sticky;
  top: 0;
  display: flex;
  align-items: center;
  gap: 24px;
  padding: 12px 24px;
  background: var(--bg-header);
  border-bottom: 1px solid var(--border);
  box-shadow: var(--shadow);
  z-index: 100;
}

.site-title {
  font-size: 1.15rem;
  font-weight: 700;
  color: var(--accent);
  text-decoration: none;
  white-space: nowrap;
}

.site-nav {
  display: flex;
  gap: 16px;
  overflow-x: auto;
}

.site-nav a {
  color: var(--text-muted);
  text-decoration: none;
  font-size: 0.95rem;
  white-space: nowrap;
}

.site-nav a:hover {
  color: var(--accent-hover);
}

.site-nav a.active {
  color: var(--accent);
  font-weight: 600;
}

/* ============ Content ============ */
.content {
  max-width: var(--content-max-width);
  margin: 0 auto;
  padding: 32px 24px 96px;
}

.page-content h1, .page-content h2, .page-content h3 {
  margin: 1.4em 0 0.5em;
  line-height: 1.3;
}

.page-content h1:first-child {
  margin-top: 0;
}

.page-content p, .page-content ul, .page-content ol {
  margin-bottom: 1em;
}

.page-content ul, .page-content ol {
  padding-left: 1.5em;
}

.page-content a {
  color: var(--accent);
}

.page-content img {
  max-width: 100%;
  border-radius: 8px;
}

.page-content table {
  border-collapse: collapse;
  width: 100%;
  margin-bottom: 1em;
}

.page-content th, .page-content td {
  border: 1px solid var(--border);
  padding: 8px 12px;
  text-align: left;
}

.page-content th {
  background: var(--bg-header);
}

.page-content pre {
  background: var(--bg-header);
  border: 1px solid var(--border);
  border-radius: 8px;
  padding: 12px 16px;
  overflow-x: auto;
  margin-bottom: 1em;
}

.page-content code {
  font-family: "SF Mono", SFMono-Regular, Consolas, "Liberation Mono", Menlo, monospace;
  font-size: 0.9em;
}

@media (max-width: 640px) {
  .site-header {
    flex-wrap: wrap;
    gap: 8px;
  }

  .content {
    padding: 24px 16px 96px;
  }
}
`
