package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"qqfit/domain/core"
	"qqfit/internal"
	"qqfit/ports"
)

// Sink writes run reports as markdown files, with an optional HTML rendering
// of the same document beside them.
type Sink struct {
	dir    string
	html   bool
	logger *internal.Logger
}

// NewSink creates the report directory if needed
func NewSink(dir string, renderHTML bool) (*Sink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, core.ConfigurationErrorf("failed to create report directory %s: %v", dir, err)
	}
	return &Sink{dir: dir, html: renderHTML, logger: internal.NewDefaultLogger()}, nil
}

// WriteRunReport writes report_<runID>.md (and .html when enabled) and
// returns the markdown path.
func (s *Sink) WriteRunReport(ctx context.Context, report ports.RunReport) (string, error) {
	doc := Markdown(report)

	mdPath := filepath.Join(s.dir, fmt.Sprintf("report_%s.md", report.RunID))
	if err := os.WriteFile(mdPath, []byte(doc), 0644); err != nil {
		return "", core.ConfigurationErrorf("failed to write report %s: %v", mdPath, err)
	}
	s.logger.Info("Wrote run report %s", mdPath)

	if s.html {
		htmlPath := filepath.Join(s.dir, fmt.Sprintf("report_%s.html", report.RunID))
		if err := os.WriteFile(htmlPath, renderHTML(doc), 0644); err != nil {
			return "", core.ConfigurationErrorf("failed to write report %s: %v", htmlPath, err)
		}
		s.logger.Info("Wrote run report %s", htmlPath)
	}

	return mdPath, nil
}

// renderHTML converts the markdown document into a standalone HTML page
func renderHTML(doc string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.Render(p.Parse([]byte(doc)), renderer)

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Q-Q Fit Report</title>
<style>
body { font-family: sans-serif; max-width: 860px; margin: 2em auto; padding: 0 1em; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: left; }
code { background: #f4f4f4; padding: 1px 4px; }
</style>
</head>
<body>
%s</body>
</html>
`, body)
	return []byte(page)
}
