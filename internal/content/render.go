// internal/content/render.go
package content

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/adrg/frontmatter"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pelletier/go-toml/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	"gopkg.in/yaml.v3"
)

// frontMatterFormats accepts YAML ("---") and TOML ("+++") front matter.
var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// splitFrontMatter decodes the front matter of raw into a map and returns the
// markdown body. Files without front matter yield an empty map and the whole
// input as body.
func splitFrontMatter(raw []byte) (map[string]any, []byte, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta, frontMatterFormats...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse front matter: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta, body, nil
}

// Renderer turns a markdown body into HTML.
type Renderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
	unsafe    bool
}

// NewRenderer builds a renderer whose inter-post links point below basePath.
// Unless unsafe is set, output is passed through a UGC sanitizer policy.
func NewRenderer(basePath string, unsafe bool) *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote, extension.Typographer),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
				parser.WithASTTransformers(
					util.Prioritized(newPostLinkTransformer(basePath), 100),
				),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
		sanitizer: bluemonday.UGCPolicy(),
		unsafe:    unsafe,
	}
}

func (r *Renderer) Render(body []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown with goldmark: %w", err)
	}
	if r.unsafe {
		return template.HTML(buf.String()), nil
	}
	return template.HTML(r.sanitizer.SanitizeBytes(buf.Bytes())), nil
}
