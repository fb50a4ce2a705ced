// internal/content/goldmark_extensions.go
package content

import (
	"bytes"
	"path"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// postLinkTransformer rewrites links between posts, such as
// "[next](other-post.md)", to the post's route under basePath.
type postLinkTransformer struct {
	basePath string
}

func newPostLinkTransformer(basePath string) parser.ASTTransformer {
	return &postLinkTransformer{basePath: basePath}
}

func (t *postLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		if dest, ok := t.rewrite(link.Destination); ok {
			link.Destination = dest
		}
		return ast.WalkContinue, nil
	})
}

// rewrite maps a relative "x.md" or "./x.md#frag" destination to basePath/x.
// Absolute URLs and paths are left alone.
func (t *postLinkTransformer) rewrite(dest []byte) ([]byte, bool) {
	if bytes.Contains(dest, []byte("://")) || bytes.HasPrefix(dest, []byte("/")) {
		return nil, false
	}
	target, frag, _ := bytes.Cut(dest, []byte("#"))
	if !bytes.HasSuffix(target, []byte(".md")) {
		return nil, false
	}
	slug := path.Base(string(bytes.TrimSuffix(target, []byte(".md"))))
	out := []byte(path.Join(t.basePath, slug))
	if len(frag) > 0 {
		out = append(out, '#')
		out = append(out, frag...)
	}
	return out, true
}
