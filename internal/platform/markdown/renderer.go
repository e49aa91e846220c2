// Package markdown renders job descriptions to sanitized HTML.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const sectionHeadingLevel = 3

// Renderer converts description markdown into HTML safe to embed in a page.
// A paragraph made only of bold text is promoted to a section heading.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer builds a Renderer. It is safe for concurrent use.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(sectionHeadings{}, 100)),
		),
	)
	return &Renderer{md: md, policy: newDescriptionPolicy()}
}

// Render converts src to sanitized HTML. Blank input renders to the empty string.
func (r *Renderer) Render(src string) (template.HTML, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown: render: %w", err)
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

func newDescriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

type sectionHeadings struct{}

func (sectionHeadings) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	var targets []*ast.Paragraph
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		para, ok := n.(*ast.Paragraph)
		if !ok {
			return ast.WalkContinue, nil
		}
		if _, top := para.Parent().(*ast.Document); !top || para.ChildCount() != 1 {
			return ast.WalkSkipChildren, nil
		}
		if em, ok := para.FirstChild().(*ast.Emphasis); ok && em.Level == 2 {
			targets = append(targets, para)
		}
		return ast.WalkSkipChildren, nil
	})

	for _, para := range targets {
		em := para.FirstChild()
		heading := ast.NewHeading(sectionHeadingLevel)
		for child := em.FirstChild(); child != nil; {
			next := child.NextSibling()
			heading.AppendChild(heading, child)
			child = next
		}
		doc.ReplaceChild(doc, para, heading)
	}
}
