// Package markup builds entity descriptions. Output is restricted to a small
// HTML-like vocabulary (h2, h3, p, ul, li, strong and a page-reference span)
// that display collaborators can render without further interpretation.
package markup

import (
	"fmt"
	"html"
	"strings"
)

// PageRefClass marks inline page citations
const PageRefClass = "page-ref"

// Builder accumulates a description
type Builder struct {
	sb strings.Builder
}

func New() *Builder {
	return &Builder{}
}

// Heading writes an h2 (level 2) or h3 (any other level)
func (b *Builder) Heading(level int, text string) *Builder {
	tag := "h3"
	if level <= 2 {
		tag = "h2"
	}
	fmt.Fprintf(&b.sb, "<%s>%s</%s>", tag, html.EscapeString(text), tag)
	return b
}

// Paragraph writes escaped text as a paragraph. Empty text is skipped.
func (b *Builder) Paragraph(text string) *Builder {
	if text == "" {
		return b
	}
	fmt.Fprintf(&b.sb, "<p>%s</p>", html.EscapeString(text))
	return b
}

// Field writes a labelled value
func (b *Builder) Field(label string, value any) *Builder {
	v := fmt.Sprint(value)
	if v == "" {
		return b
	}
	fmt.Fprintf(&b.sb, "<p><strong>%s:</strong> %s</p>", html.EscapeString(label), html.EscapeString(v))
	return b
}

// FieldIf writes a labelled value only when cond holds
func (b *Builder) FieldIf(cond bool, label string, value any) *Builder {
	if cond {
		b.Field(label, value)
	}
	return b
}

// List writes an unordered list; an empty list is skipped
func (b *Builder) List(items []string) *Builder {
	if len(items) == 0 {
		return b
	}
	b.sb.WriteString("<ul>")
	for _, item := range items {
		fmt.Fprintf(&b.sb, "<li>%s</li>", html.EscapeString(item))
	}
	b.sb.WriteString("</ul>")
	return b
}

// Section writes a heading followed by a list, or nothing when items is empty
func (b *Builder) Section(title string, items []string) *Builder {
	if len(items) == 0 {
		return b
	}
	return b.Heading(3, title).List(items)
}

// PageRef writes an inline citation marker; an empty citation is skipped
func (b *Builder) PageRef(citation string) *Builder {
	if citation == "" {
		return b
	}
	fmt.Fprintf(&b.sb, `<p><span class="%s">%s</span></p>`, PageRefClass, html.EscapeString(citation))
	return b
}

func (b *Builder) String() string {
	return b.sb.String()
}
