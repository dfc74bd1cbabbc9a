// Package markdown renders notes as Markdown files with YAML frontmatter.
package markdown

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mvrcunha/mx2md/pkg/core"
)

// Renderer implements core.Renderer.
type Renderer struct {
	// Frontmatter controls whether a YAML frontmatter block is emitted
	// ahead of the body.
	Frontmatter bool
}

// NewRenderer returns a Renderer with frontmatter enabled.
func NewRenderer() *Renderer {
	return &Renderer{Frontmatter: true}
}

// frontmatter is kept as a struct (not a map) so key order is stable.
type frontmatter struct {
	Title    string    `yaml:"title"`
	Category string    `yaml:"category,omitempty"`
	Created  time.Time `yaml:"created"`
	Modified time.Time `yaml:"modified"`
	Pinned   bool      `yaml:"pinned,omitempty"`
	FontSize string    `yaml:"fontSize,omitempty"`
}

// Render produces the full Markdown document for a note.
func (r *Renderer) Render(n core.Note) ([]byte, error) {
	var buf bytes.Buffer

	if r.Frontmatter {
		fm := frontmatter{
			Title:    n.Title,
			Category: n.Category,
			Created:  n.CreatedAt.UTC(),
			Modified: n.ModifiedAt.UTC(),
			Pinned:   n.Pinned,
		}
		if n.FontSize != "" && n.FontSize != core.FontNormal {
			fm.FontSize = string(n.FontSize)
		}

		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(fm); err != nil {
			return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		buf.WriteString("---\n")
	}

	buf.WriteString(body(n))
	writeAttachmentsBlock(&buf, n.Attachments)

	return buf.Bytes(), nil
}

// body renders the note text. Checklist notes become task-list lines; the
// checked-to-bottom flag reorders them the way the app displays them.
func body(n core.Note) string {
	if !n.IsList() {
		return n.Body
	}

	items := n.Items
	if n.ChecksToBottom {
		ordered := make([]core.ListItem, 0, len(items))
		for _, it := range items {
			if !it.Checked {
				ordered = append(ordered, it)
			}
		}
		for _, it := range items {
			if it.Checked {
				ordered = append(ordered, it)
			}
		}
		items = ordered
	}

	var sb bytes.Buffer
	for _, it := range items {
		if it.Checked {
			sb.WriteString("- [x] ")
		} else {
			sb.WriteString("- [ ] ")
		}
		sb.WriteString(it.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// writeAttachmentsBlock appends ![[...]] embeds so rendered notes keep
// linking to their extracted attachment files.
func writeAttachmentsBlock(buf *bytes.Buffer, attachments []core.Attachment) {
	if len(attachments) == 0 {
		return
	}
	fmt.Fprintf(buf, "\n\nAttachments (%d):", len(attachments))
	for _, a := range attachments {
		fmt.Fprintf(buf, "\n![[%s]]\n", a.Name)
	}
}
