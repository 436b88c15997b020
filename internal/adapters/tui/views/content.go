package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"folio/internal/adapters/tui/styles"
	"folio/internal/application"
)

// Markdown renders article bodies and folder intros with glamour. The
// renderer is rebuilt when the wrap width changes.
type Markdown struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
	log      logrus.FieldLogger
}

// NewMarkdown creates a renderer for a glamour style: "auto", "dark",
// "light" or "notty"
func NewMarkdown(style string, log logrus.FieldLogger) *Markdown {
	return &Markdown{style: style, log: log}
}

// Render returns text as styled terminal output wrapped at width. Text
// that fails to render is returned as is.
func (m *Markdown) Render(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if m.renderer == nil || m.width != width {
		m.build(width)
	}
	if m.renderer == nil {
		return text
	}

	out, err := m.renderer.Render(text)
	if err != nil {
		m.log.WithError(err).Warn("failed to render markdown")
		return text
	}
	return strings.Trim(out, "\n")
}

func (m *Markdown) build(width int) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(width, 10))}
	if m.style == "auto" || m.style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(m.style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		m.log.WithError(err).Warn("failed to create markdown renderer")
		m.renderer = nil
		return
	}
	m.renderer = r
	m.width = width
}

// renderContent draws the content pane: heading, creation date, the
// intro or article text, and the pane's action
func renderContent(c application.Content, md *Markdown, width int) string {
	var b strings.Builder

	b.WriteString(styles.Heading.Render(c.Heading))
	b.WriteString("\n")
	if c.CreatedAt != "" {
		b.WriteString(styles.Meta.Render("Created " + c.CreatedAt))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if text := md.Render(c.Text, width); text != "" {
		b.WriteString(text)
	} else if c.Layout == application.LayoutOverview {
		b.WriteString(styles.MutedText.Render("No introduction."))
	}
	b.WriteString("\n\n")

	b.WriteString(renderAction(c))
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func renderAction(c application.Content) string {
	switch c.Action {
	case application.ActionOpenArticle:
		return styles.HelpKey.Render("o") + " " + styles.Action.Render(c.Action)
	case application.ActionFocusCatalogue:
		return styles.HelpKey.Render("c") + " " + styles.Action.Render(c.Action)
	default:
		return styles.MutedText.Render(c.Action)
	}
}
