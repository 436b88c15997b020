package filesystem

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---(?:\r?\n(.*))?$`)

// Frontmatter is the metadata block at the top of a note
type Frontmatter struct {
	Title   string `yaml:"title"`
	Created string `yaml:"created"`
	Intro   string `yaml:"intro"`
}

// ParseFrontmatter splits content into its frontmatter and body. Content
// without a frontmatter block returns nil and the content unchanged.
func ParseFrontmatter(content string) (*Frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if matches == nil {
		return nil, content, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(matches[1]), &fm); err != nil {
		return nil, content, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	return &fm, matches[2], nil
}

var markdown = goldmark.New()

// HeadingTitle returns the text of the first level-1 heading of body
func HeadingTitle(body []byte) string {
	doc := markdown.Parser().Parse(text.NewReader(body))

	var title string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			return ast.WalkContinue, nil
		}

		var b bytes.Buffer
		collectText(h, body, &b)
		title = strings.TrimSpace(b.String())
		return ast.WalkStop, nil
	})
	return title
}

func collectText(n ast.Node, source []byte, b *bytes.Buffer) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			collectText(c, source, b)
		}
	}
}

// DisplayName turns a file or directory name into a node name. Markdown
// extensions are dropped, and all-lowercase slugs like "meeting-notes"
// become "Meeting Notes".
func DisplayName(filename string) string {
	name := norm.NFC.String(filename)
	if strings.EqualFold(filepath.Ext(name), ".md") {
		name = name[:len(name)-3]
	}

	if name != strings.ToLower(name) || !strings.ContainsAny(name, "-_") {
		return name
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(name)
}
