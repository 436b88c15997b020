package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"folio/internal/domain"
	"folio/internal/ports"
)

// outlineNode is one entry of an outline file
type outlineNode struct {
	ID        int           `json:"id" yaml:"id"`
	Type      string        `json:"type" yaml:"type"`
	Name      string        `json:"name" yaml:"name"`
	Intro     string        `json:"intro" yaml:"intro"`
	CreatedAt string        `json:"createdAt" yaml:"createdAt"`
	Body      string        `json:"body" yaml:"body"`
	Children  []outlineNode `json:"children" yaml:"children"`
}

// Outline implements ports.TreeSource over a single YAML or JSON file
// describing the whole tree
type Outline struct {
	path string
}

// Ensure Outline implements TreeSource
var _ ports.TreeSource = (*Outline)(nil)

// NewOutline creates an outline source reading path
func NewOutline(path string) *Outline {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return &Outline{path: path}
}

// Path returns the outline file path
func (o *Outline) Path() string {
	return o.path
}

// Load parses the outline file and validates the tree
func (o *Outline) Load() (*domain.Node, error) {
	data, err := os.ReadFile(o.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read outline: %w", err)
	}

	root, err := ParseOutline(data, filepath.Ext(o.path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.path, err)
	}
	return root, nil
}

// ParseOutline decodes an outline in the format named by ext (".json",
// ".yaml" or ".yml")
func ParseOutline(data []byte, ext string) (*domain.Node, error) {
	var raw outlineNode
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse outline: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse outline: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported outline format %q", ext)
	}

	root, err := raw.toNode()
	if err != nil {
		return nil, err
	}
	if err := domain.Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}

func (o outlineNode) toNode() (*domain.Node, error) {
	typ, ok := domain.ParseNodeType(strings.ToLower(o.Type))
	if !ok {
		if o.Type != "" {
			return nil, fmt.Errorf("%w: node %d has unknown type %q", domain.ErrInvalidTree, o.ID, o.Type)
		}
		typ = domain.NodeTypeFile
		if o.Children != nil {
			typ = domain.NodeTypeFolder
		}
	}

	node := &domain.Node{
		ID:        o.ID,
		Type:      typ,
		Name:      o.Name,
		Intro:     o.Intro,
		CreatedAt: o.CreatedAt,
		Body:      o.Body,
	}
	for _, c := range o.Children {
		child, err := c.toNode()
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}
