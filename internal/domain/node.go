package domain

// NodeType distinguishes folders from files
type NodeType int

const (
	NodeTypeFolder NodeType = iota
	NodeTypeFile
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeFolder:
		return "folder"
	case NodeTypeFile:
		return "file"
	default:
		return "unknown"
	}
}

// ParseNodeType maps "folder"/"file" to a NodeType
func ParseNodeType(s string) (NodeType, bool) {
	switch s {
	case "folder":
		return NodeTypeFolder, true
	case "file":
		return NodeTypeFile, true
	default:
		return NodeTypeFolder, false
	}
}

// Node is a single entry of the notebook tree.
// The tree is owned top-down; nodes carry no parent pointer, the
// ancestor chain is always recovered from the root with FindWithPath.
type Node struct {
	ID        int
	Type      NodeType
	Name      string
	CreatedAt string
	Intro     string  // folders only
	Body      string  // files only, markdown
	Path      string  // source location, empty for in-memory trees
	Children  []*Node // folders only, display order
}

// NewFolder creates a folder node
func NewFolder(id int, name string, children ...*Node) *Node {
	return &Node{
		ID:       id,
		Type:     NodeTypeFolder,
		Name:     name,
		Children: children,
	}
}

// NewFile creates a file node
func NewFile(id int, name string) *Node {
	return &Node{
		ID:   id,
		Type: NodeTypeFile,
		Name: name,
	}
}

// IsFolder reports whether the node is a folder
func (n *Node) IsFolder() bool {
	return n != nil && n.Type == NodeTypeFolder
}

// IsFile reports whether the node is a file
func (n *Node) IsFile() bool {
	return n != nil && n.Type == NodeTypeFile
}

// HasChildren reports whether the node is a folder with at least one child
func (n *Node) HasChildren() bool {
	return n.IsFolder() && len(n.Children) > 0
}
