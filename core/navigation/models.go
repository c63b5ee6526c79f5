package navigation

// Node is one sidebar entry. Trees are at most two levels deep: roots and their children.
type Node struct {
	ID         string   `json:"id" yaml:"id"`
	Label      string   `json:"label" yaml:"label"`
	TargetPath string   `json:"target_path" yaml:"target_path"`
	Icon       IconKind `json:"icon" yaml:"icon"`
	Children   []Node   `json:"children,omitempty" yaml:"children,omitempty"`
	IsPinned   bool     `json:"is_pinned,omitempty" yaml:"is_pinned,omitempty"`
}

// HasChildren reports whether n renders as an expandable parent rather than a leaf.
func (n Node) HasChildren() bool { return len(n.Children) > 0 }

// NodeView is a Node annotated for the current location and session.
type NodeView struct {
	ID         string     `json:"id" yaml:"id"`
	Label      string     `json:"label" yaml:"label"`
	TargetPath string     `json:"target_path" yaml:"target_path"`
	Icon       IconKind   `json:"icon" yaml:"icon"`
	IsPinned   bool       `json:"is_pinned,omitempty" yaml:"is_pinned,omitempty"`
	Active     bool       `json:"active" yaml:"active"`
	Expanded   bool       `json:"expanded,omitempty" yaml:"expanded,omitempty"`
	Children   []NodeView `json:"children,omitempty" yaml:"children,omitempty"`
}

// Find returns the node (root or child) with the given id.
func Find(nodes []Node, id string) (Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
		for _, c := range n.Children {
			if c.ID == id {
				return c, true
			}
		}
	}
	return Node{}, false
}
