package navigation

import "strings"

// Matcher decides which entries are highlighted for the current location.
type Matcher struct {
	RootPath string
}

// IsActive reports whether the entry targeting target is active at location.
// The root entry only matches exactly, otherwise it would light up on every page.
func (m Matcher) IsActive(target, location string) bool {
	if target == m.RootPath {
		return location == m.RootPath
	}
	return strings.HasPrefix(location, target)
}

// Annotate marks active and expanded nodes for the rendering collaborator.
// A parent is not made active by an active child; the front-end decides how to style that.
func (m Matcher) Annotate(nodes []Node, location string, expanded ExpandedState) []NodeView {
	views := make([]NodeView, 0, len(nodes))
	for _, n := range nodes {
		v := m.view(n, location)
		if n.HasChildren() {
			v.Expanded = expanded.IsExpanded(n.ID)
			v.Children = make([]NodeView, 0, len(n.Children))
			for _, c := range n.Children {
				v.Children = append(v.Children, m.view(c, location))
			}
		}
		views = append(views, v)
	}
	return views
}

func (m Matcher) view(n Node, location string) NodeView {
	return NodeView{
		ID:         n.ID,
		Label:      n.Label,
		TargetPath: n.TargetPath,
		Icon:       n.Icon,
		IsPinned:   n.IsPinned,
		Active:     location != "" && m.IsActive(n.TargetPath, location),
	}
}
