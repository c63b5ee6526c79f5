package navigation

import (
	"strings"

	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/feature"
)

// fixed root ids
const (
	DashboardID     = "dashboard"
	AcademicYearsID = "academic-years"
)

// Builder assembles the sidebar tree. Build is pure: it keeps no state between calls.
type Builder struct {
	RootPath   string
	Classifier Classifier
}

func NewBuilder(rootPath string, legacyKeywords bool) Builder {
	return Builder{
		RootPath:   rootPath,
		Classifier: NewClassifier(rootPath, legacyKeywords),
	}
}

// BaseNodes returns the roots every school sees, whatever its features.
func (b Builder) BaseNodes() []Node {
	return []Node{
		{
			ID:         DashboardID,
			Label:      "Dashboard",
			TargetPath: core.JoinPath(b.RootPath),
			Icon:       IconDashboard,
			IsPinned:   true,
		},
		{
			ID:         AcademicYearsID,
			Label:      "Academic Years",
			TargetPath: core.JoinPath(b.RootPath, "academic-years"),
			Icon:       IconCalendar,
		},
	}
}

// Build returns the base roots followed by one root per enabled feature (in received order),
// keeping only the roots matched by query.
func (b Builder) Build(features []feature.Feature, query string) []Node {
	nodes := b.BaseNodes()
	for _, f := range features {
		if !f.Enabled {
			continue
		}
		nodes = append(nodes, b.featureNode(f))
	}
	return Filter(nodes, query)
}

func (b Builder) featureNode(f feature.Feature) Node {
	return Node{
		ID:         featureNodeID(f),
		Label:      f.Name,
		TargetPath: core.JoinPath(b.RootPath, "features", f.ID),
		Icon:       iconForName(f.Name),
		Children:   b.Classifier.Classify(f),
	}
}

// Filter keeps the roots whose label, or any child label, contains query (case-insensitive).
// Kept roots retain all their children. A blank query keeps everything.
func Filter(nodes []Node, query string) []Node {
	if core.CleanString(query) == "" {
		return nodes
	}
	q := strings.ToLower(query)
	filtered := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if matches(n, q) {
			filtered = append(filtered, n)
		}
	}
	return filtered
}

func matches(n Node, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(n.Label), lowerQuery) {
		return true
	}
	for _, c := range n.Children {
		if strings.Contains(strings.ToLower(c.Label), lowerQuery) {
			return true
		}
	}
	return false
}
