package navigation

import (
	"net/url"
	"strings"

	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/feature"
)

// keywordRule maps description keywords to a capability. Rules are evaluated in order.
type keywordRule struct {
	capability feature.Capability
	keywords   []string
	nameMust   string // extra condition on the feature name, ignored when empty
}

var keywordRules = []keywordRule{
	{capability: feature.CapabilityList, keywords: []string{"manage", "list"}},
	{capability: feature.CapabilityCreate, keywords: []string{"create", "add"}},
	{capability: feature.CapabilityAssignments, keywords: []string{"assignment", "assign"}},
	{capability: feature.CapabilitySchedules, keywords: []string{"schedule", "timetable"}},
	{capability: feature.CapabilityTypes, keywords: []string{"type"}, nameMust: "Staff"},
}

// Classifier derives the child entries of a feature's navigation node.
//
// Explicit feature capabilities always win. When a feature publishes none and LegacyKeywords
// is set, capabilities are guessed from its free-text description. The guess is a substring
// match: "assign seating" yields an Assignments entry just like "staff assignments" does.
type Classifier struct {
	RootPath       string
	LegacyKeywords bool
}

func NewClassifier(rootPath string, legacyKeywords bool) Classifier {
	return Classifier{RootPath: rootPath, LegacyKeywords: legacyKeywords}
}

// Classify returns the children of f's node; nil when f offers no sub-capability.
func (c Classifier) Classify(f feature.Feature) []Node {
	caps := f.CapabilitySet()
	if len(caps) == 0 && c.LegacyKeywords {
		caps = keywordCapabilities(f)
	}
	if len(caps) == 0 {
		return nil
	}

	root := FeatureRoot(c.RootPath, f)
	children := make([]Node, 0, len(caps))
	for _, capability := range caps {
		children = append(children, childNode(f, root, capability))
	}
	return children
}

// keywordCapabilities applies keywordRules to the description of f.
func keywordCapabilities(f feature.Feature) []feature.Capability {
	desc := strings.ToLower(f.Description)
	if desc == "" {
		return nil
	}
	var caps []feature.Capability
	for _, rule := range keywordRules {
		if rule.nameMust != "" && !core.ContainsFold(f.Name, rule.nameMust) {
			continue
		}
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				caps = append(caps, rule.capability)
				break
			}
		}
	}
	return caps
}

// FeatureRoot is the base path of a feature's sub-pages: <root>/features/<slug of key>.
func FeatureRoot(rootPath string, f feature.Feature) string {
	slug := core.Slugify(f.Key)
	if slug == "" {
		slug = core.Slugify(f.Name)
	}
	return core.JoinPath(rootPath, "features", slug)
}

func childNode(f feature.Feature, featureRoot string, capability feature.Capability) Node {
	n := Node{
		ID:         featureNodeID(f) + "#" + string(capability),
		TargetPath: core.JoinPath(featureRoot, string(capability)),
	}
	shortName := strings.TrimSuffix(f.Name, " Management")
	switch capability {
	case feature.CapabilityList:
		n.Label = f.Name + " List"
		n.Icon = IconList
	case feature.CapabilityCreate:
		n.Label = "Create " + shortName
		n.Icon = IconPlus
	case feature.CapabilityAssignments:
		n.Label = "Assignments"
		n.Icon = IconAssignment
	case feature.CapabilitySchedules:
		n.Label = "Schedules"
		n.Icon = IconSchedule
	case feature.CapabilityTypes:
		if core.ContainsFold(f.Name, "Staff") {
			n.Label = "Staff Types"
		} else {
			n.Label = shortName + " Types"
		}
		n.Icon = IconTags
	default:
		n.Label = shortName
	}
	return n
}

// featureNodeID escapes the feature id so that it never contains '#', the separator of child ids.
func featureNodeID(f feature.Feature) string {
	return "feature-" + url.PathEscape(f.ID)
}
