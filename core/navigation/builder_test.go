package navigation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-console/core/feature"
)

func sampleFeatures() []feature.Feature {
	return []feature.Feature{
		{ID: "f1", Key: "staff_management", Name: "Staff Management", Description: "Manage staff records and assignments", Enabled: true},
		{ID: "f2", Key: "student_management", Name: "Student Management", Description: "Create and list students", Enabled: true},
		{ID: "f3", Key: "library", Name: "Library", Description: "Book loans", Enabled: false},
		{ID: "f4", Key: "subject_management", Name: "Subjects", Description: "", Enabled: true},
		{ID: "f5", Key: "class_management", Name: "Class Management", Description: "Timetable per class", Enabled: true},
		{ID: "f6", Key: "fees", Name: "Fees", Description: "Fee collection", Enabled: true},
	}
}

func ids(nodes []Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestBuilder_Build_baseNodesFirst(t *testing.T) {
	b := NewBuilder("/school", true)

	for _, features := range [][]feature.Feature{nil, {}, sampleFeatures()} {
		nodes := b.Build(features, "")
		require.GreaterOrEqual(t, len(nodes), 2)
		assert.Equal(t, Node{ID: DashboardID, Label: "Dashboard", TargetPath: "/school", Icon: IconDashboard, IsPinned: true}, nodes[0])
		assert.Equal(t, Node{ID: AcademicYearsID, Label: "Academic Years", TargetPath: "/school/academic-years", Icon: IconCalendar}, nodes[1])
	}
}

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder("/school", true)
	nodes := b.Build(sampleFeatures(), "")

	assert.Equal(t, []string{DashboardID, AcademicYearsID, "feature-f1", "feature-f2", "feature-f4", "feature-f5", "feature-f6"}, ids(nodes))

	tests := []struct {
		id         string
		wantLabel  string
		wantTarget string
		wantIcon   IconKind
		wantKids   []string
	}{
		{id: "feature-f1", wantLabel: "Staff Management", wantTarget: "/school/features/f1", wantIcon: IconPeople, wantKids: []string{"Staff Management List", "Assignments"}},
		{id: "feature-f2", wantLabel: "Student Management", wantTarget: "/school/features/f2", wantIcon: IconGraduation, wantKids: []string{"Student Management List", "Create Student"}},
		{id: "feature-f4", wantLabel: "Subjects", wantTarget: "/school/features/f4", wantIcon: IconBook},
		{id: "feature-f5", wantLabel: "Class Management", wantTarget: "/school/features/f5", wantIcon: IconInstitution, wantKids: []string{"Schedules"}},
		{id: "feature-f6", wantLabel: "Fees", wantTarget: "/school/features/f6", wantIcon: IconGear},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n, ok := Find(nodes, tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.wantLabel, n.Label)
			assert.Equal(t, tt.wantTarget, n.TargetPath)
			assert.Equal(t, tt.wantIcon, n.Icon)
			if len(tt.wantKids) == 0 {
				assert.Nil(t, n.Children, "leaf nodes have no children field")
				return
			}
			assert.Equal(t, tt.wantKids, labels(n.Children))
		})
	}
}

func TestBuilder_Build_disabledFeaturesNeverShow(t *testing.T) {
	b := NewBuilder("/school", true)
	features := []feature.Feature{
		{ID: "x", Key: "staff_management", Name: "Staff Management", Description: "Manage staff", Enabled: false},
	}
	for _, query := range []string{"", "staff", "list"} {
		if _, ok := Find(b.Build(features, query), "feature-x"); ok {
			t.Errorf("Build(query=%q) contains a disabled feature", query)
		}
	}
}

func TestBuilder_Build_idempotent(t *testing.T) {
	b := NewBuilder("/school", true)
	first := b.Build(sampleFeatures(), "man")
	second := b.Build(sampleFeatures(), "man")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Build() is not idempotent (-first +second):\n%s", diff)
	}
}

func TestBuilder_Build_search(t *testing.T) {
	b := NewBuilder("/school", true)
	all := b.Build(sampleFeatures(), "")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty", query: "", want: ids(all)},
		{name: "blank", query: "   ", want: ids(all)},
		{name: "root label", query: "dash", want: []string{DashboardID}},
		{name: "case-insensitive", query: "ACADEMIC", want: []string{AcademicYearsID}},
		{name: "child label keeps root", query: "assignments", want: []string{"feature-f1"}},
		{name: "child label create", query: "create student", want: []string{"feature-f2"}},
		{name: "shared substring", query: "management", want: []string{"feature-f1", "feature-f2", "feature-f5"}},
		{name: "no match", query: "zzz", want: []string{}},
		{name: "surrounding spaces are matched", query: "dashboard ", want: []string{}},
		{name: "inner space", query: "ent l", want: []string{"feature-f1", "feature-f2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Build(sampleFeatures(), tt.query)
			assert.Equal(t, tt.want, ids(got))

			// filtering only removes roots, and kept roots keep all their children
			for _, n := range got {
				orig, ok := Find(all, n.ID)
				require.True(t, ok)
				assert.Equal(t, orig, n)
			}
		})
	}
}

func TestBuilder_Build_uniqueIDs(t *testing.T) {
	b := NewBuilder("/school", true)
	tests := []struct {
		name     string
		features []feature.Feature
	}{
		{name: "sample", features: sampleFeatures()},
		{name: "id shaped like a child id", features: []feature.Feature{
			{ID: "1", Key: "staff_management", Name: "Staff Management", Description: "Manage staff", Enabled: true},
			{ID: "1-list", Key: "library", Name: "Library", Enabled: true},
		}},
		{name: "id with separators", features: []feature.Feature{
			{ID: "2", Key: "student_management", Name: "Student Management", Description: "Create and list students", Enabled: true},
			{ID: "2#list", Key: "fees", Name: "Fees", Enabled: true},
			{ID: "2%23create", Key: "library", Name: "Library", Enabled: true},
			{ID: "2/create", Key: "subjects", Name: "Subjects", Enabled: true},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make(map[string]bool)
			for _, n := range b.Build(tt.features, "") {
				assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
				seen[n.ID] = true
				for _, c := range n.Children {
					assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
					seen[c.ID] = true
					assert.Empty(t, c.Children, "tree deeper than two levels")
				}
			}
		})
	}
}

func TestBuilder_Build_findFeatureRoot(t *testing.T) {
	b := NewBuilder("/school", true)
	features := []feature.Feature{
		{ID: "1", Key: "staff_management", Name: "Staff Management", Description: "Manage staff", Enabled: true},
		{ID: "1-list", Key: "library", Name: "Library", Enabled: true},
	}
	nodes := b.Build(features, "")

	for _, f := range features {
		n, ok := Find(nodes, featureNodeID(f))
		require.True(t, ok, f.ID)
		assert.Equal(t, f.Name, n.Label)
	}
	n, ok := Find(nodes, featureNodeID(features[0])+"#list")
	require.True(t, ok)
	assert.Equal(t, "Staff Management List", n.Label)
}

func TestBuilder_Build_endToEnd(t *testing.T) {
	b := NewBuilder("/school", true)
	features := []feature.Feature{
		{ID: "7", Key: "staff_management", Name: "Staff Management", Description: "Manage staff records and assignments", Enabled: true},
	}

	nodes := b.Build(features, "")
	require.Len(t, nodes, 3)

	want := Node{
		ID:         "feature-7",
		Label:      "Staff Management",
		TargetPath: "/school/features/7",
		Icon:       IconPeople,
		Children: []Node{
			{ID: "feature-7#list", Label: "Staff Management List", TargetPath: "/school/features/staff-management/list", Icon: IconList},
			{ID: "feature-7#assignments", Label: "Assignments", TargetPath: "/school/features/staff-management/assignments", Icon: IconAssignment},
		},
	}
	if diff := cmp.Diff(want, nodes[2]); diff != "" {
		t.Errorf("third root mismatch (-want +got):\n%s", diff)
	}
}
