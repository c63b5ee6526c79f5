package dashboard

import (
	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/navigation"
)

// FeatureKey is the stable machine identifier of a catalog feature.
type FeatureKey string

// Feature keys with a dashboard shortcut.
const (
	KeyStaffManagement   FeatureKey = "staff_management"
	KeyStudentManagement FeatureKey = "student_management"
	KeyClassManagement   FeatureKey = "class_management"
	KeySubjectManagement FeatureKey = "subject_management"
	KeyAttendance        FeatureKey = "attendance"
	KeyTimetable         FeatureKey = "timetable"
	KeyExaminations      FeatureKey = "examinations"
	KeySchoolSetup       FeatureKey = "school_setup"
)

// QuickAction is a dashboard shortcut card.
type QuickAction struct {
	Title       string              `json:"title" yaml:"title"`
	Description string              `json:"description" yaml:"description"`
	Icon        navigation.IconKind `json:"icon" yaml:"icon"`
	TargetPath  string              `json:"target_path" yaml:"target_path"`
	Color       string              `json:"color" yaml:"color"`
}

// catalogAction returns the shortcut of a feature key; false for keys without one.
func catalogAction(rootPath string, key FeatureKey) (QuickAction, bool) {
	switch key {
	case KeyStaffManagement:
		return featureAction(rootPath, key, "Staff Management", "Manage staff records and assignments", navigation.IconPeople, "blue"), true
	case KeyStudentManagement:
		return featureAction(rootPath, key, "Student Management", "Enroll students and manage their records", navigation.IconGraduation, "green"), true
	case KeyClassManagement:
		return featureAction(rootPath, key, "Class Management", "Organise classes and sections", navigation.IconInstitution, "purple"), true
	case KeySubjectManagement:
		return featureAction(rootPath, key, "Subject Management", "Define subjects and assign teachers", navigation.IconBook, "orange"), true
	case KeyAttendance:
		return featureAction(rootPath, key, "Attendance", "Record and review daily attendance", navigation.IconAttendance, "teal"), true
	case KeyTimetable:
		return featureAction(rootPath, key, "Timetable", "Plan class schedules", navigation.IconSchedule, "indigo"), true
	case KeyExaminations:
		return featureAction(rootPath, key, "Examinations", "Schedule exams and publish results", navigation.IconExam, "red"), true
	case KeySchoolSetup:
		return schoolSetupAction(rootPath), true
	default:
		return QuickAction{}, false
	}
}

// featureAction targets <root>/features/<slug of key>, the same base as the feature's sub-pages.
func featureAction(rootPath string, key FeatureKey, title, desc string, icon navigation.IconKind, color string) QuickAction {
	return QuickAction{
		Title:       title,
		Description: desc,
		Icon:        icon,
		TargetPath:  core.JoinPath(rootPath, "features", core.Slugify(string(key))),
		Color:       color,
	}
}

func schoolSetupAction(rootPath string) QuickAction {
	return QuickAction{
		Title:       "School Setup",
		Description: "Configure the school profile, buildings and rooms",
		Icon:        navigation.IconSetup,
		TargetPath:  core.JoinPath(rootPath, "setup"),
		Color:       "gray",
	}
}
