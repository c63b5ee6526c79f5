package navigation

import (
	"strings"

	"github.com/pkg/errors"
)

// IconKind tells the rendering collaborator which icon to draw.
type IconKind int

const (
	IconGear IconKind = iota // default
	IconDashboard
	IconCalendar
	IconPeople
	IconGraduation
	IconInstitution
	IconBook
	IconList
	IconPlus
	IconAssignment
	IconSchedule
	IconTags
	IconSetup
	IconAttendance
	IconExam
)

var iconNames = [...]string{
	IconGear:        "gear",
	IconDashboard:   "dashboard",
	IconCalendar:    "calendar",
	IconPeople:      "people",
	IconGraduation:  "graduation",
	IconInstitution: "institution",
	IconBook:        "book",
	IconList:        "list",
	IconPlus:        "plus",
	IconAssignment:  "assignment",
	IconSchedule:    "schedule",
	IconTags:        "tags",
	IconSetup:       "setup",
	IconAttendance:  "attendance",
	IconExam:        "exam",
}

func (k IconKind) String() string {
	if k < 0 || int(k) >= len(iconNames) {
		return iconNames[IconGear]
	}
	return iconNames[k]
}

func (k IconKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *IconKind) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i, n := range iconNames {
		if n == name {
			*k = IconKind(i)
			return nil
		}
	}
	return errors.Errorf("unknown icon kind %q", text)
}

// iconForName picks a root icon from the feature name; the first matching keyword wins.
func iconForName(name string) IconKind {
	lname := strings.ToLower(name)
	switch {
	case strings.Contains(lname, "staff"):
		return IconPeople
	case strings.Contains(lname, "student"):
		return IconGraduation
	case strings.Contains(lname, "class"):
		return IconInstitution
	case strings.Contains(lname, "subject"):
		return IconBook
	default:
		return IconGear
	}
}
