package inmemdb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/masomo-console/core/feature"
	"github.com/trezcool/masomo-console/core/navigation"
)

type (
	DB struct {
		feature *featureTable
		state   *stateTable
	}

	featureTable struct {
		sync.RWMutex
		table   map[string]*feature.Feature // by key
		order   []string                    // keys, in insertion order
		schools map[string][]string         // school id -> assigned keys
	}

	stateTable struct {
		sync.RWMutex
		table map[string]navigation.ExpandedState
	}
)

// DefaultFeatures is the catalog the in-memory DB is seeded with.
var DefaultFeatures = []feature.Feature{
	{Key: "staff_management", Name: "Staff Management", Description: "Manage staff records, assignments and staff types"},
	{Key: "student_management", Name: "Student Management", Description: "Manage and add students"},
	{Key: "class_management", Name: "Class Management", Description: "Manage classes, create streams and assign class teachers"},
	{Key: "subject_management", Name: "Subject Management", Description: "Manage subjects and subject types"},
	{Key: "attendance", Name: "Attendance", Description: "Record daily attendance"},
	{Key: "timetable", Name: "Timetable", Description: "Build the school timetable and lesson schedules"},
	{Key: "examinations", Name: "Examinations", Description: "Create exams and manage exam schedules"},
	{Key: "school_setup", Name: "School Setup", Description: "Configure the school profile, buildings and rooms"},
}

// Open returns an empty DB seeded with features (DefaultFeatures when none are given).
func Open(features ...feature.Feature) (*DB, error) {
	if len(features) == 0 {
		features = DefaultFeatures
	}
	db := &DB{
		feature: &featureTable{
			table:   make(map[string]*feature.Feature, len(features)),
			schools: make(map[string][]string),
		},
		state: &stateTable{table: make(map[string]navigation.ExpandedState)},
	}
	for _, f := range features {
		f := f
		if f.ID == "" {
			f.ID = uuid.New().String()
		}
		if _, ok := db.feature.table[f.Key]; !ok {
			db.feature.order = append(db.feature.order, f.Key)
		}
		db.feature.table[f.Key] = &f
	}
	return db, nil
}
