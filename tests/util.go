package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/feature"
	"github.com/trezcool/masomo-console/core/session"
)

// Entry is one recorded log call.
type Entry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// Logger records log calls instead of printing them.
type Logger struct {
	mu      sync.Mutex
	Entries []Entry
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, Entry{Level: level, Msg: msg, Args: args})
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("fatal", msg, args) }

// Count returns the number of entries logged at level.
func (l *Logger) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int
	for _, e := range l.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Metrics counts what the core packages report.
type Metrics struct {
	mu          sync.Mutex
	Unavailable map[string]int
	Builds      int
}

var _ core.Metrics = (*Metrics)(nil)

func (m *Metrics) CatalogUnavailable(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Unavailable == nil {
		m.Unavailable = make(map[string]int)
	}
	m.Unavailable[source]++
}

func (m *Metrics) NavigationBuilt(int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Builds++
}

// NewValidator returns a validator with the app's custom tags registered.
func NewValidator() *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())
	return validate
}

// Catalog serves fixed features per school.
type Catalog struct {
	mu       sync.Mutex
	Features map[string][]feature.Feature // by school id
	Err      error
	Calls    int
}

var _ feature.Catalog = (*Catalog)(nil)

func (c *Catalog) EnabledFeatures(ctx context.Context, tenant session.Tenant) ([]feature.Feature, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	if c.Err != nil {
		return nil, c.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]feature.Feature(nil), c.Features[tenant.SchoolID]...), nil
}

// Fetcher returns the same features for every session.
type Fetcher []feature.Feature

func (f Fetcher) FetchEnabled(context.Context, session.Session) []feature.Feature {
	return append([]feature.Feature(nil), f...)
}

// StaffManagement is the feature used by most end-to-end examples.
func StaffManagement() feature.Feature {
	return feature.Feature{
		ID:          "f-staff",
		Key:         "staff_management",
		Name:        "Staff Management",
		Description: "Manage staff records and assignments",
		Enabled:     true,
	}
}

// SchoolAdmin returns a school_admin session of schoolID.
func SchoolAdmin(schoolID string) session.Session {
	return session.Session{
		ID:       "sess-" + schoolID,
		UserID:   "u-admin",
		Username: "admin",
		Role:     session.RoleSchoolAdmin,
		Tenant:   session.Tenant{SchoolID: schoolID},
	}
}

// OpenDB opens the test database named by DATABASE_URL, or skips the test.
func OpenDB(t *testing.T, driver string) *sql.DB {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	if err = db.Ping(); err != nil {
		t.Fatalf("OpenDB() ping failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			fmt.Printf("db.Close(): %v\n", err)
		}
	})
	return db
}
