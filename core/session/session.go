package session

// Roles
const (
	RoleSuperAdmin  = "super_admin"
	RoleSchoolAdmin = "school_admin"
	RoleTeacher     = "teacher"
	RoleStaff       = "staff"
)

var (
	AllRoles = []string{RoleSuperAdmin, RoleSchoolAdmin, RoleTeacher, RoleStaff}

	Roles = []Role{
		{Name: "Staff", Value: RoleStaff},
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "School Admin", Value: RoleSchoolAdmin},
		{Name: "Super Admin", Value: RoleSuperAdmin},
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// IsKnownRole reports whether role is one of AllRoles.
func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Tenant identifies one school account.
type Tenant struct {
	SchoolID string `json:"school_id"`
}

func (t Tenant) IsZero() bool { return t.SchoolID == "" }

// Session is the authenticated caller as supplied by the auth collaborator (JWT claims).
// It is read-only for this service.
type Session struct {
	ID       string `json:"id,omitempty"` // token id; empty for tokens issued without one
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	Tenant   Tenant `json:"tenant"`
}

func (s Session) IsSchoolAdmin() bool { return s.Role == RoleSchoolAdmin }

func (s Session) IsSuperAdmin() bool { return s.Role == RoleSuperAdmin }

// StateKey identifies the UI session that owns expand/collapse state.
// Tokens without an id share state per user and school.
func (s Session) StateKey() string {
	if s.ID != "" {
		return s.Tenant.SchoolID + ":" + s.ID
	}
	return s.Tenant.SchoolID + ":user:" + s.UserID
}
