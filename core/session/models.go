package session

// Roles
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// User is the identity resolved from a validated session credential.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Role    string `json:"role"`
}

func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

// Session is the authenticated-identity context held in memory for the
// application's lifetime. Token is the opaque credential sent as
// X-Session-ID on every authenticated request.
type Session struct {
	Token string
	User  User
}
