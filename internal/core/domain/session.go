package domain

// Session is the read-only projection consumers get from the session token.
// Role is always populated; when the token carried none, it degrades to
// RoleUser.
type Session struct {
	UserID string
	Role   string
}

func (s Session) IsSuper() bool {
	return s.Role == RoleSuper
}
