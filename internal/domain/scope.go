package domain

// Role is the caller's role within their family.
type Role string

const (
	RoleParent Role = "PARENT"
	RoleChild  Role = "CHILD"
)

// Scope identifies the caller on whose behalf an operation runs. It is
// resolved by the request layer; services only compare it against the
// family that owns the records being touched.
type Scope struct {
	FamilyID string
	MemberID string
	Role     Role
}

// IsParent reports whether the caller may manage projects and tasks.
func (s Scope) IsParent() bool {
	return s.Role == RoleParent
}

// Owns reports whether the caller's family owns a record of familyID.
func (s Scope) Owns(familyID string) bool {
	return s.FamilyID != "" && s.FamilyID == familyID
}
