package example

type ProjectRole string

const (
	ProjectRoleOwner  ProjectRole = "OWNER"
	ProjectRoleViewer ProjectRole = "VIEWER"
)

type WorkspaceRole string

const (
	WorkspaceRoleMember WorkspaceRole = "MEMBER"
)

type ProjectMember struct {
	UserID int64
	Role   ProjectRole
}

type Invitation struct {
	Email string
	Role  WorkspaceRole
}

func bad() {
	m := &ProjectMember{}
	m.Role = "OWNER" // want "enum field Role assigned string literal"

	inv := &Invitation{}
	inv.Role = "ADMIN" // want "enum field Role assigned string literal"

	_ = ProjectMember{UserID: 1, Role: "EDITOR"} // want "enum field Role assigned string literal"
}

func good() {
	m := &ProjectMember{}
	m.Role = ProjectRoleOwner // OK: using constant

	inv := &Invitation{Email: "a@example.com"}
	inv.Role = WorkspaceRoleMember // OK: using constant
}

func alsoGood() {
	// OK: Variable, not literal
	role := ProjectRoleViewer
	m := &ProjectMember{Role: role}
	_ = m
}
