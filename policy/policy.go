// Package policy holds the pure authorization rules. Handlers check
// resource existence first, then consult policy, so a missing resource
// is always reported as 404 and never as 403.
package policy

// Role is an account's privilege level.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Actor is the authenticated principal performing a request.
type Actor struct {
	ID   string
	Role Role
}

// CanEditBlog allows only the author.
func CanEditBlog(actor Actor, authorID string) bool {
	return actor.ID != "" && actor.ID == authorID
}

// CanDeleteBlog allows the author or a superadmin.
func CanDeleteBlog(actor Actor, authorID string) bool {
	return CanEditBlog(actor, authorID) || actor.Role == RoleSuperAdmin
}

// CanEditComment allows only the comment owner.
func CanEditComment(actor Actor, ownerID string) bool {
	return actor.ID != "" && actor.ID == ownerID
}

// CanDeleteComment allows the comment owner or a superadmin.
func CanDeleteComment(actor Actor, ownerID string) bool {
	return CanEditComment(actor, ownerID) || actor.Role == RoleSuperAdmin
}

// CanManageAdmins gates admin registration, listing, updates and deletion.
func CanManageAdmins(actor Actor) bool {
	return actor.Role == RoleSuperAdmin
}
