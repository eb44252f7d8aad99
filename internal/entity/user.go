package entity

import "github.com/stayloft-lab/backend/pkg/enum"

type GlobalRole string

var (
	RoleUser      = enum.New(GlobalRole("user"))
	RoleModerator = enum.New(GlobalRole("moderator"))
	RoleAdmin     = enum.New(GlobalRole("admin"))
)

// GlobalModeratorRoles are the roles allowed to review submissions.
var GlobalModeratorRoles = []GlobalRole{RoleModerator, RoleAdmin}

// GlobalAdminRoles are the roles allowed to run administrative operations,
// including manual contest resolution.
var GlobalAdminRoles = []GlobalRole{RoleAdmin}

// User keeps only what the contest core needs: a stable id supplied by the
// identity provider, a display name, and a global role.
type User struct {
	Base
	Name string `gorm:"unique"`
	Role GlobalRole
}
