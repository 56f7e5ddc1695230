package data

const (
	PermissionMoviesRead  = "movies:read"
	PermissionMoviesWrite = "movies:write"
	PermissionUsersAdmin  = "users:admin"
)

type Permissions []string

func (perms Permissions) IncludesPerm(code string) bool {
	return In(code, perms...)
}

// PermissionsFor derives the permission set of a principal. Anonymous callers
// hold nothing, every user may read and admins may also write and manage users.
func PermissionsFor(user *User) Permissions {
	switch {
	case user == nil || user.IsAnonymous():
		return Permissions{}
	case user.IsAdmin:
		return Permissions{PermissionMoviesRead, PermissionMoviesWrite, PermissionUsersAdmin}
	default:
		return Permissions{PermissionMoviesRead}
	}
}

// Authorize reports whether user may perform the action named by code.
func Authorize(user *User, code string) bool {
	return PermissionsFor(user).IncludesPerm(code)
}
