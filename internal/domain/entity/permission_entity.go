package entity

// Permission is a flat capability flag gating a specific mutation.
// There is no hierarchy: ADMIN does not imply any of the event
// permissions, authorization always tests exact membership.
type Permission string

const (
	PermissionAdmin       Permission = "ADMIN"
	PermissionCreateEvent Permission = "CREATE_EVENT"
	PermissionEditEvent   Permission = "EDIT_EVENT"
	PermissionDeleteEvent Permission = "DELETE_EVENT"
	PermissionDefault     Permission = "DEFAULT"
)

// HasPermissions reports whether every element of required is present
// in granted. An empty required set is always satisfied.
func HasPermissions(granted []Permission, required []Permission) bool {
	for _, req := range required {
		found := false
		for _, g := range granted {
			if g == req {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ValidPermission reports whether p is one of the known flags.
func ValidPermission(p Permission) bool {
	switch p {
	case PermissionAdmin, PermissionCreateEvent, PermissionEditEvent,
		PermissionDeleteEvent, PermissionDefault:
		return true
	}
	return false
}

// NormalizePermissions drops unknown flags and duplicates while
// preserving first-seen order, so a stored permission set is always
// well formed regardless of what the client sent.
func NormalizePermissions(perms []Permission) []Permission {
	out := make([]Permission, 0, len(perms))
	for _, p := range perms {
		if !ValidPermission(p) {
			continue
		}
		dup := false
		for _, o := range out {
			if o == p {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}
