package identity

// Permission is a dashboard permission code carried in the access token
type Permission string

const (
	PermissionManageUsers                     Permission = "MANAGE_USERS"
	PermissionManageStaff                     Permission = "MANAGE_STAFF"
	PermissionManageOrders                    Permission = "MANAGE_ORDERS"
	PermissionManageProducts                  Permission = "MANAGE_PRODUCTS"
	PermissionManageProductTypesAndAttributes Permission = "MANAGE_PRODUCT_TYPES_AND_ATTRIBUTES"
)

// AllPermissions lists every permission known to the dashboard
func AllPermissions() []Permission {
	return []Permission{
		PermissionManageUsers,
		PermissionManageStaff,
		PermissionManageOrders,
		PermissionManageProducts,
		PermissionManageProductTypesAndAttributes,
	}
}

// IsValid checks if the permission is known
func (p Permission) IsValid() bool {
	for _, known := range AllPermissions() {
		if p == known {
			return true
		}
	}
	return false
}

func (p Permission) String() string {
	return string(p)
}

// HasPermissions reports whether userPermissions contains every required permission.
// An empty requirement is always satisfied.
func HasPermissions(userPermissions []string, required []string) bool {
	if len(required) == 0 {
		return true
	}
	held := make(map[string]struct{}, len(userPermissions))
	for _, p := range userPermissions {
		held[p] = struct{}{}
	}
	for _, r := range required {
		if _, ok := held[r]; !ok {
			return false
		}
	}
	return true
}

// Codes converts permissions to their string codes
func Codes(perms ...Permission) []string {
	codes := make([]string, len(perms))
	for i, p := range perms {
		codes[i] = string(p)
	}
	return codes
}
