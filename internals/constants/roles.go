package constants

import "fmt"

// Roles carried in the JWT "role" claim.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleAccountant = "accountant"
	RoleLabTech    = "lab_technician"
	RoleViewer     = "viewer"
)

// Permissions checked by RequirePermission. Object and action are split on ':'.
const (
	PermSettingsRead   = "settings:read"
	PermSettingsCreate = "settings:create"
	PermSettingsUpdate = "settings:update"
	PermSettingsDelete = "settings:delete"
)

// Permission error templates (English, Arabic)
const (
	ErrMissingPermission   = "Forbidden: missing permission %s"
	ErrMissingPermissionAr = "ممنوع: لا تملك الصلاحية %s"
)

func PermissionError(perm string) (string, string) {
	return fmt.Sprintf(ErrMissingPermission, perm), fmt.Sprintf(ErrMissingPermissionAr, perm)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleManager,
		RoleAccountant,
		RoleLabTech,
		RoleViewer,
	}

	// SettingsEditors may change pricing and catalog data.
	SettingsEditors = []string{
		RoleAdmin,
		RoleManager,
	}
)
