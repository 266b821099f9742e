package wizard

import "fmt"

// Role is the operator's affiliation, chosen on the organization step.
type Role int

const (
	RoleHealthcareAdmin Role = iota
	RoleGovtOfficial
)

// Roles lists every selectable role in display order.
var Roles = []Role{RoleHealthcareAdmin, RoleGovtOfficial}

func (r Role) String() string {
	switch r {
	case RoleHealthcareAdmin:
		return "Healthcare Admin"
	case RoleGovtOfficial:
		return "Govt. Official"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Metrics holds the resource figures exactly as typed. They are quantities
// but stay raw text until something validates them.
type Metrics struct {
	ICUBeds         string
	PPEStock        string
	VentilatorUsage string
}

// Form is everything the operator has entered during a session.
type Form struct {
	OrganizationName string
	Role             Role
	Metrics          Metrics
}

// Profile is the "role | organization" footer shown on the dashboard.
func (f Form) Profile() string {
	return fmt.Sprintf("%s | %s", f.Role, f.OrganizationName)
}

// DisplayValue renders an empty metric as N/A.
func DisplayValue(raw string) string {
	if raw == "" {
		return "N/A"
	}
	return raw
}
