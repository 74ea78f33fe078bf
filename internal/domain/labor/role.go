package labor

import "fmt"

// Role is one of the five population tiers used as the unit of account for all
// intermediate costs. Roles are ordered from lowest to highest skill.
type Role int

const (
	Pioneer Role = iota
	Settler
	Technician
	Engineer
	Scientist
)

// RoleCount is the number of population roles
const RoleCount = 5

// Roles lists every role in tier order
var Roles = [RoleCount]Role{Pioneer, Settler, Technician, Engineer, Scientist}

var roleCodes = [RoleCount]string{"PIO", "SET", "TEC", "ENG", "SCI"}

// String returns the three-letter role code used throughout the game catalog
func (r Role) String() string {
	if r < 0 || int(r) >= RoleCount {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleCodes[r]
}

// Next returns the role directly above r, and false for the highest tier
func (r Role) Next() (Role, bool) {
	if int(r)+1 >= RoleCount {
		return r, false
	}
	return r + 1, true
}

// ParseRole converts a role code (PIO, SET, TEC, ENG, SCI) into a Role
func ParseRole(code string) (Role, error) {
	for i, c := range roleCodes {
		if c == code {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown population role: %s", code)
}
