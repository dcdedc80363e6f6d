package joints

import "sort"

// Role names an output collection in the role catalog
type Role string

// Lap joint output roles
const (
	M450 Role = "M450"
	M451 Role = "M451"
	M452 Role = "M452"
	M453 Role = "M453"
	M454 Role = "M454"
	M455 Role = "M455"
)

// T joint output roles
const (
	M201 Role = "M201"
	M202 Role = "M202"
	M203 Role = "M203"
	M204 Role = "M204"
	M205 Role = "M205"
	M206 Role = "M206"
	M207 Role = "M207"
)

var (
	LapRoles = []Role{M450, M451, M452, M453, M454, M455}
	TRoles   = []Role{M201, M202, M203, M204, M205, M206, M207}
)

// Assignment collects the elements routed to each role
type Assignment map[Role][]int

func (a Assignment) Add(role Role, elements ...int) {
	if len(elements) == 0 {
		return
	}
	a[role] = append(a[role], elements...)
}

// Roles returns the populated roles in name order
func (a Assignment) Roles() (roles []Role) {
	for r := range a {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return
}
