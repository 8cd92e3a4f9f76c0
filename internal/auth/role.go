package auth

import (
	"fmt"
	"sort"
)

// Role is a named set of permissions. Permissions can be inherited from one
// or more parent roles; each user can hold multiple roles. The role graph is
// fixed at compile time, so both transitive closures are computed once during
// package init into immutable tables instead of being cached lazily on demand.
type Role string

const (
	// RoleUser is the default role of newly registered users.
	RoleUser      Role = "USER"
	RoleModerator Role = "MODERATOR"
	RoleAdmin     Role = "ADMIN"
)

// Levels orders roles by rank. The first role of this list that a user holds
// determines the level shown in the client.
var Levels = []Role{RoleAdmin, RoleModerator, RoleUser}

type roleDefinition struct {
	parents     []Role
	permissions []Permission
}

// New roles are added here. Parent links must not form a cycle; init panics
// if they do.
var roleDefinitions = map[Role]roleDefinition{
	RoleUser: {
		permissions: []Permission{
			PermissionAddProduct,
			PermissionAddReview,
		},
	},
	RoleModerator: {
		parents: []Role{RoleUser},
		permissions: []Permission{
			PermissionDeleteProduct,
			PermissionDeleteReview,
		},
	},
	RoleAdmin: {
		parents: []Role{RoleModerator},
		permissions: []Permission{
			PermissionCreateCategory,
			PermissionCreateBrand,
			PermissionCreateMarket,
			PermissionManageUsers,
		},
	},
}

var (
	transitiveRoles       map[Role]map[Role]struct{}
	transitivePermissions map[Role]map[Permission]struct{}
)

func init() {
	var err error
	transitiveRoles, transitivePermissions, err = buildClosureTables(roleDefinitions)
	if err != nil {
		panic(err)
	}
}

// buildClosureTables resolves the transitive role and permission sets for
// every defined role. A cyclic parent graph is a construction-time defect and
// is reported as an error rather than looping forever at request time.
func buildClosureTables(defs map[Role]roleDefinition) (map[Role]map[Role]struct{}, map[Role]map[Permission]struct{}, error) {
	roles := make(map[Role]map[Role]struct{}, len(defs))
	perms := make(map[Role]map[Permission]struct{}, len(defs))

	var visit func(r Role, path map[Role]bool) error
	visit = func(r Role, path map[Role]bool) error {
		if _, done := roles[r]; done {
			return nil
		}
		if path[r] {
			return fmt.Errorf("auth: circular role inheritance involving %s", r)
		}
		def, ok := defs[r]
		if !ok {
			return fmt.Errorf("auth: role %s inherits from undefined role", r)
		}

		path[r] = true
		roleSet := map[Role]struct{}{r: {}}
		permSet := make(map[Permission]struct{}, len(def.permissions))
		for _, p := range def.permissions {
			permSet[p] = struct{}{}
		}
		for _, parent := range def.parents {
			if err := visit(parent, path); err != nil {
				return err
			}
			for pr := range roles[parent] {
				roleSet[pr] = struct{}{}
			}
			for pp := range perms[parent] {
				permSet[pp] = struct{}{}
			}
		}
		delete(path, r)

		roles[r] = roleSet
		perms[r] = permSet
		return nil
	}

	for r := range defs {
		if err := visit(r, map[Role]bool{}); err != nil {
			return nil, nil, err
		}
	}
	return roles, perms, nil
}

// IsValid reports whether r is a defined role.
func (r Role) IsValid() bool {
	_, ok := roleDefinitions[r]
	return ok
}

// TransitiveRoles returns the role itself plus every role it inherits from,
// sorted for stable output.
func TransitiveRoles(r Role) []Role {
	set, ok := transitiveRoles[r]
	if !ok {
		return nil
	}
	result := make([]Role, 0, len(set))
	for role := range set {
		result = append(result, role)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// TransitivePermissions returns every permission granted to the role,
// including inherited ones, sorted for stable output.
func TransitivePermissions(r Role) []Permission {
	set, ok := transitivePermissions[r]
	if !ok {
		return nil
	}
	result := make([]Permission, 0, len(set))
	for p := range set {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Grants reports whether the role grants the permission, directly or through
// inheritance.
func (r Role) Grants(p Permission) bool {
	_, ok := transitivePermissions[r][p]
	return ok
}

// Permissions returns the union of permissions granted by the given roles,
// sorted for stable output.
func Permissions(roles []Role) []Permission {
	set := make(map[Permission]struct{})
	for _, r := range roles {
		for p := range transitivePermissions[r] {
			set[p] = struct{}{}
		}
	}
	result := make([]Permission, 0, len(set))
	for p := range set {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// HasPermission reports whether any of the given roles grants the permission.
func HasPermission(roles []Role, p Permission) bool {
	for _, r := range roles {
		if r.Grants(p) {
			return true
		}
	}
	return false
}

// Level returns the highest-ranked role out of the given set according to
// Levels, or RoleUser when none match.
func Level(roles []Role) Role {
	for _, level := range Levels {
		for _, r := range roles {
			if r == level {
				return level
			}
		}
	}
	return RoleUser
}
