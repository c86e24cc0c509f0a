// Package access decides which caller may perform which operation.
//
// A decision is a pure function of the caller's claims and the owner of the
// target resource. The rules live in a casbin model evaluated in memory; no
// request state is shared.
package access

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

type Resource string

const (
	ResourceCatalog     Resource = "catalog"
	ResourceAccount     Resource = "account"
	ResourceAppointment Resource = "appointment"
	ResourceImage       Resource = "image"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
	// ActionManage covers staff-only workflow changes, such as moving an
	// appointment to any status other than cancelled.
	ActionManage Action = "manage"
)

const (
	RoleAnonymous = "anonymous"
	RoleUser      = "user"
	RoleStaff     = "staff"

	scopeAny = "any"
	scopeOwn = "own"
)

// Principal is who is asking. The zero value is an anonymous caller.
type Principal struct {
	UserID      string
	IsStaff     bool
	IsSuperuser bool
	// AdminChannel is set when the request used the fixed bootstrap bearer
	// token together with the admin marker header.
	AdminChannel bool
}

func (p Principal) Authenticated() bool {
	return p.UserID != "" || p.AdminChannel
}

func (p Principal) role() string {
	switch {
	case p.IsStaff || p.AdminChannel:
		return RoleStaff
	case p.UserID != "":
		return RoleUser
	default:
		return RoleAnonymous
	}
}

const modelText = `
[request_definition]
r = sub, obj, act, scope

[policy_definition]
p = sub, obj, act, scope

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && (p.act == "*" || r.act == p.act) && (p.scope == "any" || r.scope == p.scope)
`

var policies = [][]string{
	{RoleAnonymous, string(ResourceCatalog), string(ActionRead), scopeAny},

	{RoleUser, string(ResourceAccount), "*", scopeOwn},
	{RoleUser, string(ResourceAppointment), string(ActionRead), scopeOwn},
	{RoleUser, string(ResourceAppointment), string(ActionWrite), scopeOwn},
	{RoleUser, string(ResourceAppointment), string(ActionDelete), scopeOwn},
	{RoleUser, string(ResourceImage), "*", scopeOwn},

	{RoleStaff, string(ResourceCatalog), "*", scopeAny},
	{RoleStaff, string(ResourceAppointment), "*", scopeAny},
	{RoleStaff, string(ResourceAccount), string(ActionRead), scopeAny},
	{RoleStaff, string(ResourceImage), string(ActionRead), scopeAny},
}

var roleInheritance = [][]string{
	{RoleUser, RoleAnonymous},
	{RoleStaff, RoleUser},
}

type Gateway struct {
	enforcer *casbin.SyncedEnforcer
}

func NewGateway() (*Gateway, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("access model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("access enforcer: %w", err)
	}

	if _, err := enforcer.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("access policies: %w", err)
	}
	if _, err := enforcer.AddGroupingPolicies(roleInheritance); err != nil {
		return nil, fmt.Errorf("access roles: %w", err)
	}

	return &Gateway{enforcer: enforcer}, nil
}

// Authorize reports whether p may perform act on obj. ownerID is the account
// owning the target; pass "" for operations that are not tied to an owner
// (catalog writes, staff-wide listings).
func (g *Gateway) Authorize(p Principal, obj Resource, act Action, ownerID string) bool {
	scope := scopeAny
	if ownerID != "" && p.UserID != "" && ownerID == p.UserID {
		scope = scopeOwn
	}

	ok, err := g.enforcer.Enforce(p.role(), string(obj), string(act), scope)
	return err == nil && ok
}

// AuthorizeOwn is Authorize for operations scoped to the caller's own data,
// such as listing or creating their appointments.
func (g *Gateway) AuthorizeOwn(p Principal, obj Resource, act Action) bool {
	if p.UserID == "" {
		return false
	}
	return g.Authorize(p, obj, act, p.UserID)
}
