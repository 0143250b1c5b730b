package authz

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"gopkg.in/yaml.v3"
)

// Locals keys written by the JWT middleware.
const (
	LocUserID      = "user_id"
	LocRole        = "role"
	LocPermissions = "permissions"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && (p.act == "*" || r.act == p.act)
`

//go:embed policy.yaml
var defaultPolicy []byte

// Policy maps a role to the permissions it grants.
type Policy struct {
	Roles map[string][]string `yaml:"roles"`
}

// LoadPolicy reads a YAML policy from path, or the embedded default when path is empty.
func LoadPolicy(path string) (Policy, error) {
	raw := defaultPolicy
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Policy{}, fmt.Errorf("authz: read policy: %w", err)
		}
		raw = b
	}
	var p Policy
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Policy{}, fmt.Errorf("authz: parse policy: %w", err)
	}
	if len(p.Roles) == 0 {
		return Policy{}, fmt.Errorf("authz: policy has no roles")
	}
	return p, nil
}

type Authorizer struct {
	enforcer *casbin.Enforcer
}

func New(p Policy) (*Authorizer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	for role, perms := range p.Roles {
		for _, perm := range perms {
			obj, act, err := SplitPermission(perm)
			if err != nil {
				return nil, fmt.Errorf("authz: role %s: %w", role, err)
			}
			if _, err := e.AddPolicy(SubjectFromRole(role), obj, act); err != nil {
				return nil, err
			}
		}
	}
	return &Authorizer{enforcer: e}, nil
}

// NewFromFile is LoadPolicy followed by New.
func NewFromFile(path string) (*Authorizer, error) {
	p, err := LoadPolicy(path)
	if err != nil {
		return nil, err
	}
	return New(p)
}

func SubjectFromRole(role string) string {
	role = strings.TrimSpace(strings.ToLower(role))
	if role == "" {
		role = "anonymous"
	}
	return "role:" + role
}

// SplitPermission splits "settings:read" into object and action.
func SplitPermission(perm string) (string, string, error) {
	obj, act, ok := strings.Cut(strings.TrimSpace(perm), ":")
	if !ok || obj == "" || act == "" {
		return "", "", fmt.Errorf("invalid permission %q", perm)
	}
	return obj, act, nil
}

// Allowed reports whether role grants perm.
func (a *Authorizer) Allowed(role, perm string) (bool, error) {
	obj, act, err := SplitPermission(perm)
	if err != nil {
		return false, err
	}
	return a.enforcer.Enforce(SubjectFromRole(role), obj, act)
}

// HasPermission checks explicit permission claims; "obj:*" and "*" are wildcards.
func HasPermission(granted []string, perm string) bool {
	obj, _, err := SplitPermission(perm)
	if err != nil {
		return false
	}
	for _, g := range granted {
		g = strings.TrimSpace(g)
		if g == "*" || g == perm || g == obj+":*" {
			return true
		}
	}
	return false
}
