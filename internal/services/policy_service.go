package services

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/you/bookstore/domain"
)

// PolicyServiceImpl implements domain.PolicyService using Casbin.
// Persistence happens through the enforcer's adapter with auto-save enabled.
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// NewPolicyServiceWithEnforcer creates a new policy service with a CasbinEnforcer interface (for testing)
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// AddPolicy implements domain.PolicyService. Adding an existing rule is not an error.
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	if role == "" || resource == "" || action == "" {
		return domain.ErrInvalidInput
	}
	if _, err := p.enforcer.AddPolicy(role, resource, action); err != nil {
		return fmt.Errorf("failed to add policy: %w", err)
	}
	return nil
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	if _, err := p.enforcer.RemovePolicy(role, resource, action); err != nil {
		return fmt.Errorf("failed to remove policy: %w", err)
	}
	return nil
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// GetPolicies implements domain.PolicyService
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, _ := p.enforcer.GetPolicy()
	return policies
}

// DefaultPolicies are the rules every deployment starts with.
// role_owner rules are combined with an ownership check in the HTTP layer.
var DefaultPolicies = [][]string{
	{"role_admin", "/admin/*", "GET|POST|PUT|DELETE"},
	{"role_user", "/api/me", "GET"},
	{"role_user", "/api/logout", "POST"},
	{"role_admin", "/api/me", "GET"},
	{"role_admin", "/api/logout", "POST"},
	{"role_owner", "/api/getCollection/:userId", "GET"},
	{"role_owner", "/api/addNewCollection", "POST"},
	{"role_owner", "/api/profile/:userId", "GET"},
}

// SeedPolicies adds every rule in policies
func SeedPolicies(svc domain.PolicyService, policies [][]string) error {
	for _, p := range policies {
		if len(p) != 3 {
			return fmt.Errorf("policy %v: %w", p, domain.ErrInvalidInput)
		}
		if err := svc.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	return nil
}
