package identity

import (
	"regexp"
	"strings"

	"github.com/opsuite/backend/internal/domain/shared"
)

// TenantPlan represents the subscription plan of a tenant
type TenantPlan string

const (
	// TenantPlanFree is the free tier
	TenantPlanFree TenantPlan = "free"
	// TenantPlanPro is the paid tier
	TenantPlanPro TenantPlan = "pro"
)

// IsValid returns true if the plan is a known plan
func (p TenantPlan) IsValid() bool {
	switch p {
	case TenantPlanFree, TenantPlanPro:
		return true
	}
	return false
}

// String returns the string representation of TenantPlan
func (p TenantPlan) String() string {
	return string(p)
}

// ExpiredLotPolicy governs how a tenant treats allocations that touch
// already-expired lots at checkout.
type ExpiredLotPolicy string

const (
	// ExpiredLotPolicyBlock rejects any allocation touching an expired lot
	ExpiredLotPolicyBlock ExpiredLotPolicy = "BLOCK"
	// ExpiredLotPolicyJustify allows the allocation only with a justification text
	ExpiredLotPolicyJustify ExpiredLotPolicy = "JUSTIFY"
	// ExpiredLotPolicyFree allows the allocation freely, but still audits it
	ExpiredLotPolicyFree ExpiredLotPolicy = "FREE"
)

// IsValid returns true if the policy is a known policy
func (p ExpiredLotPolicy) IsValid() bool {
	switch p {
	case ExpiredLotPolicyBlock, ExpiredLotPolicyJustify, ExpiredLotPolicyFree:
		return true
	}
	return false
}

// String returns the string representation of ExpiredLotPolicy
func (p ExpiredLotPolicy) String() string {
	return string(p)
}

// AllExpiredLotPolicies returns all valid expired-lot policies
func AllExpiredLotPolicies() []ExpiredLotPolicy {
	return []ExpiredLotPolicy{
		ExpiredLotPolicyBlock,
		ExpiredLotPolicyJustify,
		ExpiredLotPolicyFree,
	}
}

// Tenant represents a company using the suite. All catalog, inventory,
// sales and finance data is scoped to a tenant.
type Tenant struct {
	shared.BaseEntity
	Code             string
	Name             string
	Plan             TenantPlan
	Active           bool
	ExpiredLotPolicy ExpiredLotPolicy
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display name to a tenant code
func Slugify(name string) string {
	code := strings.ToLower(strings.TrimSpace(name))
	code = slugInvalidChars.ReplaceAllString(code, "-")
	return strings.Trim(code, "-")
}

// NewTenant creates an active tenant with the default expired-lot policy
func NewTenant(name, code string) (*Tenant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "tenant name is required")
	}
	if code == "" {
		code = Slugify(name)
	}
	if code == "" {
		return nil, shared.NewDomainError(shared.CodeValidation, "tenant code is required")
	}
	return &Tenant{
		BaseEntity:       shared.NewBaseEntity(),
		Code:             code,
		Name:             name,
		Plan:             TenantPlanFree,
		Active:           true,
		ExpiredLotPolicy: ExpiredLotPolicyJustify,
	}, nil
}

// SetExpiredLotPolicy changes how checkout treats expired lots for this tenant
func (t *Tenant) SetExpiredLotPolicy(policy ExpiredLotPolicy) error {
	if !policy.IsValid() {
		return shared.NewDomainError(shared.CodeValidation, "unknown expired-lot policy: "+string(policy))
	}
	t.ExpiredLotPolicy = policy
	return nil
}

// Deactivate marks the tenant as inactive
func (t *Tenant) Deactivate() {
	t.Active = false
}
