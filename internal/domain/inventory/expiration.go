package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// ExpirySeverity classifies how urgent a lot's expiration is. Only
// SeverityImmediate (already expired) ever gates a sale; the warning bands
// exist for audit categorization and UI hints.
type ExpirySeverity string

const (
	// SeverityImmediate means the lot is already expired
	SeverityImmediate ExpirySeverity = "IMMEDIATE"
	// SeverityWarning7Days means the lot expires within 7 days
	SeverityWarning7Days ExpirySeverity = "WARNING_7_DAYS"
	// SeverityWarning15Days means the lot expires within 15 days
	SeverityWarning15Days ExpirySeverity = "WARNING_15_DAYS"
	// SeverityNotice means the lot expires later but within the lookahead window
	SeverityNotice ExpirySeverity = "NOTICE"
	// SeverityNone means no expiration concern
	SeverityNone ExpirySeverity = "NONE"
)

// String returns the string representation of ExpirySeverity
func (s ExpirySeverity) String() string {
	return string(s)
}

// Gates returns true if this severity blocks or requires justification
// under a restrictive policy. Only already-expired lots gate.
func (s ExpirySeverity) Gates() bool {
	return s == SeverityImmediate
}

// Severity band thresholds, in days until expiry.
const (
	nearTermWarningDays = 7
	advanceWarningDays  = 15
	noticeLookaheadDays = 30
)

// ClassifySeverity bands a lot's expiration relative to the given date
func ClassifySeverity(lot *Lot, asOf time.Time) ExpirySeverity {
	days, ok := lot.DaysUntilExpiry(asOf)
	if !ok {
		return SeverityNone
	}
	switch {
	case lot.IsExpiredAt(asOf):
		return SeverityImmediate
	case days <= nearTermWarningDays:
		return SeverityWarning7Days
	case days <= advanceWarningDays:
		return SeverityWarning15Days
	case days <= noticeLookaheadDays:
		return SeverityNotice
	default:
		return SeverityNone
	}
}

// ExpiryWarning describes one planned lot with an expiration concern
type ExpiryWarning struct {
	LotID     uuid.UUID
	LotCode   string
	ProductID uuid.UUID
	ExpiresAt *time.Time
	Quantity  decimal.Decimal
	Severity  ExpirySeverity
}

// EvaluatePlan inspects an allocation plan and returns one warning per
// planned lot whose expiration falls inside a severity band as of the
// sale's effective date.
func EvaluatePlan(plan *AllocationPlan, asOf time.Time) []ExpiryWarning {
	warnings := make([]ExpiryWarning, 0)
	for i := range plan.Entries {
		entry := &plan.Entries[i]
		severity := ClassifySeverity(&entry.Lot, asOf)
		if severity == SeverityNone {
			continue
		}
		warnings = append(warnings, ExpiryWarning{
			LotID:     entry.Lot.ID,
			LotCode:   entry.Lot.DisplayCode(),
			ProductID: entry.Lot.ProductID,
			ExpiresAt: entry.Lot.ExpiresAt,
			Quantity:  entry.Quantity,
			Severity:  severity,
		})
	}
	return warnings
}

// ExpiredOnly filters warnings down to the gating band
func ExpiredOnly(warnings []ExpiryWarning) []ExpiryWarning {
	expired := make([]ExpiryWarning, 0)
	for _, w := range warnings {
		if w.Severity.Gates() {
			expired = append(expired, w)
		}
	}
	return expired
}

// GateDecision is the outcome of running the expiration policy gate over
// an allocation plan.
type GateDecision struct {
	// RequiresOverride is true when the sale may proceed but must leave an
	// override audit record.
	RequiresOverride bool
	// RequiresJustification is true when the tenant policy demands a
	// justification text for this plan (reported by pre-check).
	RequiresJustification bool
	// ExpiredLots are the already-expired lots in the plan
	ExpiredLots []ExpiryWarning
}

// ApplyExpiredLotPolicy runs the tenant's expired-lot policy over the
// warnings of an allocation plan:
//
//   - BLOCK: any expired lot rejects the operation with ExpiredLotBlockedError.
//   - JUSTIFY: expired lots require a justification text; absent one, the
//     operation is rejected with JustificationRequiredError. With it, the
//     sale proceeds and is flagged for an override record.
//   - FREE: the sale always proceeds, but expired lots still flag an
//     override record for audit visibility.
//
// If no planned lot is already expired the gate is a no-op regardless of
// policy.
func ApplyExpiredLotPolicy(policy identity.ExpiredLotPolicy, warnings []ExpiryWarning, justification string) (*GateDecision, error) {
	expired := ExpiredOnly(warnings)
	if len(expired) == 0 {
		return &GateDecision{}, nil
	}

	switch policy {
	case identity.ExpiredLotPolicyBlock:
		return nil, &ExpiredLotBlockedError{Lots: expired}
	case identity.ExpiredLotPolicyJustify:
		if justification == "" {
			return nil, &JustificationRequiredError{Lots: expired}
		}
		return &GateDecision{
			RequiresOverride:      true,
			RequiresJustification: true,
			ExpiredLots:           expired,
		}, nil
	case identity.ExpiredLotPolicyFree:
		return &GateDecision{
			RequiresOverride: true,
			ExpiredLots:      expired,
		}, nil
	default:
		// Unknown policies fall back to the most restrictive behavior.
		return nil, &ExpiredLotBlockedError{Lots: expired}
	}
}
