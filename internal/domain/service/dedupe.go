package service

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// DuplicateDetector – confidence-graded duplicate tradeline detection
// ---------------------------------------------------------------------------
//
// Detection is pairwise over the unexcluded tradelines: O(n²) by design, so
// every pair is tested against the full predicate ladder and results stay
// deterministic for a given input set.

// Matching tolerances. Balance tolerance is the larger of $25 absolute or 1%
// relative; payment tolerance the larger of $5 absolute or 1% relative.
const (
	balanceToleranceAbs = 25.0
	balanceToleranceRel = 0.01
	paymentToleranceAbs = 5.0
	paymentToleranceRel = 0.01

	// summaryChildRatio: a servicer-level summary line is recognized when
	// the largest balance covers at least 80% of the sum of the smaller
	// lines. Credit reports often double-count itemized student loans under
	// one summary tradeline.
	summaryChildRatio = 0.80
)

// Group types.
const (
	GroupTypeStudentSummaryChild = "STUDENT_SUMMARY_CHILD"
	GroupTypeGeneral             = "GENERAL"
)

// Confidence grades.
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// Member roles.
const (
	RoleSummary = "SUMMARY"
	RoleChild   = "CHILD"
	RoleKeep    = "KEEP"
	RoleRemove  = "REMOVE"
)

// Recommended actions.
const (
	ActionExcludeSummary = "EXCLUDE_SUMMARY_KEEP_CHILDREN"
	ActionRemoveLower    = "REMOVE_LOWER_BALANCE"
)

// GroupMember ties a tradeline to its role within a duplicate group.
type GroupMember struct {
	TradelineID string
	Role        string
}

// DuplicateGroup is one detected set of potentially duplicated tradelines.
// Groups are ephemeral per run; resolution state lives on the tradelines.
type DuplicateGroup struct {
	ID                string
	GroupType         string
	Confidence        string
	ReasonCode        string
	RecommendedAction string
	Members           []GroupMember
	Resolved          bool
}

// DuplicateDetector finds duplicate tradelines in two passes: a student-loan
// summary/child pass grouped by servicer, then a general pairwise pass.
type DuplicateDetector struct{}

// NewDuplicateDetector returns a new detector instance.
func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{}
}

// Detect returns the duplicate groups found in the given tradelines. Any
// tradeline that already carries a dedupe decision is ignored, so excluded
// lines and user keep-both overrides never re-enter detection. Output
// ordering is deterministic for a given input (group IDs aside, which are
// freshly generated each run).
func (d *DuplicateDetector) Detect(tradelines []model.Tradeline) []DuplicateGroup {
	active := make([]model.Tradeline, 0, len(tradelines))
	for _, t := range tradelines {
		if t.DedupeAction().Equal(valueobject.DedupeActionNone) {
			active = append(active, t)
		}
	}
	// Deterministic processing order regardless of caller ordering.
	sort.Slice(active, func(i, j int) bool { return active[i].ID() < active[j].ID() })

	processed := make(map[string]bool, len(active))
	var groups []DuplicateGroup

	groups = append(groups, d.studentSummaryPass(active, processed)...)
	groups = append(groups, d.generalPairwisePass(active, processed)...)

	return groups
}

// studentSummaryPass groups student-loan tradelines by normalized servicer
// name and flags servicer-level summary lines that duplicate the itemized
// loans beneath them.
func (d *DuplicateDetector) studentSummaryPass(active []model.Tradeline, processed map[string]bool) []DuplicateGroup {
	byServicer := make(map[string][]model.Tradeline)
	var servicers []string
	for _, t := range active {
		if !t.DebtType().Equal(valueobject.DebtTypeStudentLoan) {
			continue
		}
		key := normalizeCreditor(t.Creditor())
		if _, seen := byServicer[key]; !seen {
			servicers = append(servicers, key)
		}
		byServicer[key] = append(byServicer[key], t)
	}
	sort.Strings(servicers)

	var groups []DuplicateGroup
	for _, servicer := range servicers {
		lines := byServicer[servicer]
		if len(lines) < 2 {
			continue
		}

		// Largest balance first; ID breaks ties for determinism.
		sort.Slice(lines, func(i, j int) bool {
			if !lines[i].Balance().Equal(lines[j].Balance()) {
				return lines[i].Balance().GreaterThan(lines[j].Balance())
			}
			return lines[i].ID() < lines[j].ID()
		})

		summary := lines[0]
		children := lines[1:]
		childSum := decimal.Zero
		for _, c := range children {
			childSum = childSum.Add(c.Balance())
		}

		if !looksLikeSummaryLine(summary.Balance(), childSum) {
			continue
		}

		members := make([]GroupMember, 0, len(lines))
		members = append(members, GroupMember{TradelineID: summary.ID(), Role: RoleSummary})
		for _, c := range children {
			members = append(members, GroupMember{TradelineID: c.ID(), Role: RoleChild})
		}
		for _, l := range lines {
			processed[l.ID()] = true
		}

		groups = append(groups, DuplicateGroup{
			ID:                uuid.New().String(),
			GroupType:         GroupTypeStudentSummaryChild,
			Confidence:        ConfidenceMedium,
			ReasonCode:        "SERVICER_SUMMARY_COVERS_CHILD_BALANCES",
			RecommendedAction: ActionExcludeSummary,
			Members:           members,
		})
	}
	return groups
}

// looksLikeSummaryLine holds when the largest balance is within tolerance of
// the children's sum or covers at least summaryChildRatio of it.
func looksLikeSummaryLine(largest, childSum decimal.Decimal) bool {
	if childSum.LessThanOrEqual(decimal.Zero) {
		return false
	}
	if balancesWithinTolerance(largest, childSum) {
		return true
	}
	threshold := childSum.Mul(decimal.NewFromFloat(summaryChildRatio))
	return largest.GreaterThanOrEqual(threshold)
}

// generalPairwisePass tests every unprocessed pair against the predicate
// ladder, highest-precedence rule first.
func (d *DuplicateDetector) generalPairwisePass(active []model.Tradeline, processed map[string]bool) []DuplicateGroup {
	var groups []DuplicateGroup

	for i := 0; i < len(active); i++ {
		if processed[active[i].ID()] {
			continue
		}
		for j := i + 1; j < len(active); j++ {
			if processed[active[i].ID()] || processed[active[j].ID()] {
				continue
			}

			a, b := active[i], active[j]
			confidence, reason := matchConfidence(a, b)
			if confidence == "" {
				continue
			}

			keep, remove := a, b
			if b.Balance().GreaterThan(a.Balance()) {
				keep, remove = b, a
			}

			processed[a.ID()] = true
			processed[b.ID()] = true
			groups = append(groups, DuplicateGroup{
				ID:                uuid.New().String(),
				GroupType:         GroupTypeGeneral,
				Confidence:        confidence,
				ReasonCode:        reason,
				RecommendedAction: ActionRemoveLower,
				Members: []GroupMember{
					{TradelineID: keep.ID(), Role: RoleKeep},
					{TradelineID: remove.ID(), Role: RoleRemove},
				},
			})
		}
	}
	return groups
}

// matchConfidence applies the tightening criteria in precedence order and
// returns the confidence grade plus reason code, or empty when no rule
// matches.
func matchConfidence(a, b model.Tradeline) (string, string) {
	if a.AccountHash() != "" && a.AccountHash() == b.AccountHash() {
		return ConfidenceHigh, "ACCOUNT_HASH_MATCH"
	}

	sameCreditor := normalizeCreditor(a.Creditor()) == normalizeCreditor(b.Creditor())
	balanceClose := balancesWithinTolerance(a.Balance(), b.Balance())

	if a.AccountLast4() != "" && a.AccountLast4() == b.AccountLast4() && sameCreditor && balanceClose {
		return ConfidenceHigh, "LAST4_CREDITOR_BALANCE_MATCH"
	}
	if sameCreditor && balanceClose &&
		paymentsWithinTolerance(a.ReportedPayment(), b.ReportedPayment()) {
		return ConfidenceMedium, "CREDITOR_BALANCE_PAYMENT_MATCH"
	}
	if sameCreditor && balanceClose {
		return ConfidenceLow, "CREDITOR_BALANCE_MATCH"
	}
	return "", ""
}

// balancesWithinTolerance: |a-b| <= max($25, 1% of the larger balance).
func balancesWithinTolerance(a, b decimal.Decimal) bool {
	return withinTolerance(a, b, balanceToleranceAbs, balanceToleranceRel)
}

// paymentsWithinTolerance: |a-b| <= max($5, 1% of the larger payment).
func paymentsWithinTolerance(a, b decimal.Decimal) bool {
	return withinTolerance(a, b, paymentToleranceAbs, paymentToleranceRel)
}

func withinTolerance(a, b decimal.Decimal, abs, rel float64) bool {
	diff := a.Sub(b).Abs()
	larger := decimal.Max(a.Abs(), b.Abs())
	tolerance := decimal.Max(decimal.NewFromFloat(abs), larger.Mul(decimal.NewFromFloat(rel)))
	return diff.LessThanOrEqual(tolerance)
}

// normalizeCreditor lowercases and strips everything but letters and digits
// so "Navient LLC" and "NAVIENT, L.L.C." compare equal.
func normalizeCreditor(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
