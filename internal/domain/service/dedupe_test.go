package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanworks/advisor/internal/domain/model"
	"github.com/loanworks/advisor/internal/domain/service"
	"github.com/loanworks/advisor/internal/domain/valueobject"
)

type tradelineSpec struct {
	creditor string
	debtType valueobject.DebtType
	balance  int64
	payment  int64
	last4    string
	hash     string
}

func makeTradeline(t *testing.T, spec tradelineSpec) model.Tradeline {
	t.Helper()
	tl, err := model.NewTradeline(
		"scenario-001", "tenant-001", spec.creditor,
		spec.debtType,
		decimal.NewFromInt(spec.balance), decimal.NewFromInt(spec.payment), decimal.Zero,
		spec.last4, spec.hash, "OPEN",
		false,
		time.Now(),
	)
	require.NoError(t, err)
	return tl
}

func roleOf(g service.DuplicateGroup, id string) string {
	for _, m := range g.Members {
		if m.TradelineID == id {
			return m.Role
		}
	}
	return ""
}

func TestDetect_AccountHashMatchIsHighConfidence(t *testing.T) {
	detector := service.NewDuplicateDetector()
	a := makeTradeline(t, tradelineSpec{creditor: "Chase", debtType: valueobject.DebtTypeRevolving, balance: 5_000, payment: 150, hash: "abc123"})
	b := makeTradeline(t, tradelineSpec{creditor: "Chase Bank NA", debtType: valueobject.DebtTypeRevolving, balance: 4_200, payment: 120, hash: "abc123"})

	groups := detector.Detect([]model.Tradeline{a, b})

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, service.GroupTypeGeneral, g.GroupType)
	assert.Equal(t, service.ConfidenceHigh, g.Confidence)
	assert.Equal(t, "ACCOUNT_HASH_MATCH", g.ReasonCode)
	assert.Equal(t, service.ActionRemoveLower, g.RecommendedAction)
	// The higher balance is kept.
	assert.Equal(t, service.RoleKeep, roleOf(g, a.ID()))
	assert.Equal(t, service.RoleRemove, roleOf(g, b.ID()))
}

func TestDetect_Last4CreditorBalanceMatch(t *testing.T) {
	detector := service.NewDuplicateDetector()
	a := makeTradeline(t, tradelineSpec{creditor: "Wells Fargo", debtType: valueobject.DebtTypeInstallment, balance: 12_000, payment: 250, last4: "4411"})
	b := makeTradeline(t, tradelineSpec{creditor: "WELLS FARGO BANK", debtType: valueobject.DebtTypeInstallment, balance: 12_020, payment: 310, last4: "4411"})

	groups := detector.Detect([]model.Tradeline{a, b})

	require.Len(t, groups, 1)
	assert.Equal(t, service.ConfidenceHigh, groups[0].Confidence)
	assert.Equal(t, "LAST4_CREDITOR_BALANCE_MATCH", groups[0].ReasonCode)
}

func TestDetect_CreditorBalancePaymentMatchIsMedium(t *testing.T) {
	detector := service.NewDuplicateDetector()
	a := makeTradeline(t, tradelineSpec{creditor: "Ally Financial", debtType: valueobject.DebtTypeInstallment, balance: 18_000, payment: 420})
	b := makeTradeline(t, tradelineSpec{creditor: "ALLY FINANCIAL INC", debtType: valueobject.DebtTypeInstallment, balance: 18_010, payment: 423})

	groups := detector.Detect([]model.Tradeline{a, b})

	require.Len(t, groups, 1)
	assert.Equal(t, service.ConfidenceMedium, groups[0].Confidence)
	assert.Equal(t, "CREDITOR_BALANCE_PAYMENT_MATCH", groups[0].ReasonCode)
}

func TestDetect_CreditorBalanceOnlyIsLow(t *testing.T) {
	detector := service.NewDuplicateDetector()
	a := makeTradeline(t, tradelineSpec{creditor: "Discover", debtType: valueobject.DebtTypeRevolving, balance: 3_000, payment: 90})
	b := makeTradeline(t, tradelineSpec{creditor: "DISCOVER BANK", debtType: valueobject.DebtTypeRevolving, balance: 3_010, payment: 150})

	groups := detector.Detect([]model.Tradeline{a, b})

	require.Len(t, groups, 1)
	assert.Equal(t, service.ConfidenceLow, groups[0].Confidence)
	assert.Equal(t, "CREDITOR_BALANCE_MATCH", groups[0].ReasonCode)
}

func TestDetect_BalanceToleranceBoundary(t *testing.T) {
	detector := service.NewDuplicateDetector()

	// $26 apart on a $1,000 balance exceeds max($25, 1%).
	a := makeTradeline(t, tradelineSpec{creditor: "Citi", debtType: valueobject.DebtTypeRevolving, balance: 1_000, payment: 40})
	b := makeTradeline(t, tradelineSpec{creditor: "CITI CARDS", debtType: valueobject.DebtTypeRevolving, balance: 1_026, payment: 40})
	assert.Empty(t, detector.Detect([]model.Tradeline{a, b}))

	// $24 apart is within tolerance.
	c := makeTradeline(t, tradelineSpec{creditor: "Citi", debtType: valueobject.DebtTypeRevolving, balance: 1_000, payment: 40})
	d := makeTradeline(t, tradelineSpec{creditor: "CITI CARDS", debtType: valueobject.DebtTypeRevolving, balance: 1_024, payment: 40})
	assert.Len(t, detector.Detect([]model.Tradeline{c, d}), 1)

	// On large balances the 1% relative tolerance governs: $500 apart on $60,000.
	e := makeTradeline(t, tradelineSpec{creditor: "Citi", debtType: valueobject.DebtTypeMortgage, balance: 60_000, payment: 400})
	f := makeTradeline(t, tradelineSpec{creditor: "CITI MORTGAGE", debtType: valueobject.DebtTypeMortgage, balance: 60_500, payment: 400})
	assert.Len(t, detector.Detect([]model.Tradeline{e, f}), 1)
}

func TestDetect_StudentSummaryChildGroup(t *testing.T) {
	detector := service.NewDuplicateDetector()
	summary := makeTradeline(t, tradelineSpec{creditor: "Navient", debtType: valueobject.DebtTypeStudentLoan, balance: 30_000, payment: 0})
	child1 := makeTradeline(t, tradelineSpec{creditor: "NAVIENT LLC", debtType: valueobject.DebtTypeStudentLoan, balance: 15_200, payment: 0})
	child2 := makeTradeline(t, tradelineSpec{creditor: "Navient, L.L.C.", debtType: valueobject.DebtTypeStudentLoan, balance: 14_600, payment: 0})

	groups := detector.Detect([]model.Tradeline{child1, summary, child2})

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, service.GroupTypeStudentSummaryChild, g.GroupType)
	assert.Equal(t, service.ConfidenceMedium, g.Confidence)
	assert.Equal(t, service.ActionExcludeSummary, g.RecommendedAction)
	assert.Equal(t, service.RoleSummary, roleOf(g, summary.ID()))
	assert.Equal(t, service.RoleChild, roleOf(g, child1.ID()))
	assert.Equal(t, service.RoleChild, roleOf(g, child2.ID()))
}

func TestDetect_SummaryNotFlaggedWhenBalancesDiverge(t *testing.T) {
	detector := service.NewDuplicateDetector()
	// Largest line covers only 50% of the other balances: independent loans.
	big := makeTradeline(t, tradelineSpec{creditor: "Navient", debtType: valueobject.DebtTypeStudentLoan, balance: 10_000, payment: 0})
	s1 := makeTradeline(t, tradelineSpec{creditor: "NAVIENT LLC", debtType: valueobject.DebtTypeStudentLoan, balance: 9_000, payment: 0})
	s2 := makeTradeline(t, tradelineSpec{creditor: "Navient, L.L.C.", debtType: valueobject.DebtTypeStudentLoan, balance: 11_000, payment: 0})

	groups := detector.Detect([]model.Tradeline{big, s1, s2})

	for _, g := range groups {
		assert.NotEqual(t, service.GroupTypeStudentSummaryChild, g.GroupType)
	}
}

func TestDetect_IgnoresExcludedTradelines(t *testing.T) {
	detector := service.NewDuplicateDetector()
	a := makeTradeline(t, tradelineSpec{creditor: "Chase", debtType: valueobject.DebtTypeRevolving, balance: 5_000, payment: 150, hash: "abc123"})
	b := makeTradeline(t, tradelineSpec{creditor: "Chase", debtType: valueobject.DebtTypeRevolving, balance: 4_900, payment: 150, hash: "abc123"})

	excluded, err := b.MarkAutoRemoved("group-1", time.Now())
	require.NoError(t, err)

	// Re-running after resolution finds nothing: detection is idempotent
	// against resolved state.
	assert.Empty(t, detector.Detect([]model.Tradeline{a, excluded}))
}

func TestDetect_IgnoresKeepBothOverrides(t *testing.T) {
	detector := service.NewDuplicateDetector()
	a := makeTradeline(t, tradelineSpec{creditor: "Chase", debtType: valueobject.DebtTypeRevolving, balance: 5_000, payment: 150, hash: "abc123"})
	b := makeTradeline(t, tradelineSpec{creditor: "Chase", debtType: valueobject.DebtTypeRevolving, balance: 4_900, payment: 150, hash: "abc123"})

	kept, err := b.OverrideKeepBoth("group-1", "Separate cards on a shared account.", time.Now())
	require.NoError(t, err)

	// The user's keep-both decision is final: the pair must not be flagged
	// again on subsequent runs even though the line still counts toward debt.
	assert.False(t, kept.Excluded())
	assert.Empty(t, detector.Detect([]model.Tradeline{a, kept}))
}

func TestDetect_DeterministicAcrossInputOrder(t *testing.T) {
	detector := service.NewDuplicateDetector()
	a := makeTradeline(t, tradelineSpec{creditor: "Chase", debtType: valueobject.DebtTypeRevolving, balance: 5_000, payment: 150, hash: "abc123"})
	b := makeTradeline(t, tradelineSpec{creditor: "Chase", debtType: valueobject.DebtTypeRevolving, balance: 4_900, payment: 150, hash: "abc123"})

	g1 := detector.Detect([]model.Tradeline{a, b})
	g2 := detector.Detect([]model.Tradeline{b, a})

	require.Len(t, g1, 1)
	require.Len(t, g2, 1)
	assert.Equal(t, g1[0].ReasonCode, g2[0].ReasonCode)
	assert.Equal(t, roleOf(g1[0], a.ID()), roleOf(g2[0], a.ID()))
	assert.Equal(t, roleOf(g1[0], b.ID()), roleOf(g2[0], b.ID()))
}

func TestDetect_NoFalsePositivesAcrossCreditors(t *testing.T) {
	detector := service.NewDuplicateDetector()
	a := makeTradeline(t, tradelineSpec{creditor: "Chase", debtType: valueobject.DebtTypeRevolving, balance: 5_000, payment: 150})
	b := makeTradeline(t, tradelineSpec{creditor: "Discover", debtType: valueobject.DebtTypeRevolving, balance: 5_000, payment: 150})

	assert.Empty(t, detector.Detect([]model.Tradeline{a, b}))
}
