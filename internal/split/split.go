// Package split implements the bill-splitting settlement calculator: the
// total of a group's shared expenses divided equally among its members.
package split

import (
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// Result holds the derived settlement figures for a group.
type Result struct {
	TotalAmount    float64 `json:"total_amount"`
	PerMemberShare float64 `json:"per_member_share"`
	MemberCount    int     `json:"member_count"`
}

// ComputeShares computes the equal per-member share of a group's expense
// total. A group with no members is an explicit error; the division is never
// allowed to produce Inf or NaN.
func ComputeShares(group *models.SplitGroup) (*Result, error) {
	if len(group.Members) == 0 {
		return nil, apperrors.ErrEmptyGroup
	}

	total := group.TotalAmount()
	return &Result{
		TotalAmount:    total,
		PerMemberShare: total / float64(len(group.Members)),
		MemberCount:    len(group.Members),
	}, nil
}

// PaidTotals sums, per member, the expenses that member paid for. Payers not
// present in the member list still appear; membership of paid_by is not
// enforced.
func PaidTotals(group *models.SplitGroup) map[string]float64 {
	paid := make(map[string]float64, len(group.Members))
	for _, m := range group.Members {
		paid[m] = 0
	}
	for _, e := range group.Expenses {
		paid[e.PaidBy] += e.Amount
	}
	return paid
}
