package domain

import (
	"fmt"
	"time"

	"github.com/opsdesk/requisition_backend/internal/apperrors"
)

// TransitionPlan is the computed effect of a requested status change: the
// fields to set on the stored requisition plus whether the outcome warrants a
// notification. It carries no side effects itself.
type TransitionPlan struct {
	Status            RequisitionStatus
	ApprovedOn        *time.Time
	RejectedOn        *time.Time
	Comment           *string
	ApprovedByFinance *PrincipalSnapshot
	Notify            bool
}

// PlanTransition maps a requested status change plus the acting principal to
// the update it implies.
//
// Any authenticated principal may request any of the five statuses; the
// original system does not restrict the transition itself, only the finance
// stamp. Tightening that is a pending product decision (see DESIGN.md).
func PlanTransition(requested RequisitionStatus, actor Principal, comment string, now time.Time) (TransitionPlan, error) {
	if !requested.IsValid() {
		return TransitionPlan{}, fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, requested)
	}

	plan := TransitionPlan{Status: requested}

	switch requested {
	case StatusApproved:
		plan.ApprovedOn = &now
		if actor.IsFinance() || actor.HasRole(AdminRole) {
			snap := actor.Snapshot()
			plan.ApprovedByFinance = &snap
		}
	case StatusRejected:
		plan.RejectedOn = &now
	}

	if comment != "" {
		plan.Comment = &comment
	}

	plan.Notify = requested == StatusApproved || requested == StatusRejected
	return plan, nil
}
