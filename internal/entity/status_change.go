package entity

import (
	"context"
	"time"
)

// StatusChangeRecord is an append-only audit entry written every time a
// lead changes status. The follow-up scanner uses it as the baseline for
// "days since entering status X".
type StatusChangeRecord struct {
	ID          string     `json:"id"`
	LeadID      string     `json:"lead_id"`
	Status      LeadStatus `json:"status"`
	Salesperson string     `json:"salesperson,omitempty"`
	ChangedAt   time.Time  `json:"changed_at"`
}

type StatusChangeRepositoryInterface interface {
	Create(ctx context.Context, rec *StatusChangeRecord) error
	ListByLead(ctx context.Context, leadID string) ([]*StatusChangeRecord, error)
	ListAll(ctx context.Context) ([]*StatusChangeRecord, error)
}

// LatestChangeAt returns the most recent record for a lead at a given
// status, or nil when the lead never entered it.
func LatestChangeAt(records []*StatusChangeRecord, leadID string, status LeadStatus) *StatusChangeRecord {
	var latest *StatusChangeRecord
	for _, rec := range records {
		if rec.LeadID != leadID || rec.Status != status {
			continue
		}
		if latest == nil || rec.ChangedAt.After(latest.ChangedAt) {
			latest = rec
		}
	}
	return latest
}
