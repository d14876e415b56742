package entity

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateReminder is returned when a reminder for a (lead, rule) pair
// already exists. The pair is unique in the database.
var ErrDuplicateReminder = errors.New("reminder already sent for this lead and rule")

// SentReminder is the append-only audit record that keeps the follow-up
// scanner idempotent: at most one reminder per (lead, rule) pair, whether
// the dispatch succeeded or not. Failed dispatches are never retried.
type SentReminder struct {
	ID           string    `json:"id"`
	LeadID       string    `json:"lead_id"`
	RuleID       string    `json:"rule_id"`
	Channel      Channel   `json:"channel"`
	SentAt       time.Time `json:"sent_at"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message,omitempty"`
	MessageBody  string    `json:"message_body,omitempty"`
}

type SentReminderRepositoryInterface interface {
	Create(ctx context.Context, rem *SentReminder) error
	ListByLead(ctx context.Context, leadID string) ([]*SentReminder, error)
	ListAll(ctx context.Context) ([]*SentReminder, error)
}
