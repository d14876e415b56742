package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrRuleNotFound = errors.New("automation rule not found")

type Channel string

const (
	ChannelEmail    Channel = "EMAIL"
	ChannelWhatsApp Channel = "WHATSAPP"
)

func (c Channel) Valid() bool {
	return c == ChannelEmail || c == ChannelWhatsApp
}

func ParseChannel(raw string) (Channel, error) {
	c := Channel(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid channel %q", raw)
	}
	return c, nil
}

// AutomationRule schedules a follow-up message for leads that sit in a
// status for too long. The message comes either from a named script in the
// template table or from CustomText.
type AutomationRule struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	TriggerStatus LeadStatus `json:"trigger_status"`
	DayOffset     int        `json:"day_offset"`
	Channel       Channel    `json:"channel"`
	ScriptKey     string     `json:"script_key,omitempty"`
	CustomText    string     `json:"custom_text,omitempty"`
	Enabled       bool       `json:"enabled"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func NewAutomationRule(name string, trigger LeadStatus, dayOffset int, channel Channel, scriptKey, customText string) (*AutomationRule, error) {
	rule := &AutomationRule{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(name),
		TriggerStatus: trigger,
		DayOffset:     dayOffset,
		Channel:       channel,
		ScriptKey:     strings.TrimSpace(scriptKey),
		CustomText:    strings.TrimSpace(customText),
		Enabled:       true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	return rule, nil
}

func (r *AutomationRule) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if !r.TriggerStatus.Valid() {
		return fmt.Errorf("invalid trigger status %q", r.TriggerStatus)
	}
	if r.DayOffset < 0 {
		return errors.New("day offset must not be negative")
	}
	if !r.Channel.Valid() {
		return fmt.Errorf("invalid channel %q", r.Channel)
	}
	if r.ScriptKey == "" && r.CustomText == "" {
		return errors.New("either script key or custom text is required")
	}
	return nil
}

type AutomationRuleRepositoryInterface interface {
	Create(ctx context.Context, rule *AutomationRule) error
	Update(ctx context.Context, rule *AutomationRule) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*AutomationRule, error)
	List(ctx context.Context, onlyEnabled bool) ([]*AutomationRule, error)
}
