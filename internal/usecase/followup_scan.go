package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/barsaude-crm/internal/entity"
	"github.com/xavierca1/barsaude-crm/internal/infra/config"
)

// FollowUpUseCase is one tick of the follow-up automation: cross-reference
// leads, enabled rules, status history and already-sent reminders, and
// dispatch whatever became due. At most one reminder ever exists per
// (lead, rule) pair, success or not — failed dispatches are recorded and
// never retried.
type FollowUpUseCase struct {
	Leads     entity.LeadRepositoryInterface
	Rules     entity.AutomationRuleRepositoryInterface
	History   entity.StatusChangeRepositoryInterface
	Reminders entity.SentReminderRepositoryInterface
	Mail      EmailService
	Preparer  MessagePreparer
	Templates TemplateResolver
	Clock     Clock
}

func NewFollowUpUseCase(
	leads entity.LeadRepositoryInterface,
	rules entity.AutomationRuleRepositoryInterface,
	history entity.StatusChangeRepositoryInterface,
	reminders entity.SentReminderRepositoryInterface,
	mail EmailService,
	preparer MessagePreparer,
	templates TemplateResolver,
	clock Clock,
) *FollowUpUseCase {
	if clock == nil {
		clock = SystemClock{}
	}
	return &FollowUpUseCase{
		Leads:     leads,
		Rules:     rules,
		History:   history,
		Reminders: reminders,
		Mail:      mail,
		Preparer:  preparer,
		Templates: templates,
		Clock:     clock,
	}
}

func (uc *FollowUpUseCase) Scan(ctx context.Context) (ScanReport, error) {
	var report ScanReport

	leads, _, err := uc.Leads.List(ctx, entity.LeadFilter{})
	if err != nil {
		return report, NewPersistenceError("load leads", err)
	}

	rules, err := uc.Rules.List(ctx, true)
	if err != nil {
		return report, NewPersistenceError("load automation rules", err)
	}
	if len(rules) == 0 {
		return report, nil
	}

	history, err := uc.History.ListAll(ctx)
	if err != nil {
		return report, NewPersistenceError("load status history", err)
	}

	sent, err := uc.Reminders.ListAll(ctx)
	if err != nil {
		return report, NewPersistenceError("load sent reminders", err)
	}

	alreadySent := make(map[string]bool, len(sent))
	for _, rem := range sent {
		alreadySent[rem.LeadID+"|"+rem.RuleID] = true
	}

	now := uc.Clock.Now()

	for _, lead := range leads {
		for _, rule := range rules {
			if lead.Status != rule.TriggerStatus {
				continue
			}
			report.Evaluated++

			// Baseline: the most recent entry into the triggering status.
			// Without one there is nothing to measure elapsed time from.
			baseline := entity.LatestChangeAt(history, lead.ID, rule.TriggerStatus)
			if baseline == nil {
				continue
			}

			elapsedDays := int(now.Sub(baseline.ChangedAt).Hours() / 24)
			if elapsedDays < rule.DayOffset {
				continue
			}

			if alreadySent[lead.ID+"|"+rule.ID] {
				continue
			}

			rem := uc.dispatch(lead, rule, now)
			if err := uc.Reminders.Create(ctx, rem); err != nil {
				if errors.Is(err, entity.ErrDuplicateReminder) {
					// Another instance recorded it first; fine either way.
					continue
				}
				logrus.WithError(err).WithFields(logrus.Fields{
					"lead_id": lead.ID,
					"rule_id": rule.ID,
				}).Error("failed to record sent reminder")
				continue
			}
			alreadySent[lead.ID+"|"+rule.ID] = true

			switch {
			case !rem.Success:
				report.Failed++
			case rule.Channel == entity.ChannelWhatsApp:
				report.Prepared++
			default:
				report.Dispatched++
			}
		}
	}

	return report, nil
}

// dispatch resolves the message body and pushes it through the rule's
// channel. It always returns a SentReminder to record, carrying the
// outcome.
func (uc *FollowUpUseCase) dispatch(lead *entity.Lead, rule *entity.AutomationRule, now time.Time) *entity.SentReminder {
	rem := &entity.SentReminder{
		LeadID:  lead.ID,
		RuleID:  rule.ID,
		Channel: rule.Channel,
		SentAt:  now,
	}

	subject, body, err := uc.resolveMessage(lead, rule)
	if err != nil {
		rem.ErrorMessage = err.Error()
		return rem
	}
	rem.MessageBody = body

	switch rule.Channel {
	case entity.ChannelEmail:
		if lead.Email == "" {
			rem.ErrorMessage = "lead has no email address"
			return rem
		}
		if err := uc.Mail.SendReminder(lead.Email, subject, body); err != nil {
			rem.ErrorMessage = err.Error()
			return rem
		}
		rem.Success = true

	case entity.ChannelWhatsApp:
		// No programmatic send for WhatsApp: stage a pre-filled message for
		// the salesperson instead.
		if lead.Phone == "" {
			rem.ErrorMessage = "lead has no phone number"
			return rem
		}
		prepared, err := uc.Preparer.Prepare(lead.Phone, body)
		if err != nil {
			rem.ErrorMessage = err.Error()
			return rem
		}
		rem.MessageBody = prepared.Body
		rem.Success = true

	default:
		rem.ErrorMessage = fmt.Sprintf("unknown channel %q", rule.Channel)
	}

	return rem
}

func (uc *FollowUpUseCase) resolveMessage(lead *entity.Lead, rule *entity.AutomationRule) (subject, body string, err error) {
	data := config.TemplateData{
		Name:          lead.Name,
		Establishment: lead.EstablishmentType,
		Phone:         lead.Phone,
	}

	if rule.CustomText != "" {
		return fmt.Sprintf("Follow-up: %s", rule.Name), substitutePlaceholders(rule.CustomText, data), nil
	}

	return uc.Templates.Resolve(rule.ScriptKey, data)
}

// Inline custom texts use simple tokens instead of Go templates: admins
// type them into a form field.
func substitutePlaceholders(text string, data config.TemplateData) string {
	return strings.NewReplacer(
		"{{nome}}", data.Name,
		"{{estabelecimento}}", data.Establishment,
		"{{telefone}}", data.Phone,
	).Replace(text)
}
