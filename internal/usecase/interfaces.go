package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/barsaude-crm/internal/infra/config"
	"github.com/xavierca1/barsaude-crm/internal/infra/queue"
)

// Clock abstracts wall-clock time so reservation and follow-up logic can be
// tested against fixed instants.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type EmailService interface {
	SendReminder(to, subject, body string) error
	SendWelcome(to, name string) error
}

// PreparedMessage is a chat follow-up staged for the salesperson to send by
// hand. There is no programmatic WhatsApp send in this design; Link opens a
// pre-filled conversation.
type PreparedMessage struct {
	Phone string `json:"phone"`
	Body  string `json:"body"`
	Link  string `json:"link"`
}

type MessagePreparer interface {
	Prepare(phone, body string) (PreparedMessage, error)
}

type TemplateResolver interface {
	Resolve(scriptKey string, data config.TemplateData) (subject, body string, err error)
}

type QueueProducerInterface interface {
	PublishLeadImport(ctx context.Context, payload queue.ImportPayload) error
}
