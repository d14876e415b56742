package handlers

import (
	"net/http"

	"github.com/xavierca1/barsaude-crm/internal/entity"
)

// ReminderHandler exposes the sent-reminder audit trail.
type ReminderHandler struct {
	Reminders entity.SentReminderRepositoryInterface
}

func NewReminderHandler(reminders entity.SentReminderRepositoryInterface) *ReminderHandler {
	return &ReminderHandler{Reminders: reminders}
}

func (h *ReminderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leadID := r.URL.Query().Get("lead_id")

	var (
		reminders []*entity.SentReminder
		err       error
	)
	if leadID != "" {
		reminders, err = h.Reminders.ListByLead(r.Context(), leadID)
	} else {
		reminders, err = h.Reminders.ListAll(r.Context())
	}
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"reminders": reminders})
}
