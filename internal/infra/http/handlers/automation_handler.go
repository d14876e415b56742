package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/barsaude-crm/internal/entity"
	"github.com/xavierca1/barsaude-crm/internal/infra/config"
)

// AutomationHandler is the admin CRUD surface for follow-up rules. Script
// keys are checked against the template table at save time so a rule can
// never reference a missing script.
type AutomationHandler struct {
	Rules     entity.AutomationRuleRepositoryInterface
	Templates *config.TemplateTable
}

func NewAutomationHandler(rules entity.AutomationRuleRepositoryInterface, templates *config.TemplateTable) *AutomationHandler {
	return &AutomationHandler{Rules: rules, Templates: templates}
}

type ruleRequest struct {
	Name          string `json:"name"`
	TriggerStatus string `json:"trigger_status"`
	DayOffset     int    `json:"day_offset"`
	Channel       string `json:"channel"`
	ScriptKey     string `json:"script_key"`
	CustomText    string `json:"custom_text"`
	Enabled       *bool  `json:"enabled"`
}

func (h *AutomationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	rules, err := h.Rules.List(r.Context(), false)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"rules": rules})
}

func (h *AutomationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRule(w, r)
	if !ok {
		return
	}

	status, err := entity.ParseLeadStatus(req.TriggerStatus)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	channel, err := entity.ParseChannel(req.Channel)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	rule, err := entity.NewAutomationRule(req.Name, status, req.DayOffset, channel, req.ScriptKey, req.CustomText)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}

	if err := h.Rules.Create(r.Context(), rule); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, rule)
}

func (h *AutomationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ruleID := chi.URLParam(r, "ruleId")

	rule, err := h.Rules.FindByID(r.Context(), ruleID)
	if err != nil {
		if err == entity.ErrRuleNotFound {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "rule not found"})
			return
		}
		respondError(w, err)
		return
	}

	req, ok := h.decodeRule(w, r)
	if !ok {
		return
	}

	if req.TriggerStatus != "" {
		status, err := entity.ParseLeadStatus(req.TriggerStatus)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		rule.TriggerStatus = status
	}
	if req.Channel != "" {
		channel, err := entity.ParseChannel(req.Channel)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		rule.Channel = channel
	}
	if req.Name != "" {
		rule.Name = req.Name
	}
	rule.DayOffset = req.DayOffset
	rule.ScriptKey = req.ScriptKey
	rule.CustomText = req.CustomText
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}

	if err := rule.Validate(); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if rule.ScriptKey != "" && !h.Templates.Has(rule.ScriptKey) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown script key " + rule.ScriptKey})
		return
	}

	if err := h.Rules.Update(r.Context(), rule); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rule)
}

func (h *AutomationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ruleID := chi.URLParam(r, "ruleId")

	if err := h.Rules.Delete(r.Context(), ruleID); err != nil {
		if err == entity.ErrRuleNotFound {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "rule not found"})
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AutomationHandler) decodeRule(w http.ResponseWriter, r *http.Request) (ruleRequest, bool) {
	var req ruleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return req, false
	}

	if req.ScriptKey != "" && !h.Templates.Has(req.ScriptKey) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown script key " + req.ScriptKey})
		return req, false
	}

	return req, true
}
