package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/barsaude-crm/internal/entity"
	"github.com/xavierca1/barsaude-crm/internal/infra/http/middleware"
	"github.com/xavierca1/barsaude-crm/internal/usecase"
)

type LeadHandler struct {
	Leads      entity.LeadRepositoryInterface
	History    entity.StatusChangeRepositoryInterface
	CreateLead *usecase.CreateLeadUseCase
	Manage     *usecase.ManageLeadUseCase
}

func NewLeadHandler(
	leads entity.LeadRepositoryInterface,
	history entity.StatusChangeRepositoryInterface,
	createLead *usecase.CreateLeadUseCase,
	manage *usecase.ManageLeadUseCase,
) *LeadHandler {
	return &LeadHandler{
		Leads:      leads,
		History:    history,
		CreateLead: createLead,
		Manage:     manage,
	}
}

type leadDetailResponse struct {
	*entity.Lead
	Reservation usecase.ReservationView `json:"reservation"`
}

type leadListResponse struct {
	Leads  []*leadDetailResponse `json:"leads"`
	Total  int                   `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())
	q := r.URL.Query()

	filter := entity.LeadFilter{
		Salesperson: q.Get("salesperson"),
		City:        q.Get("city"),
		Search:      q.Get("search"),
		SortBy:      q.Get("sort"),
		SortDesc:    q.Get("order") == "desc",
	}

	if raw := q.Get("status"); raw != "" {
		status, err := entity.ParseLeadStatus(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		filter.Status = status
	}

	filter.Limit = 50
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			filter.Limit = n
		}
	}
	if raw := q.Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			filter.Offset = n
		}
	}

	leads, total, err := h.Leads.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	now := time.Now()
	resp := leadListResponse{
		Leads:  make([]*leadDetailResponse, 0, len(leads)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for _, lead := range leads {
		resp.Leads = append(resp.Leads, &leadDetailResponse{
			Lead:        lead,
			Reservation: usecase.BuildReservationView(lead, identity.Email, now),
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())
	leadID := chi.URLParam(r, "leadId")

	lead, err := h.Leads.FindByID(r.Context(), leadID)
	if err != nil {
		if err == entity.ErrLeadNotFound {
			respondJSON(w, http.StatusNotFound, errorResponse{Error: "lead not found"})
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, leadDetailResponse{
		Lead:        lead,
		Reservation: usecase.BuildReservationView(lead, identity.Email, time.Now()),
	})
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	input.Source = entity.SourceManual

	lead, err := h.CreateLead.Execute(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.RecordLeadCreated(entity.SourceManual)
	respondJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadId")

	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	lead, err := h.Manage.Update(r.Context(), leadID, input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, lead)
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

func (h *LeadHandler) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())
	leadID := chi.URLParam(r, "leadId")

	var req changeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	status, err := entity.ParseLeadStatus(req.Status)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	lead, err := h.Manage.ChangeStatus(r.Context(), leadID, status, identity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, lead)
}

type setScoreRequest struct {
	Score int `json:"score"`
}

func (h *LeadHandler) HandleSetScore(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadId")

	var req setScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	if err := h.Manage.SetScore(r.Context(), leadID, req.Score); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *LeadHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadId")

	records, err := h.History.ListByLead(r.Context(), leadID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"history": records})
}

func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())
	leadID := chi.URLParam(r, "leadId")

	if err := h.Manage.Delete(r.Context(), leadID, identity); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (h *LeadHandler) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())

	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	deleted, err := h.Manage.BulkDelete(r.Context(), req.IDs, identity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
