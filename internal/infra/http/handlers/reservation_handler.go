package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/barsaude-crm/internal/infra/http/middleware"
	"github.com/xavierca1/barsaude-crm/internal/usecase"
)

type ReservationHandler struct {
	Reserve *usecase.ReserveLeadUseCase
}

func NewReservationHandler(reserve *usecase.ReserveLeadUseCase) *ReservationHandler {
	return &ReservationHandler{Reserve: reserve}
}

func (h *ReservationHandler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())
	leadID := chi.URLParam(r, "leadId")

	lead, err := h.Reserve.Claim(r.Context(), leadID, identity)
	if err != nil {
		if domainErr, ok := err.(*usecase.DomainError); ok && domainErr.Code == usecase.CodeLeadReserved {
			middleware.RecordReservationClaim("conflict")
		} else {
			middleware.RecordReservationClaim("error")
		}
		respondError(w, err)
		return
	}

	middleware.RecordReservationClaim("success")
	respondJSON(w, http.StatusOK, leadDetailResponse{
		Lead:        lead,
		Reservation: usecase.BuildReservationView(lead, identity.Email, time.Now()),
	})
}

func (h *ReservationHandler) HandleRelease(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFrom(r.Context())
	leadID := chi.URLParam(r, "leadId")

	if err := h.Reserve.Release(r.Context(), leadID, identity); err != nil {
		respondError(w, err)
		return
	}

	middleware.RecordReservationRelease()
	respondJSON(w, http.StatusNoContent, nil)
}
