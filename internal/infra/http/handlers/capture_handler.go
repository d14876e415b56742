package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/xavierca1/barsaude-crm/internal/entity"
	"github.com/xavierca1/barsaude-crm/internal/infra/http/middleware"
	"github.com/xavierca1/barsaude-crm/internal/usecase"
)

// CaptureHandler is the only public endpoint: the marketing-site lead form
// posts here. Rate limited per IP because it sits on the open internet.
type CaptureHandler struct {
	createLead  *usecase.CreateLeadUseCase
	rateLimiter *RateLimiter
}

func NewCaptureHandler(createLead *usecase.CreateLeadUseCase) *CaptureHandler {
	return &CaptureHandler{
		createLead:  createLead,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

type CaptureRequest struct {
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	City              string `json:"city"`
	EstablishmentType string `json:"establishment_type"`
	EmployeeBracket   string `json:"employee_bracket"`
}

type CaptureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (h *CaptureHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		respondJSON(w, http.StatusTooManyRequests, CaptureResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var req CaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, CaptureResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	input := usecase.CreateLeadInput{
		Name:              req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		City:              req.City,
		EstablishmentType: req.EstablishmentType,
		EmployeeBracket:   req.EmployeeBracket,
		Source:            entity.SourceSite,
	}

	if _, err := h.createLead.Execute(ctx, input); err != nil {
		if domainErr, ok := err.(*usecase.DomainError); ok {
			respondJSON(w, http.StatusBadRequest, CaptureResponse{
				Success: false,
				Message: domainErr.Message,
			})
			return
		}
		respondJSON(w, http.StatusInternalServerError, CaptureResponse{
			Success: false,
			Message: "Failed to capture lead",
		})
		return
	}

	middleware.RecordLeadCreated(entity.SourceSite)
	respondJSON(w, http.StatusOK, CaptureResponse{Success: true})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
