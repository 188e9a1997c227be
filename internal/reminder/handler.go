package reminder

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/clinicabrunoquintela/clinica-gestao-sub000/pkg/logging"
)

// Handler handles HTTP requests for reminders
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a new reminder handler
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// CreateReminderRequest is the payload for POST /reminders.
type CreateReminderRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueAt       time.Time `json:"due_at"`
	LeadMinutes int       `json:"lead_minutes"`
	Channel     Channel   `json:"channel"`
	RecipientID uuid.UUID `json:"recipient_id"`
	CreatorID   uuid.UUID `json:"creator_id"`
}

// Create handles POST /reminders requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Channel == "" {
		req.Channel = ChannelInApp
	}

	rem := &Reminder{
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
		LeadMinutes: req.LeadMinutes,
		Channel:     req.Channel,
		RecipientID: req.RecipientID,
		CreatorID:   req.CreatorID,
	}
	if err := h.store.Create(r.Context(), rem); err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info("reminder created",
		"id", rem.ID,
		"channel", rem.Channel,
		"due_at", rem.DueAt,
		"lead_minutes", rem.LeadMinutes,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rem)
}

// ListPendingResponse is the response for listing pending reminders.
type ListPendingResponse struct {
	Reminders []Reminder `json:"reminders"`
	Count     int        `json:"count"`
}

// ListPending handles GET /reminders/pending?recipient_id= requests, the
// in-app badge read side.
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	recipientID, err := uuid.Parse(r.URL.Query().Get("recipient_id"))
	if err != nil {
		http.Error(w, "missing or invalid recipient_id", http.StatusBadRequest)
		return
	}

	reminders, err := h.store.ListPendingForRecipient(r.Context(), recipientID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if reminders == nil {
		reminders = []Reminder{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListPendingResponse{Reminders: reminders, Count: len(reminders)})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrInvalidChannel), errors.Is(err, ErrInvalidLead):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrReminderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Error("reminder request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
