package notes

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/studytube-app/studytube/internal/api"
	"github.com/studytube-app/studytube/internal/quota"
)

type Handler struct {
	svc      *Service
	validate *validator.Validate
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

type generateResponse struct {
	Notes *StudyNotesDocument `json:"notes"`
}

type quotaDeniedResponse struct {
	Error          string     `json:"error"`
	NotesRemaining int        `json:"notesRemaining"`
	Limit          int        `json:"limit"`
	Tier           quota.Tier `json:"tier"`
}

// Generate handles POST /api/generate-notes.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewBadRequestError(ErrInvalidReference.Error()))
		return
	}

	res, err := h.svc.Generate(r.Context(), &req)

	// The remaining-quota indicator is fixed at admission time and reported
	// on every admitted request, whatever happens afterwards.
	if res != nil && res.Admission != nil {
		w.Header().Set("X-Notes-Remaining", remainingAfter(res.Admission))
		w.Header().Set("X-User-Tier", string(res.Admission.Tier))
	}

	if err != nil {
		h.writeError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, generateResponse{Notes: res.Document})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var quotaErr *QuotaExceededError
	switch {
	case errors.As(err, &quotaErr):
		api.JSON(w, http.StatusForbidden, quotaDeniedResponse{
			Error:          quotaErr.Error(),
			NotesRemaining: quotaErr.Remaining,
			Limit:          quotaErr.Limit,
			Tier:           quotaErr.Tier,
		})
	case errors.Is(err, ErrMissingReference), errors.Is(err, ErrInvalidReference):
		api.JSONError(w, http.StatusBadRequest, err)
	default:
		slog.Error("generating notes", "error", err)
		api.JSONError(w, http.StatusInternalServerError, err)
	}
}

// QuotaStatus handles GET /api/quota.
func (h *Handler) QuotaStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		api.HandleError(w, api.NewBadRequestError("userId is required"))
		return
	}

	st, err := h.svc.QuotaStatus(r.Context(), userID)
	if err != nil {
		slog.Error("reading quota status", "error", err)
		api.JSONError(w, http.StatusInternalServerError, err)
		return
	}

	api.JSON(w, http.StatusOK, st)
}

// remainingAfter renders the X-Notes-Remaining header: the slots left once
// this request consumes its own.
func remainingAfter(adm *quota.Admission) string {
	if adm.Remaining == quota.Unlimited {
		return "unlimited"
	}
	left := adm.Remaining - 1
	if left < 0 {
		left = 0
	}
	return strconv.Itoa(left)
}
