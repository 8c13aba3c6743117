package pages

import (
	"context"
	"net/http"

	"github.com/EmpoweredVote/DoseRight/internal/auth"
	"github.com/EmpoweredVote/DoseRight/internal/session"
	"github.com/EmpoweredVote/DoseRight/internal/utils"
	"go.uber.org/zap"
)

const AppName = "DoseRight"

// UserFinder resolves the logged-in user for the landing payload.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (auth.User, error)
}

type Handler struct {
	users UserFinder
	lg    *zap.Logger
}

func NewHandler(users UserFinder, lg *zap.Logger) *Handler {
	return &Handler{users: users, lg: lg}
}

type indexResponse struct {
	App         string            `json:"app"`
	CurrentUser *auth.CurrentUser `json:"current_user"`
}

// IndexHandler returns the landing payload. current_user is null for
// anonymous visitors.
func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	resp := indexResponse{App: AppName}

	if userID, ok := session.UserIDFromContext(r.Context()); ok {
		u, err := h.users.FindByID(r.Context(), userID)
		if err != nil {
			h.lg.Warn("current user lookup failed", zap.String("user_id", userID), zap.Error(err))
		} else {
			cu := u.Current()
			resp.CurrentUser = &cu
		}
	}

	utils.WriteJSON(w, resp)
}

type aboutResponse struct {
	App         string   `json:"app"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Disclaimer  string   `json:"disclaimer"`
}

func (h *Handler) AboutHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, aboutResponse{
		App:         AppName,
		Description: "Photograph a medicine to get a short summary of its uses, dosage and precautions.",
		Features: []string{
			"AI medicine recognition from photos",
			"Uses, dosage, precautions, side effects and food restrictions",
			"Tamil summary",
			"Scan history for signed-in users",
		},
		Disclaimer: "Information is generated automatically and is not medical advice. Always consult a doctor.",
	})
}

// HealthHandler reports liveness.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"})
}
