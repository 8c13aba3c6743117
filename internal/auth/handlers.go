package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/EmpoweredVote/DoseRight/internal/history"
	"github.com/EmpoweredVote/DoseRight/internal/middleware"
	"github.com/EmpoweredVote/DoseRight/internal/session"
	"github.com/EmpoweredVote/DoseRight/internal/utils"
	"go.uber.org/zap"
)

// StatsSource reports scan totals for the profile view.
type StatsSource interface {
	Stats(ctx context.Context, userID string) (history.Stats, error)
}

type Handler struct {
	svc        *Service
	store      *Store
	sessions   *session.Manager
	stats      StatsSource
	ratePerMin int
	lg         *zap.Logger
}

func NewHandler(store *Store, sessions *session.Manager, stats StatsSource, ratePerMin int, lg *zap.Logger) *Handler {
	return &Handler{
		svc:        NewService(store),
		store:      store,
		sessions:   sessions,
		stats:      stats,
		ratePerMin: ratePerMin,
		lg:         lg,
	}
}

type formPage struct {
	Page   string   `json:"page"`
	Fields []string `json:"fields"`
	Next   string   `json:"next,omitempty"`
}

type redirectResponse struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect"`
}

func (h *Handler) SignupPageHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, formPage{
		Page:   "signup",
		Fields: []string{"username", "email", "password", "confirm_password", "full_name"},
	})
}

func (h *Handler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	fields, err := utils.Fields(r)
	if err != nil {
		utils.WriteError(w, err, msgSignupFailed)
		return
	}

	u, err := h.svc.Signup(r.Context(), SignupInput{
		Username:        fields["username"],
		Email:           fields["email"],
		Password:        fields["password"],
		ConfirmPassword: fields["confirm_password"],
		FullName:        fields["full_name"],
	})
	if err != nil {
		h.logUnexpected("signup failed", err)
		utils.WriteError(w, err, msgSignupFailed)
		return
	}

	if _, err := h.sessions.Login(r.Context(), w, h.sessions.Current(r), u.ID, false); err != nil {
		h.lg.Error("signup session failed", zap.String("user_id", u.ID), zap.Error(err))
		utils.WriteError(w, err, msgSignupFailed)
		return
	}

	h.lg.Info("user signed up", zap.String("user_id", u.ID))
	utils.WriteJSONStatus(w, http.StatusCreated, redirectResponse{Success: true, Redirect: "/"})
}

func (h *Handler) LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, formPage{
		Page:   "login",
		Fields: []string{"username", "password", "remember"},
		Next:   middleware.SafeNext(r.URL.Query().Get("next"), ""),
	})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	fields, err := utils.Fields(r)
	if err != nil {
		utils.WriteError(w, err, msgLoginFailed)
		return
	}

	u, err := h.svc.Authenticate(r.Context(), fields["username"], fields["password"])
	if err != nil {
		h.logUnexpected("login failed", err)
		utils.WriteError(w, err, msgLoginFailed)
		return
	}

	remember := utils.Truthy(fields["remember"])
	if _, err := h.sessions.Login(r.Context(), w, h.sessions.Current(r), u.ID, remember); err != nil {
		h.lg.Error("login session failed", zap.String("user_id", u.ID), zap.Error(err))
		utils.WriteError(w, err, msgLoginFailed)
		return
	}

	next := r.URL.Query().Get("next")
	if next == "" {
		next = fields["next"]
	}
	utils.WriteJSON(w, redirectResponse{Success: true, Redirect: middleware.SafeNext(next, "/")})
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context(), w, h.sessions.Current(r)); err != nil {
		h.lg.Warn("logout failed", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type profileUser struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

type profileStats struct {
	TotalScans int64  `json:"total_scans"`
	LastScan   string `json:"last_scan"`
}

type profileResponse struct {
	User  profileUser  `json:"user"`
	Stats profileStats `json:"stats"`
}

func (h *Handler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.store.FindByID(r.Context(), userID)
	if errors.Is(err, ErrUserNotFound) {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}
	if err != nil {
		h.lg.Error("profile lookup failed", zap.String("user_id", userID), zap.Error(err))
		utils.WriteError(w, err, "Could not load profile")
		return
	}

	st, err := h.stats.Stats(r.Context(), userID)
	if err != nil {
		// The profile still renders without stats.
		h.lg.Warn("profile stats failed", zap.String("user_id", userID), zap.Error(err))
		st = history.Stats{}
	}

	resp := profileResponse{
		User: profileUser{
			Username:  u.Username,
			Email:     u.Current().Email,
			FullName:  u.FullName,
			CreatedAt: u.CreatedAt,
		},
		Stats: profileStats{TotalScans: st.TotalScans, LastScan: st.LastScanDate()},
	}
	utils.WriteJSON(w, resp)
}

func (h *Handler) logUnexpected(msg string, err error) {
	var ce *utils.ClientInputError
	if errors.As(err, &ce) {
		return
	}
	h.lg.Error(msg, zap.Error(err))
}
