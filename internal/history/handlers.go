package history

import (
	"net/http"

	"github.com/EmpoweredVote/DoseRight/internal/session"
	"github.com/EmpoweredVote/DoseRight/internal/utils"
	"go.uber.org/zap"
)

type Handler struct {
	store *Store
	lg    *zap.Logger
}

func NewHandler(store *Store, lg *zap.Logger) *Handler {
	return &Handler{store: store, lg: lg}
}

type listResponse struct {
	Scans []ScanRecord `json:"scans"`
}

// ListHandler returns the caller's scans, newest first.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	scans, err := h.store.ListByUser(r.Context(), userID, 0)
	if err != nil {
		h.lg.Error("history list failed", zap.String("user_id", userID), zap.Error(err))
		utils.WriteError(w, err, "Could not load history")
		return
	}
	utils.WriteJSON(w, listResponse{Scans: scans})
}
