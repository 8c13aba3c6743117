package scan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/EmpoweredVote/DoseRight/internal/history"
	"github.com/EmpoweredVote/DoseRight/internal/medicine"
	"github.com/EmpoweredVote/DoseRight/internal/oracle"
	"github.com/EmpoweredVote/DoseRight/internal/session"
	"github.com/EmpoweredVote/DoseRight/internal/upload"
	"github.com/EmpoweredVote/DoseRight/internal/utils"
	"go.uber.org/zap"
)

// multipartOverhead is the slack allowed above the image limit for form fields
// and part headers.
const multipartOverhead = 1 << 20

// HistoryWriter records completed scans.
type HistoryWriter interface {
	Append(ctx context.Context, userID string, info medicine.Info) (history.ScanRecord, error)
}

// Deps are the collaborators of the scan handlers.
type Deps struct {
	Oracle     oracle.Oracle
	Images     upload.ImageStore
	Rules      upload.Rules
	History    HistoryWriter
	Sessions   *session.Manager
	Translator medicine.Translator
	Mode       medicine.Mode
	Logger     *zap.Logger
}

type Handler struct {
	oracle     oracle.Oracle
	images     upload.ImageStore
	rules      upload.Rules
	history    HistoryWriter
	sessions   *session.Manager
	translator medicine.Translator
	mode       medicine.Mode
	lg         *zap.Logger
	now        func() time.Time
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		oracle:     d.Oracle,
		images:     d.Images,
		rules:      d.Rules,
		history:    d.History,
		sessions:   d.Sessions,
		translator: d.Translator,
		mode:       d.Mode,
		lg:         d.Logger,
		now:        time.Now,
	}
}

type redirectResponse struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect"`
}

// UploadHandler accepts a medicine photo, identifies it and stores the result
// in the session. Rejected files never reach the oracle.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.rules.MaxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.rules.MaxBytes + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			utils.WriteError(w, upload.TooLarge(), "")
			return
		}
		utils.WriteError(w, upload.ErrNoImage, "")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		// A file input submitted without a selection arrives as an empty value.
		if _, ok := r.MultipartForm.Value["image"]; ok {
			utils.WriteError(w, h.rules.Check("", 0), "")
			return
		}
		utils.WriteError(w, upload.ErrNoImage, "")
		return
	}
	defer file.Close()

	if err := h.rules.Check(header.Filename, header.Size); err != nil {
		utils.WriteError(w, err, "")
		return
	}

	info, err := h.process(r.Context(), file, header.Filename)
	if err != nil {
		h.lg.Warn("scan failed, storing placeholder", zap.String("filename", header.Filename), zap.Error(err))
		info = medicine.ScanRequiredInfo()
	}

	s := h.sessions.Current(r)
	if userID, ok := session.UserIDFromContext(r.Context()); ok && info.DetectionMethod == medicine.AIRecognition {
		if _, err := h.history.Append(r.Context(), userID, info); err != nil {
			h.lg.Error("history append failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	s.SetLastResult(info)
	if err := h.sessions.Save(r.Context(), w, s); err != nil {
		h.lg.Error("session save failed", zap.Error(err))
	}

	utils.WriteJSON(w, redirectResponse{Success: true, Redirect: "/result"})
}

// process re-encodes and stores the image, then asks the oracle about it.
func (h *Handler) process(ctx context.Context, file io.Reader, filename string) (medicine.Info, error) {
	data, err := upload.ToJPEG(io.LimitReader(file, h.rules.MaxBytes+1))
	if err != nil {
		return medicine.Info{}, err
	}

	name := upload.Filename(filename, h.now())
	imageURL, err := h.images.Put(ctx, name, data)
	if err != nil {
		return medicine.Info{}, fmt.Errorf("store image: %w", err)
	}

	reply, err := h.oracle.Identify(ctx, data, "image/jpeg", medicine.IdentifyPrompt)
	if err != nil {
		return medicine.Info{}, fmt.Errorf("identify: %w", err)
	}
	medName := medicine.CleanName(reply)

	// Lookup always yields a complete summary; a failed call only changes the outcome.
	summary, outcome, err := medicine.Lookup(ctx, h.oracle, medName, h.mode)
	h.lg.Info("medicine lookup",
		zap.String("medicine", medName),
		zap.String("oracle", h.oracle.Name()),
		zap.Stringer("outcome", outcome),
		zap.Error(err))

	return medicine.NewInfo(medName, summary, imageURL, medicine.AIRecognition, h.translator), nil
}

// ResultHandler returns the session's last record, or the demo record.
func (h *Handler) ResultHandler(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Current(r)
	if s.LastResult == nil {
		utils.WriteJSON(w, medicine.DemoInfo())
		return
	}
	utils.WriteJSON(w, s.LastResult)
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Success bool   `json:"success"`
	Answer  string `json:"answer"`
}

// SearchHandler answers a free-text medical question.
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.lg.Warn("search request invalid", zap.Error(err))
		h.searchFailed(w)
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		utils.WriteJSONStatus(w, http.StatusBadRequest, map[string]string{"error": "Empty query"})
		return
	}

	answer, err := h.oracle.Complete(r.Context(), medicine.SearchPrompt(query))
	if err != nil {
		h.lg.Warn("search failed", zap.String("oracle", h.oracle.Name()), zap.Error(err))
		h.searchFailed(w)
		return
	}

	utils.WriteJSON(w, searchResponse{Success: true, Answer: answer})
}

func (h *Handler) searchFailed(w http.ResponseWriter) {
	utils.WriteJSONStatus(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Search failed"})
}
