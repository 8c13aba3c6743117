package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EmpoweredVote/DoseRight/internal/medicine"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrMissingName rejects records without a medicine name.
var ErrMissingName = errors.New("scan record needs a medicine name")

// Store reads and writes scan_history.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStore(d *gorm.DB) *Store {
	return &Store{db: d, now: time.Now}
}

// Append records a scan of info for userID. An empty userID stores an
// anonymous row.
func (s *Store) Append(ctx context.Context, userID string, info medicine.Info) (ScanRecord, error) {
	name := strings.TrimSpace(info.MedicineName)
	if name == "" {
		return ScanRecord{}, ErrMissingName
	}

	rec := ScanRecord{
		ID:           uuid.NewString(),
		MedicineName: name,
		ImageURL:     info.ImageURL,
		Category:     info.Category,
		Timestamp:    s.now().UTC(),
	}
	if userID != "" {
		rec.UserID = &userID
	}

	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return ScanRecord{}, fmt.Errorf("append scan: %w", err)
	}
	return rec, nil
}

// ListByUser returns the user's scans, newest first. limit <= 0 means all.
func (s *Store) ListByUser(ctx context.Context, userID string, limit int) ([]ScanRecord, error) {
	q := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	records := []ScanRecord{}
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	return records, nil
}

// Stats counts the user's scans and finds the latest one.
func (s *Store) Stats(ctx context.Context, userID string) (Stats, error) {
	var st Stats
	if err := s.db.WithContext(ctx).Model(&ScanRecord{}).Where("user_id = ?", userID).Count(&st.TotalScans).Error; err != nil {
		return Stats{}, fmt.Errorf("count scans: %w", err)
	}
	if st.TotalScans == 0 {
		return st, nil
	}

	var latest ScanRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("timestamp DESC").First(&latest).Error
	if err != nil {
		return Stats{}, fmt.Errorf("latest scan: %w", err)
	}
	st.LastScan = &latest.Timestamp
	return st, nil
}
