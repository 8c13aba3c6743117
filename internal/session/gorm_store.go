package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/EmpoweredVote/DoseRight/internal/medicine"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the sessions table row.
type Record struct {
	SessionID  string    `gorm:"primaryKey"`
	UserID     *string   `gorm:"index"`
	Remember   bool      `gorm:"not null;default:false"`
	LastResult *string   `gorm:"type:text"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
}

func (Record) TableName() string { return "sessions" }

// GormStore keeps sessions in the application database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(d *gorm.DB) *GormStore {
	return &GormStore{db: d}
}

// Migrate creates the sessions table.
func (g *GormStore) Migrate() error {
	return g.db.AutoMigrate(&Record{})
}

func (g *GormStore) Find(ctx context.Context, id string) (*Session, error) {
	var rec Record
	err := g.db.WithContext(ctx).First(&rec, "session_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}

	s := &Session{
		ID:        rec.SessionID,
		Remember:  rec.Remember,
		ExpiresAt: rec.ExpiresAt,
		CreatedAt: rec.CreatedAt,
		stored:    true,
	}
	if rec.UserID != nil {
		s.UserID = *rec.UserID
	}
	if rec.LastResult != nil {
		var info medicine.Info
		// A result that no longer decodes is dropped; the demo record takes its place.
		if err := json.Unmarshal([]byte(*rec.LastResult), &info); err == nil {
			s.LastResult = &info
		}
	}
	return s, nil
}

func (g *GormStore) Save(ctx context.Context, s *Session) error {
	rec := Record{
		SessionID: s.ID,
		Remember:  s.Remember,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
	}
	if s.UserID != "" {
		uid := s.UserID
		rec.UserID = &uid
	}
	if s.LastResult != nil {
		raw, err := json.Marshal(s.LastResult)
		if err != nil {
			return fmt.Errorf("encode last result: %w", err)
		}
		str := string(raw)
		rec.LastResult = &str
	}

	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.stored = true
	return nil
}

func (g *GormStore) Delete(ctx context.Context, id string) error {
	if err := g.db.WithContext(ctx).Delete(&Record{}, "session_id = ?", id).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions that expired before now.
func (g *GormStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := g.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&Record{})
	return res.RowsAffected, res.Error
}
