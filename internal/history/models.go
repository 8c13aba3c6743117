package history

import "time"

// ScanRecord is one completed scan. Rows are append-only.
type ScanRecord struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID       *string   `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
	MedicineName string    `gorm:"not null" json:"medicine_name"`
	ImageURL     string    `json:"image_url"`
	Category     string    `json:"category"`
	Timestamp    time.Time `gorm:"not null;index" json:"timestamp"`
}

func (ScanRecord) TableName() string { return "scan_history" }

// Stats summarizes a user's scans for the profile view.
type Stats struct {
	TotalScans int64      `json:"total_scans"`
	LastScan   *time.Time `json:"-"`
}

// NeverScanned is what LastScanDate reports for a user without scans.
const NeverScanned = "Never"

// LastScanDate formats the most recent scan as YYYY-MM-DD.
func (s Stats) LastScanDate() string {
	if s.LastScan == nil {
		return NeverScanned
	}
	return s.LastScan.Format("2006-01-02")
}
