package history

import (
	"fmt"

	"gorm.io/gorm"
)

// Init creates the scan_history table.
func Init(d *gorm.DB) error {
	if err := d.AutoMigrate(&ScanRecord{}); err != nil {
		return fmt.Errorf("migrate scan_history: %w", err)
	}
	return nil
}
