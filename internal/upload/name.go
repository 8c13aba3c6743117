package upload

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Filename builds the stored name for an upload: a YYYYMMDD_HHMMSS_ prefix, a
// short random tag, the slugified original base name, and a .jpg extension
// since every image is re-encoded as JPEG.
func Filename(original string, now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	s := slug.Make(base)
	if s == "" {
		s = "image"
	}
	tag := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return now.Format("20060102_150405") + "_" + tag + "_" + s + ".jpg"
}
