package pages

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

const placeholderSize = 300

var (
	placeholderOnce sync.Once
	placeholderJPEG []byte
	placeholderErr  error
)

// placeholderImage renders the light grey tile shown for records that have no
// photo. It is built once and kept in memory.
func placeholderImage() ([]byte, error) {
	placeholderOnce.Do(func() {
		img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
		draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 0xe9, G: 0xec, B: 0xef, A: 0xff}}, image.Point{}, draw.Src)

		// A centred cross keeps the tile recognisable as a placeholder.
		mid := placeholderSize / 2
		mark := color.RGBA{R: 0xad, G: 0xb5, B: 0xbd, A: 0xff}
		for i := mid - 40; i < mid+40; i++ {
			for w := -6; w < 6; w++ {
				img.Set(i, mid+w, mark)
				img.Set(mid+w, i, mark)
			}
		}

		var buf bytes.Buffer
		placeholderErr = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
		placeholderJPEG = buf.Bytes()
	})
	return placeholderJPEG, placeholderErr
}

// PlaceholderHandler serves the image referenced by records without a photo.
func (h *Handler) PlaceholderHandler(w http.ResponseWriter, r *http.Request) {
	data, err := placeholderImage()
	if err != nil {
		h.lg.Error("placeholder image", zap.Error(err))
		http.Error(w, "image unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}
