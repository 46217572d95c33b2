package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/nfnt/resize"

	"mykitchen_backend/apperr"
)

const (
	defaultThumbnailHeight = 500
	maxThumbnailHeight     = 1000
)

// Thumbnail fetches a recipe's thumbnail and returns it resized to the
// requested height, keeping the aspect ratio.
func (h *Handler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	newHeight, err := thumbnailHeight(r.URL.Query().Get("height"))
	if err != nil {
		h.writeTextError(w, r, "Invalid thumbnail height", err)
		return
	}

	recipe, err := h.recipes.Recipe(r.Context(), id)
	if err != nil {
		h.writeTextError(w, r, "Failed to load recipe for thumbnail", err)
		return
	}
	if recipe.Thumbnail == "" {
		h.writeTextError(w, r, "Recipe has no thumbnail", apperr.NotFound("Recipe has no thumbnail"))
		return
	}

	body, _, err := h.recipes.Image(r.Context(), recipe.Thumbnail)
	if err != nil {
		h.writeTextError(w, r, "Failed to fetch thumbnail", err)
		return
	}

	img, format, err := image.Decode(bytes.NewReader(body))
	if errors.Is(err, image.ErrFormat) {
		h.writeTextError(w, r, "Unsupported thumbnail format",
			apperr.Wrap(err, apperr.CodeUnsupportedType, "Unsupported image format"))
		return
	}
	if err != nil {
		h.writeTextError(w, r, "Failed to decode thumbnail", apperr.Upstream(err))
		return
	}

	// Calculate new width while maintaining aspect ratio
	originalBounds := img.Bounds()
	aspectRatio := float64(originalBounds.Dx()) / float64(originalBounds.Dy())
	newWidth := uint(float64(newHeight) * aspectRatio)

	resizedImg := resize.Resize(newWidth, newHeight, img, resize.Lanczos3)

	var out bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&out, resizedImg, nil)
	case "png":
		err = png.Encode(&out, resizedImg)
	default:
		h.writeTextError(w, r, "Unsupported thumbnail format",
			apperr.New(apperr.CodeUnsupportedType, "Unsupported image format"))
		return
	}
	if err != nil {
		h.writeTextError(w, r, "Failed to encode thumbnail", err)
		return
	}

	w.Header().Set("Content-Type", "image/"+format)
	w.Header().Set("Content-Length", strconv.Itoa(out.Len()))
	_, _ = w.Write(out.Bytes())
}

func thumbnailHeight(raw string) (uint, error) {
	if raw == "" {
		return defaultThumbnailHeight, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxThumbnailHeight {
		return 0, apperr.BadRequest(fmt.Sprintf("height must be between 1 and %d", maxThumbnailHeight))
	}
	return uint(n), nil
}
