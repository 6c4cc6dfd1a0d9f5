package blockpress

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/levkoz/blockpress/post"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
)

// EncodeInlineImage decodes an image from src, resizes it down to
// maxImageWidth if wider, re-encodes it as JPEG, and returns the inline
// data-URI representation that image blocks embed. Non-image input
// returns an error; callers at the intake boundary swallow it silently
// and leave the block empty.
func EncodeInlineImage(src io.Reader) (string, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleBlockImage attaches an uploaded image to an image block. Files
// that do not decode as images are rejected without surfacing an error:
// the response is 204 and the block keeps rendering as empty.
func (a *App) handleBlockImage(c echo.Context) error {
	docID := c.Param("id")
	blockID := c.Param("blockID")

	file, err := c.FormFile("image")
	if err != nil {
		return c.NoContent(http.StatusNoContent)
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dataURI, err := EncodeInlineImage(src)
	if err != nil {
		return c.NoContent(http.StatusNoContent)
	}

	ok := a.registry.With(docID, func(doc *post.Document) {
		doc.SetImageData(blockID, dataURI)
	})
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, map[string]string{"imageData": dataURI})
}
