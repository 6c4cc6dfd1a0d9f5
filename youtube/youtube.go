// Package youtube resolves freeform YouTube URLs into stable video
// references and builds the derived embed and thumbnail URLs.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// Resolution errors, reported inline near the video input and never
// fatal to the rest of the document.
var (
	// ErrEmptyInput means the input was empty or whitespace-only. It is
	// detected before any pattern matching so the UI can say "please
	// enter a URL" rather than "invalid URL".
	ErrEmptyInput = errors.New("please enter a YouTube URL")

	// ErrNotAVideoURL means the input matched none of the accepted URL
	// shapes.
	ErrNotAVideoURL = errors.New("invalid YouTube URL")
)

// The three accepted URL shapes, tried in order; first match wins. Each
// shape has its own timestamp parameter name. The video id is exactly 11
// characters of [A-Za-z0-9_-].
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})(?:&t=(\d+))?`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtu\.be/([a-zA-Z0-9_-]{11})(?:\?t=(\d+))?`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([a-zA-Z0-9_-]{11})(?:\?start=(\d+))?`),
}

// Ref is a resolved video reference. Timestamp is in seconds; zero means
// no timestamp, and a zero timestamp is treated as absent everywhere a
// start offset would be emitted.
type Ref struct {
	VideoID   string
	Timestamp int
}

// Resolve parses a raw URL into a video reference.
func Resolve(raw string) (Ref, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Ref{}, ErrEmptyInput
	}
	for _, p := range patterns {
		m := p.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		ref := Ref{VideoID: m[1]}
		if m[2] != "" {
			// \d+ guarantees this parses.
			ref.Timestamp, _ = strconv.Atoi(m[2])
		}
		return ref, nil
	}
	return Ref{}, ErrNotAVideoURL
}

// ThumbnailURL returns the high-resolution thumbnail for a video id.
// The image is not guaranteed to exist; callers fall back to
// FallbackThumbnailURL when the fetch fails.
func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
}

// FallbackThumbnailURL returns the lower-resolution thumbnail that every
// video has.
func FallbackThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}

// EmbedURL returns the privacy-enhanced embed URL, with a start offset
// when timestamp is positive.
func EmbedURL(id string, timestamp int) string {
	u := "https://www.youtube-nocookie.com/embed/" + id
	if timestamp > 0 {
		u += "?start=" + strconv.Itoa(timestamp)
	}
	return u
}

// FetchThumbnail downloads the best available thumbnail for a video id,
// trying the high-resolution image first and falling back to the
// low-resolution one. A nil client uses http.DefaultClient. The fetch is
// advisory; it has no effect on document state.
func FetchThumbnail(ctx context.Context, client *http.Client, id string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	var lastErr error
	for _, u := range []string{ThumbnailURL(id), FallbackThumbnailURL(id)} {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("thumbnail fetch: %s returned %d", u, resp.StatusCode)
			continue
		}
		return body, nil
	}
	return nil, lastErr
}
