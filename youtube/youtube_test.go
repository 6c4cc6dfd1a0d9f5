package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		input string
		want  Ref
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", Ref{"dQw4w9WgXcQ", 0}},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ", Ref{"dQw4w9WgXcQ", 0}},
		{"http://www.youtube.com/watch?v=dQw4w9WgXcQ", Ref{"dQw4w9WgXcQ", 0}},
		{"youtube.com/watch?v=dQw4w9WgXcQ", Ref{"dQw4w9WgXcQ", 0}},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", Ref{"dQw4w9WgXcQ", 42}},
		{"https://youtu.be/dQw4w9WgXcQ", Ref{"dQw4w9WgXcQ", 0}},
		{"https://youtu.be/dQw4w9WgXcQ?t=90", Ref{"dQw4w9WgXcQ", 90}},
		{"youtu.be/dQw4w9WgXcQ", Ref{"dQw4w9WgXcQ", 0}},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", Ref{"dQw4w9WgXcQ", 0}},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ?start=125", Ref{"dQw4w9WgXcQ", 125}},
		{"  https://youtu.be/dQw4w9WgXcQ  ", Ref{"dQw4w9WgXcQ", 0}},
		{"https://www.youtube.com/watch?v=a_b-c_d-e_f", Ref{"a_b-c_d-e_f", 0}},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.input)
		if err != nil {
			t.Errorf("Resolve(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestResolveRejects(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrEmptyInput},
		{"   ", ErrEmptyInput},
		{"not a url", ErrNotAVideoURL},
		{"https://vimeo.com/12345678", ErrNotAVideoURL},
		{"https://www.youtube.com/watch?v=short", ErrNotAVideoURL},
	}
	for _, tt := range tests {
		_, err := Resolve(tt.input)
		if !errors.Is(err, tt.want) {
			t.Errorf("Resolve(%q) error = %v, want %v", tt.input, err, tt.want)
		}
	}
}

func TestThumbnailURLs(t *testing.T) {
	if got := ThumbnailURL("dQw4w9WgXcQ"); got != "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg" {
		t.Errorf("ThumbnailURL = %q", got)
	}
	if got := FallbackThumbnailURL("dQw4w9WgXcQ"); got != "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg" {
		t.Errorf("FallbackThumbnailURL = %q", got)
	}
}

func TestEmbedURL(t *testing.T) {
	tests := []struct {
		id        string
		timestamp int
		want      string
	}{
		{"dQw4w9WgXcQ", 0, "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ"},
		{"dQw4w9WgXcQ", 42, "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ?start=42"},
	}
	for _, tt := range tests {
		if got := EmbedURL(tt.id, tt.timestamp); got != tt.want {
			t.Errorf("EmbedURL(%q, %d) = %q, want %q", tt.id, tt.timestamp, got, tt.want)
		}
	}
}

func TestFetchThumbnailFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/vi/dQw4w9WgXcQ/maxresdefault.jpg":
			http.NotFound(w, r)
		case r.URL.Path == "/vi/dQw4w9WgXcQ/hqdefault.jpg":
			w.Write([]byte("jpeg-bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	// Rewrite img.youtube.com to the test server.
	client := &http.Client{Transport: rewriteTransport{srv.URL}}
	body, err := FetchThumbnail(context.Background(), client, "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("FetchThumbnail error: %v", err)
	}
	if string(body) != "jpeg-bytes" {
		t.Errorf("body = %q, want fallback image bytes", body)
	}
}

type rewriteTransport struct {
	base string
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	redir, err := http.NewRequestWithContext(req.Context(), req.Method, rt.base+req.URL.Path, nil)
	if err != nil {
		return nil, err
	}
	return http.DefaultTransport.RoundTrip(redir)
}
