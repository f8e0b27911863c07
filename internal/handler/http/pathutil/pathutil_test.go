package pathutil

import (
	"errors"
	"testing"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		prefix  string
		want    int64
		wantErr bool
	}{
		{"valid", "/articles/123", "/articles/", 123, false},
		{"newsletter", "/newsletters/7", "/newsletters/", 7, false},
		{"not a number", "/articles/abc", "/articles/", 0, true},
		{"zero", "/articles/0", "/articles/", 0, true},
		{"negative", "/articles/-5", "/articles/", 0, true},
		{"empty", "/articles/", "/articles/", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractID(tt.path, tt.prefix)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Errorf("err=%v, want ErrInvalidID", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("err=%v", err)
			}
			if id != tt.want {
				t.Errorf("id=%d, want %d", id, tt.want)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/articles/123", "/articles/:id"},
		{"/articles/456", "/articles/:id"},
		{"/newsletters/7/", "/newsletters/:id"},
		{"/articles", "/articles"},
		{"/health", "/health"},
		{"/health?format=json", "/health"},
		{"/api/reader_view", "/api/reader_view"},
		{"/auth/password_reset/confirm", "/auth/password_reset/confirm"},
		{"/", "/"},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.want {
			t.Errorf("NormalizePath(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}
