package content

import (
	"errors"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://example.com/post", false},
		{"http", "http://example.com", false},
		{"empty", "", true},
		{"missing scheme", "example.com/post", true},
		{"unsupported scheme", "ftp://example.com/file", true},
		{"missing host", "https:///post", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateURL(tt.url)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidURL) {
					t.Errorf("expected ErrInvalidURL, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusInProgress, StatusCompleted, StatusFailed} {
		if !ValidStatus(status) {
			t.Errorf("%s rejected", status)
		}
	}
	if ValidStatus("archived") {
		t.Error("unknown status accepted")
	}
}
