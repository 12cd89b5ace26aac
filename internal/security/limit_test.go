package security

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestLimitedReader(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		limit   int64
		wantErr error
	}{
		{"under limit", 10, 16, nil},
		{"exactly at limit", 16, 16, nil},
		{"over limit", 17, 16, ErrSizeLimit},
		{"empty", 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := bytes.Repeat([]byte{0xAB}, tt.size)
			got, err := io.ReadAll(NewLimitedReader(bytes.NewReader(src), tt.limit))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ReadAll() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && !bytes.Equal(got, src) {
				t.Errorf("ReadAll() returned %d bytes, want %d", len(got), len(src))
			}
		})
	}
}
