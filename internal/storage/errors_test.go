package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/minio/minio-go/v7"
)

func TestIsNoSuchKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"typed", minio.ErrorResponse{Code: "NoSuchKey"}, true},
		{"wrapped typed", fmt.Errorf("remove: %w", minio.ErrorResponse{Code: "NotFound"}), true},
		{"flattened", errors.New("gateway: The specified key does not exist."), true},
		{"other", minio.ErrorResponse{Code: "AccessDenied"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNoSuchKey(tt.err); got != tt.want {
				t.Fatalf("IsNoSuchKey(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestParseBucketLookup(t *testing.T) {
	if got, err := parseBucketLookup(" Path "); err != nil || got != minio.BucketLookupPath {
		t.Fatalf("unexpected result %v %v", got, err)
	}
	if _, err := parseBucketLookup("sideways"); err == nil {
		t.Fatal("expected error for unknown lookup")
	}
}
