package upload

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dutchcoders/go-clamd"
)

// Scanner inspects an upload before it is forwarded to the analysis service.
type Scanner interface {
	Scan(ctx context.Context, data []byte) error
}

// NopScanner accepts everything. It is used when no clamd address is configured.
type NopScanner struct{}

func (NopScanner) Scan(context.Context, []byte) error { return nil }

// ClamdScanner streams uploads to a clamd daemon.
type ClamdScanner struct {
	Addr string
}

// NewScanner returns a clamd scanner for addr, or a NopScanner when addr is empty.
func NewScanner(addr string) Scanner {
	if addr == "" {
		return NopScanner{}
	}
	return &ClamdScanner{Addr: addr}
}

// Scan returns ErrInfected when clamd reports anything other than a clean result.
func (s *ClamdScanner) Scan(ctx context.Context, data []byte) error {
	client := clamd.NewClamd(s.Addr)

	abort := make(chan bool)
	defer close(abort)

	results, err := client.ScanStream(bytes.NewReader(data), abort)
	if err != nil {
		return fmt.Errorf("scan upload: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case result, ok := <-results:
			if !ok {
				return nil
			}
			if result.Status != clamd.RES_OK {
				return ErrInfected
			}
		}
	}
}
