package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPErrorClassifier(t *testing.T) {
	c := NewHTTPErrorClassifier()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"server error", &StatusError{URL: "u", StatusCode: http.StatusBadGateway}, true},
		{"service unavailable", &StatusError{URL: "u", StatusCode: http.StatusServiceUnavailable}, true},
		{"too many requests", &StatusError{URL: "u", StatusCode: http.StatusTooManyRequests}, true},
		{"request timeout", &StatusError{URL: "u", StatusCode: http.StatusRequestTimeout}, true},
		{"not implemented", &StatusError{URL: "u", StatusCode: http.StatusNotImplemented}, false},
		{"not found", &StatusError{URL: "u", StatusCode: http.StatusNotFound}, false},
		{"forbidden", &StatusError{URL: "u", StatusCode: http.StatusForbidden}, false},
		{"wrapped status", fmt.Errorf("download: %w", &StatusError{URL: "u", StatusCode: 500}), true},
		{"unexpected eof", fmt.Errorf("read body: %w", io.ErrUnexpectedEOF), true},
		{"connection refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, true},
		{"connection reset", &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}, true},
		{"dns timeout", &net.DNSError{Err: "timeout", Name: "example.com", IsTimeout: true}, true},
		{"dns not found", &net.DNSError{Err: "no such host", Name: "example.invalid", IsNotFound: true}, false},
		{"message pattern", errors.New("write: broken pipe"), true},
		{"cancelled", fmt.Errorf("GET: %w", context.Canceled), false},
		{"plain", errors.New("invalid url"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsTransient(tt.err))
		})
	}
}

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{URL: "https://example.com/a.js", StatusCode: 404}
	assert.Equal(t, "GET https://example.com/a.js: 404 Not Found", err.Error())
}
