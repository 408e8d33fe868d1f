package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{
			name:       "direct connection uses remote addr host",
			remoteAddr: "10.0.0.5:51234",
			want:       "10.0.0.5",
		},
		{
			name:       "single forwarded entry",
			forwarded:  "203.0.113.7",
			remoteAddr: "10.0.0.5:51234",
			want:       "203.0.113.7",
		},
		{
			name:       "chained proxies keep the originating client",
			forwarded:  "203.0.113.7, 70.41.3.18, 150.172.238.178",
			remoteAddr: "10.0.0.5:51234",
			want:       "203.0.113.7",
		},
		{
			name:       "leading whitespace is trimmed",
			forwarded:  " 203.0.113.7 ,70.41.3.18",
			remoteAddr: "10.0.0.5:51234",
			want:       "203.0.113.7",
		},
		{
			name:       "remote addr without port is returned as is",
			remoteAddr: "10.0.0.5",
			want:       "10.0.0.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/products", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, clientIP(r))
		})
	}
}
