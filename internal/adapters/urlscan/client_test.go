package urlscan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/smishguard/internal/core"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		body   string
		want   core.URLReputation
	}{
		{"malicious with key", "secret", `{"overall_result": "malicious"}`, core.URLMalicious},
		{"clean without key", "", `{"overall_result": "harmless"}`, core.URLNotMalicious},
		{"undetected", "", `{"overall_result": "undetected", "engines": 70}`, core.URLNotMalicious},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				req.Equal(tt.apiKey, r.Header.Get("x-apikey"))

				var in scanRequest
				req.NoError(json.NewDecoder(r.Body).Decode(&in))
				req.Equal("http://phish.example/login", in.URL)

				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			rep, err := NewClient(srv.URL, tt.apiKey, srv.Client(), zap.NewNop()).
				Check(context.Background(), "http://phish.example/login")
			req.NoError(err)
			req.Equal(tt.want, rep)
		})
	}
}

func TestCheck_Errors(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/down":
			w.WriteHeader(http.StatusBadGateway)
		case "/empty":
			w.Write([]byte(`{}`))
		default:
			w.Write([]byte(`not json`))
		}
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL+"/down", "", nil, zap.NewNop()).Check(context.Background(), "a.example")
	req.Error(err)
	req.NotErrorIs(err, core.ErrMalformedResponse)

	_, err = NewClient(srv.URL+"/empty", "", nil, zap.NewNop()).Check(context.Background(), "a.example")
	req.ErrorIs(err, core.ErrMalformedResponse)

	_, err = NewClient(srv.URL+"/garbage", "", nil, zap.NewNop()).Check(context.Background(), "a.example")
	req.ErrorIs(err, core.ErrMalformedResponse)
}
