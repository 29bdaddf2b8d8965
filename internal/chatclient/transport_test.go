// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chatclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransport_Success(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Héllo wörld", body["user_message"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"bot_response":"Hi there!"}`)
	}))
	defer server.Close()

	tr := NewHTTPTransport(server.URL+"/chat", time.Second)
	reply, err := tr.Chat(context.Background(), "Héllo wörld")

	require.NoError(t, err)
	assert.Equal(t, "Hi there!", reply)
	assert.Equal(t, int32(1), hits.Load())
}

func TestHTTPTransport_Non2xx(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewHTTPTransport(server.URL, time.Second).Chat(context.Background(), "hi")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, "boom", statusErr.Body)
	assert.Equal(t, int32(1), hits.Load(), "no retries")
}

func TestHTTPTransport_MalformedBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `<html>`},
		{"missing field", `{"reply":"x"}`},
		{"non-string", `{"bot_response":42}`},
		{"null", `{"bot_response":null}`},
		{"blank", `{"bot_response":"   "}`},
		{"array", `["x"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			_, err := NewHTTPTransport(server.URL, time.Second).Chat(context.Background(), "hi")
			assert.True(t, errors.Is(err, ErrMalformedResponse), "err = %v", err)
		})
	}
}

func TestHTTPTransport_ResponseTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"bot_response":"`+strings.Repeat("a", MaxResponseSize)+`"}`)
	}))
	defer server.Close()

	_, err := NewHTTPTransport(server.URL, time.Second).Chat(context.Background(), "hi")
	assert.True(t, errors.Is(err, ErrMalformedResponse), "err = %v", err)
}

func TestHTTPTransport_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewHTTPTransport(server.URL, 50*time.Millisecond).Chat(context.Background(), "hi")

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, server.URL, transportErr.URL)
}

func TestHTTPTransport_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTPTransport(url, time.Second).Chat(context.Background(), "hi")

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestHTTPTransport_DefaultTimeout(t *testing.T) {
	tr := NewHTTPTransport("http://localhost:8000/chat", 0)
	assert.Equal(t, DefaultTimeout, tr.httpClient.Timeout)
	assert.Equal(t, "http://localhost:8000/chat", tr.Endpoint())
}

func TestHTTPTransport_HealthURL(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		{"http://localhost:8000/chat", "http://localhost:8000/health"},
		{"https://example.com/api/chat", "https://example.com/api/health"},
		{"http://localhost:8000", "http://localhost:8000/health"},
	}
	for _, tt := range tests {
		got, err := NewHTTPTransport(tt.endpoint, time.Second).HealthURL()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "endpoint %s", tt.endpoint)
	}
}

func TestHTTPTransport_HealthCheck(t *testing.T) {
	var unhealthy atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		if unhealthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"status":"healthy"}`)
	}))
	defer server.Close()

	tr := NewHTTPTransport(server.URL+"/chat", time.Second)
	assert.NoError(t, tr.HealthCheck(context.Background()))

	unhealthy.Store(true)
	var statusErr *StatusError
	require.ErrorAs(t, tr.HealthCheck(context.Background()), &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
}

func TestClient_WithHTTPTransportEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserMessage string `json:"user_message"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]string{"bot_response": "echo: " + body.UserMessage})
	}))
	defer server.Close()

	client, store := newTestClient(NewHTTPTransport(server.URL+"/chat", time.Second))
	out := client.Send(context.Background(), "ping")

	assert.Equal(t, "echo: ping", out.Reply.Text())
	assert.Equal(t, 2, store.Len())
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "endpoint returned HTTP 502", (&StatusError{Code: 502}).Error())
	assert.Equal(t, "endpoint returned HTTP 500: boom", (&StatusError{Code: 500, Body: "boom"}).Error())

	inner := errors.New("dial tcp: refused")
	err := &TransportError{URL: "http://x/chat", Err: inner}
	assert.Equal(t, "request to http://x/chat failed: dial tcp: refused", err.Error())
	assert.True(t, errors.Is(err, inner))
}
