package areaclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/areacheck/internal/domain/errors"
	"github.com/polkiloo/areacheck/internal/server/http/dto"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := New(srv.URL, time.Second)
	require.NoError(t, err)
	return client
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "localhost:8080", want: "http://localhost:8080"},
		{in: " https://api.example.com/ ", want: "https://api.example.com"},
		{in: "", wantErr: true},
		{in: "http://", wantErr: true},
	}
	for _, tt := range tests {
		got, err := normalizeBaseURL(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestLoginStoresTokenAndAuthorizesRequests(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			var req dto.AuthRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Username != "alice" || req.Password != "pw" {
				writeJSON(w, http.StatusUnauthorized, dto.NewError(dto.KindInvalidCredentials, "invalid username or password"))
				return
			}
			writeJSON(w, http.StatusOK, dto.TokenResponse{Token: "tok"})
		case "/api/points":
			if r.Header.Get("Authorization") != "Bearer tok" {
				writeJSON(w, http.StatusUnauthorized, dto.NewError(dto.KindUnauthenticated, "session is not valid"))
				return
			}
			if r.Method == http.MethodPost {
				assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))
				writeJSON(w, http.StatusOK, dto.PointResponse{X: 1, Y: 1, R: 2, Hit: true})
				return
			}
			writeJSON(w, http.StatusOK, []dto.PointResponse{{X: 1, Y: 1, R: 2, Hit: true}})
		case "/api/logout":
			writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "bye"})
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	_, err := client.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	assert.Empty(t, client.Token())

	_, err = client.Points(ctx)
	assert.ErrorIs(t, err, domainErrors.ErrUnauthenticated)

	token, err := client.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	point, err := client.Submit(ctx, 1, 1, 2, "key-1")
	require.NoError(t, err)
	assert.True(t, point.Hit)

	points, err := client.Points(ctx)
	require.NoError(t, err)
	assert.Len(t, points, 1)

	require.NoError(t, client.Logout(ctx))
	assert.Empty(t, client.Token())
}

func TestRegisterMapsErrors(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, dto.NewError(dto.KindUsernameTaken, "username already taken"))
	})

	err := client.Register(context.Background(), "alice", "pw")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrUsernameTaken)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "username already taken", apiErr.Message)
}

func TestNonEnvelopeErrors(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Stats(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
	assert.Nil(t, apiErr.Unwrap())
}

func TestStats(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, dto.StatsResponse{Total: 3, Misses: 1, Area: 0.5})
	})

	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.InDelta(t, 0.5, stats.Area, 1e-9)
}
