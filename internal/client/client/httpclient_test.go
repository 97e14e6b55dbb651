package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/petswap/internal/client/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return NewHTTPClient(ts.URL+"/", 2*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestHTTPClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@x.com", body["email"])
		assert.Equal(t, "longenough1", body["password"])

		writeJSON(w, http.StatusOK, map[string]any{
			"token": "tok",
			"user":  map[string]any{"id": 1, "email": "a@x.com", "firstName": "Ann", "lastName": "Lee"},
		})
	})

	res, err := c.Login(context.Background(), "a@x.com", "longenough1")
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, int64(1), res.User.ID)
	assert.Equal(t, "Ann", res.User.FirstName)
}

func TestHTTPClient_Login_InvalidCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	})

	_, err := c.Login(context.Background(), "a@x.com", "bad")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPClient_Me_SendsBearer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"id": 3, "email": "a@x.com", "phone": "555"})
	})

	u, err := c.Me(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	require.NotNil(t, u.Phone)
	assert.Equal(t, "555", *u.Phone)
}

func TestHTTPClient_Register_Conflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email already exists"})
	})

	_, err := c.Register(context.Background(), models.RegisterRequest{Email: "a@x.com", Password: "longenough1"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Email already exists", apiErr.Message)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPClient_Unavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()
	c := NewHTTPClient(ts.URL, time.Second)

	_, err := c.ListProperties(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_BadGatewayIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.ListProperties(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_NonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "oops")
	})

	_, err := c.GetProperty(context.Background(), 1)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Empty(t, apiErr.Message)
}

func TestHTTPClient_CreatePropertySendsEmptyLists(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/properties", r.URL.Path)

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.JSONEq(t, `[]`, string(body["amenities"]))
		assert.JSONEq(t, `[]`, string(body["images"]))

		writeJSON(w, http.StatusOK, map[string]any{"id": 5, "title": "Flat"})
	})

	p, err := c.CreateProperty(context.Background(), "tok", models.PropertyInput{Title: "Flat"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
}

func TestHTTPClient_ImageUploadFlow(t *testing.T) {
	var uploaded []byte
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/properties/7/images":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]string{"key": "properties/7/k", "uploadUrl": ts.URL + "/bucket/properties/7/k"})
		case "/bucket/properties/7/k":
			assert.Equal(t, http.MethodPut, r.Method)
			uploaded, _ = io.ReadAll(r.Body)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ts.Close)
	c := NewHTTPClient(ts.URL, 2*time.Second)
	ctx := context.Background()

	up, err := c.RequestImageUpload(ctx, "tok", 7)
	require.NoError(t, err)
	assert.Equal(t, "properties/7/k", up.Key)

	require.NoError(t, c.UploadImage(ctx, up, []byte("img"), "image/png"))
	assert.Equal(t, []byte("img"), uploaded)
}

func TestHTTPClient_Bookings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookings", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		if r.Method == http.MethodPost {
			var body models.BookingRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, int64(2), body.PropertyID)
			writeJSON(w, http.StatusOK, map[string]any{"id": 9, "propertyId": 2})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{{"id": 9, "propertyId": 2}})
	})
	ctx := context.Background()

	b, err := c.CreateBooking(ctx, "tok", models.BookingRequest{PropertyID: 2, StartDate: "2025-04-01", EndDate: "2025-04-05"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), b.ID)

	items, err := c.ListBookings(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].PropertyID)
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "api error: 400 Email already exists", (&APIError{Status: 400, Message: "Email already exists"}).Error())
	assert.Equal(t, "api error: 500 Internal Server Error", (&APIError{Status: 500}).Error())
}
