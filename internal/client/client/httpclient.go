package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/petswap/internal/client/models"
	"github.com/dmitrijs2005/petswap/internal/common"
	"github.com/dmitrijs2005/petswap/internal/netx"
)

const requestIDHeader = "X-Request-Id"

// HTTPClient talks JSON to the PetSwap REST API.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for baseURL (e.g. "http://localhost:10000").
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListProperties(ctx context.Context) ([]models.Property, error) {
	var out []models.Property
	if err := c.do(ctx, http.MethodGet, "/api/properties", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	var out models.Property
	if err := c.do(ctx, http.MethodGet, "/api/properties/"+strconv.FormatInt(id, 10), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateProperty(ctx context.Context, token string, in models.PropertyInput) (*models.Property, error) {
	if in.Amenities == nil {
		in.Amenities = []string{}
	}
	if in.Images == nil {
		in.Images = []string{}
	}

	var out models.Property
	if err := c.do(ctx, http.MethodPost, "/api/properties", token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RequestImageUpload(ctx context.Context, token string, propertyID int64) (*models.ImageUpload, error) {
	path := "/api/properties/" + strconv.FormatInt(propertyID, 10) + "/images"

	var out models.ImageUpload
	if err := c.do(ctx, http.MethodPost, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadImage sends the bytes to the presigned URL returned by RequestImageUpload.
func (c *HTTPClient) UploadImage(ctx context.Context, upload *models.ImageUpload, data []byte, contentType string) error {
	if err := netx.UploadToS3PresignedURL(ctx, c.hc, upload.URL, data, contentType); err != nil {
		return fmt.Errorf("image upload: %w", err)
	}
	return nil
}

func (c *HTTPClient) ListBookings(ctx context.Context, token string) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.do(ctx, http.MethodGet, "/api/bookings", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateBooking(ctx context.Context, token string, req models.BookingRequest) (*models.Booking, error) {
	var out models.Booking
	if err := c.do(ctx, http.MethodPost, "/api/bookings", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends one JSON request and decodes a 2xx body into out.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.HeaderAuthorization, common.BearerScheme+" "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) mapError(resp *http.Response) error {
	if resp.StatusCode == http.StatusBadGateway || resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusGatewayTimeout {
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	}

	var body struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(data, &body)

	return &APIError{Status: resp.StatusCode, Message: body.Error}
}
