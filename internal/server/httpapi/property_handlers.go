package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/petswap/internal/server/auth"
	"github.com/dmitrijs2005/petswap/internal/server/models"
	"github.com/dmitrijs2005/petswap/internal/server/services"
)

type PropertyService interface {
	List(ctx context.Context) ([]*models.Property, error)
	Get(ctx context.Context, id int64) (*models.Property, error)
	Create(ctx context.Context, userID int64, in services.PropertyInput) (*models.Property, error)
	CreateImageUpload(ctx context.Context, userID, propertyID int64) (*services.ImageUpload, error)
}

type PropertyHandler struct {
	properties PropertyService
}

func NewPropertyHandler(properties PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

func (h *PropertyHandler) HandleList(w http.ResponseWriter, r *http.Request) error {
	items, err := h.properties.List(r.Context())
	if err != nil {
		return err
	}
	if items == nil {
		items = []*models.Property{}
	}

	RespondWithJSON(w, http.StatusOK, items)
	return nil
}

func (h *PropertyHandler) HandleGet(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	p, err := h.properties.Get(r.Context(), id)
	if err != nil {
		return err
	}

	reviews := p.Reviews
	if reviews == nil {
		reviews = []*models.Review{}
	}

	RespondWithJSON(w, http.StatusOK, propertyDetail{Property: p, Reviews: reviews})
	return nil
}

func (h *PropertyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) error {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return ErrUnauthorized("")
	}

	var req propertyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	p, err := h.properties.Create(r.Context(), userID, services.PropertyInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		Bedrooms:    int(req.Bedrooms),
		Bathrooms:   int(req.Bathrooms),
		PetsAllowed: req.PetsAllowed,
		Amenities:   req.Amenities,
		Images:      req.Images,
	})
	if err != nil {
		return err
	}

	RespondWithJSON(w, http.StatusOK, p)
	return nil
}

func (h *PropertyHandler) HandleCreateImageUpload(w http.ResponseWriter, r *http.Request) error {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return ErrUnauthorized("")
	}

	id, err := pathID(r)
	if err != nil {
		return err
	}

	upload, err := h.properties.CreateImageUpload(r.Context(), userID, id)
	if err != nil {
		return err
	}

	RespondWithJSON(w, http.StatusOK, upload)
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, paramID), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrNotFound("")
	}
	return id, nil
}
