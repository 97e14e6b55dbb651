package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/petswap/internal/server/auth"
	"github.com/dmitrijs2005/petswap/internal/server/models"
	"github.com/dmitrijs2005/petswap/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Me(ctx context.Context, userID int64) (*models.User, error)
}

type AuthHandler struct {
	users UserService
}

func NewAuthHandler(users UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) error {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	res, err := h.users.Register(r.Context(), services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}

	RespondWithJSON(w, http.StatusOK, authResponse{Token: res.Token, User: newUserView(res.User)})
	return nil
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	res, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	RespondWithJSON(w, http.StatusOK, authResponse{Token: res.Token, User: newUserView(res.User)})
	return nil
}

func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) error {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return ErrUnauthorized("")
	}

	u, err := h.users.Me(r.Context(), userID)
	if err != nil {
		return err
	}

	RespondWithJSON(w, http.StatusOK, meResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	})
	return nil
}
