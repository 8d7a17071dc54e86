package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/GlebRadaev/smmpanel/internal/domain"
	"github.com/GlebRadaev/smmpanel/internal/dto"
	"github.com/GlebRadaev/smmpanel/internal/handlers/httperr"
	"github.com/GlebRadaev/smmpanel/internal/service/authservice"
	pkgauth "github.com/GlebRadaev/smmpanel/pkg/auth"
	"github.com/GlebRadaev/smmpanel/pkg/utils"
	"github.com/GlebRadaev/smmpanel/pkg/validate"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=auth
type Service interface {
	Login(ctx context.Context, username, password, role string) (*domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	GenerateToken(userID, role string) (string, time.Time, error)
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func userInfo(user *domain.User) dto.UserInfoDTO {
	return dto.UserInfoDTO{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
	}
}

// Login godoc
//
//	@Summary		Authenticate user or admin
//	@Description	Log in with username, password and the expected role. The JWT is returned in the Authorization header and the smm_session cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.LoginResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		403		{object}	utils.Response	"Account is disabled"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Login(r.Context(), req.Username, req.Password, req.Role)
	switch {
	case errors.Is(err, authservice.ErrInvalidCredentials):
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case errors.Is(err, authservice.ErrUserInactive):
		utils.RespondWithError(w, http.StatusForbidden, "Account is disabled")
		return
	case err != nil:
		httperr.Respond(w, err)
		return
	}

	token, expiresAt, err := h.authService.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	http.SetCookie(w, &http.Cookie{
		Name:     pkgauth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.RespondWithJSON(w, http.StatusOK, dto.LoginResponseDTO{
		Success: true,
		User:    userInfo(user),
	})
}

// Logout godoc
//
//	@Summary	Log out
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	dto.MessageResponseDTO
//	@Router		/api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     pkgauth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{Success: true, Message: "Logged out"})
}

// Me godoc
//
//	@Summary	Current session user
//	@Tags		Auth
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	dto.UserInfoDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Router		/api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.Me(r.Context(), pkgauth.UserID(r.Context()))
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, authservice.ErrUserInactive):
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	case err != nil:
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, userInfo(user))
}
