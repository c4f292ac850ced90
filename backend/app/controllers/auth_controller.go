package controllers

import (
	"net/http"

	"monitor-hub/backend/app/dto"
	jwtutil "monitor-hub/backend/app/jwt"
	"monitor-hub/backend/app/services"
)

type AuthController struct {
	Users  *services.UserService
	Signer *jwtutil.Signer
}

func NewAuthController(users *services.UserService, signer *jwtutil.Signer) *AuthController {
	return &AuthController{Users: users, Signer: signer}
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := dto.Validate(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "missing credentials")
		return
	}
	u, err := c.Users.ValidateCredentials(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err, "user")
		return
	}
	token, err := c.Signer.Sign(u.ID, u.Username, u.Role)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "token error")
		return
	}
	writeJSON(w, http.StatusOK, dto.TokenResponse{AccessToken: token})
}
