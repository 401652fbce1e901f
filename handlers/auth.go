package handlers

import (
	"net/http"

	"go_trial/foodhub/models"
	"go_trial/foodhub/services"

	"github.com/gorilla/mux"
)

type signupResponse struct {
	User *models.User `json:"user"`
	*services.Session
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *Handler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var in services.SignupInput
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	user, session, err := h.Auth.Signup(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, signupResponse{User: user, Session: session})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	session, err := h.Auth.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	session, err := h.Auth.Refresh(r.Context(), in.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Logout(r.Context(), caller(r).ID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *Handler) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, caller(r))
}

func (h *Handler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var in services.ChangePasswordInput
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Auth.ChangePassword(r.Context(), caller(r), in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

func (h *Handler) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var in services.ForgotPasswordInput
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	req, err := h.Auth.ForgotPassword(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var in services.ResetPasswordInput
	if err := h.decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.Auth.ResetPassword(r.Context(), mux.Vars(r)["token"], in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password has been reset"})
}
