package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/vendas-ahora/api-vendas/internal/dto"
	"github.com/vendas-ahora/api-vendas/internal/service/user"
)

type UserHandler struct {
	Service user.UserService
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	var in dto.SignupDto
	if apiErr := decodeJSON(r, &in); apiErr != nil {
		writeError(w, apiErr)
		return
	}

	resp, apiErr := h.Service.Signup(ctx, in)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	var in dto.LoginDto
	if apiErr := decodeJSON(r, &in); apiErr != nil {
		writeError(w, apiErr)
		return
	}

	resp, apiErr := h.Service.Login(ctx, in)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
