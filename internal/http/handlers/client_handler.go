package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/vendas-ahora/api-vendas/internal/dto"
	"github.com/vendas-ahora/api-vendas/internal/service/client"
)

type ClientHandler struct {
	Service client.ClientService
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	clients, apiErr := h.Service.List(ctx)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	id, apiErr := parseID(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}

	detail, apiErr := h.Service.Get(ctx, id, parseSalesFilter(r))
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	var in dto.CreateClientDto
	if apiErr := decodeJSON(r, &in); apiErr != nil {
		writeError(w, apiErr)
		return
	}

	created, apiErr := h.Service.Create(ctx, in)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	id, apiErr := parseID(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}

	var in dto.UpdateClientDto
	if apiErr := decodeJSON(r, &in); apiErr != nil {
		writeError(w, apiErr)
		return
	}

	updated, apiErr := h.Service.Update(ctx, id, in)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	id, apiErr := parseID(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}

	if apiErr := h.Service.Delete(ctx, id); apiErr != nil {
		writeError(w, apiErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Client deleted"})
}

// Both month and year must parse for the filter to apply.
func parseSalesFilter(r *http.Request) dto.SalesFilter {
	q := r.URL.Query()
	var filter dto.SalesFilter
	if m, err := strconv.Atoi(q.Get("month")); err == nil && m >= 1 && m <= 12 {
		filter.Month = &m
	}
	if y, err := strconv.Atoi(q.Get("year")); err == nil && y > 0 {
		filter.Year = &y
	}
	return filter
}
