package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/vendas-ahora/api-vendas/internal/dto"
	"github.com/vendas-ahora/api-vendas/internal/service/sale"
)

type SaleHandler struct {
	Service sale.SaleService
}

func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	var in dto.CreateSaleDto
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
