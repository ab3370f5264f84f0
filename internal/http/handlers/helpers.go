package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vendas-ahora/api-vendas/internal/apierror"
)

const requestTimeout = 3 // seconds

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to write response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, apiErr apierror.ErrorResponse) {
	writeJSON(w, apiErr.Code(), apiErr)
}

func parseID(r *http.Request) (uint, apierror.ErrorResponse) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, apierror.InvalidIDError
	}
	return uint(id), nil
}

func decodeJSON(r *http.Request, v any) apierror.ErrorResponse {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apierror.MalformedJSONError
	}
	return nil
}

func detectContentType(file multipart.File, header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	return http.DetectContentType(buf[:n])
}
