package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendas-ahora/api-vendas/internal/apierror"
	"github.com/vendas-ahora/api-vendas/internal/dto"
	"github.com/vendas-ahora/api-vendas/internal/service/product"
)

const maxMultipartMemory = 10 << 20

type ProductHandler struct {
	Service product.ProductService
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	products, apiErr := h.Service.List(ctx, r.URL.Query().Get("order"))
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	id, apiErr := parseID(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}

	p, apiErr := h.Service.Get(ctx, id)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, apierror.NewSimple(http.StatusBadRequest, "Malformed multipart form"))
		return
	}

	in := dto.CreateProductDto{
		Name:        r.FormValue("name"),
		SKU:         r.FormValue("sku"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}

	priceStr := r.FormValue("price")
	if priceStr == "" {
		writeError(w, apierror.NewStructured().Add("price", "This field is required"))
		return
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		writeError(w, apierror.NewStructured().Add("price", "Value must be a decimal number"))
		return
	}
	in.Price = price
	if qtyStr := r.FormValue("quantity_in_stock"); qtyStr != "" {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			writeError(w, apierror.NewStructured().Add("quantity_in_stock", "Value must be an integer"))
			return
		}
		in.QuantityInStock = &qty
	}

	image, apiErr := formImage(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}

	created, apiErr := h.Service.Create(ctx, in, image)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout*time.Second)
	defer cancel()

	id, apiErr := parseID(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, apierror.NewSimple(http.StatusBadRequest, "Malformed multipart form"))
		return
	}

	var in dto.UpdateProductDto
	if v, ok := formField(r, "name"); ok {
		in.Name = &v
	}
	if v, ok := formField(r, "sku"); ok {
		in.SKU = &v
	}
	if v, ok := formField(r, "description"); ok {
		in.Description = &v
	}
	if v, ok := formField(r, "category"); ok {
		in.Category = &v
	}
	if v, ok := formField(r, "price"); ok {
		price, err := decimal.NewFromString(v)
		if err != nil {
			writeError(w, apierror.NewStructured().Add("price", "Value must be a decimal number"))
			return
		}
		in.Price = &price
	}
	if v, ok := formField(r, "quantity_in_stock"); ok {
		qty, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, apierror.NewStructured().Add("quantity_in_stock", "Value must be an integer"))
			return
		}
		in.QuantityInStock = &qty
	}

	image, apiErr := formImage(r)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}

	updated, apiErr := h.Service.Update(ctx, id, in, image)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

// formField distinguishes "absent" from "present but empty" so partial
// updates only touch supplied keys.
func formField(r *http.Request, name string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	vals, ok := r.MultipartForm.Value[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func formImage(r *http.Request) (*dto.UploadFile, apierror.ErrorResponse) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, apierror.NewSimple(http.StatusBadRequest, "Invalid image field: %v", err)
	}

	contentType := detectContentType(file, header)
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, apierror.NewSimple(http.StatusBadRequest, "Could not read image")
	}

	return &dto.UploadFile{
		Reader:      file,
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: contentType,
	}, nil
}
