// AngelaMos | 2026
// handler.go

package sweet

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sweetcorner/backend/internal/core"
)

const maxUploadSize = 10 << 20 // 10 MiB

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/sweets", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/", h.List)
			r.Post("/search", h.Search)
			r.Post("/{id}/purchase", h.Purchase)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)

			r.Post("/", h.Add)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Post("/{id}/restock", h.Restock)
		})
	})
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		core.BadRequest(w, "invalid multipart form")
		return
	}

	params := CreateSweetParams{
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
	}

	if priceStr := r.FormValue("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			core.BadRequest(w, "price must be a number")
			return
		}
		params.Price = price
	}

	if qtyStr := r.FormValue("quantity"); qtyStr != "" {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			core.BadRequest(w, "quantity must be an integer")
			return
		}
		params.Quantity = qty
	}

	if err := h.validator.Struct(params); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	image := extractImage(r)

	sweet, err := h.service.Add(r.Context(), params, image)
	if err != nil {
		if errors.Is(err, ErrDuplicateName) {
			core.BadRequest(w, "Sweet with this name already exists")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, SweetResponse{
		Message: "Sweet added successfully",
		Sweet:   sweet,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sweets, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, sweets)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	sweets, err := h.service.Search(r.Context(), req.ToFilter())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, sweets)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		core.BadRequest(w, "invalid multipart form")
		return
	}

	params, err := parseUpdateParams(r)
	if err != nil {
		core.BadRequest(w, err.Error())
		return
	}

	if err := h.validator.Struct(params); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	image := extractImage(r)

	sweet, err := h.service.Update(r.Context(), id, params, image)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Sweet")
			return
		}
		if errors.Is(err, ErrDuplicateName) {
			core.BadRequest(w, "Sweet with this name already exists")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, SweetResponse{
		Message: "Sweet updated successfully",
		Sweet:   sweet,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "Sweet")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, MessageResponse{Message: "Sweet deleted successfully"})
}

func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req QuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	sweet, err := h.service.Purchase(r.Context(), id, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, ErrOutOfStock):
			core.BadRequest(w, "Sweet is out of stock")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Sweet")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "quantity must be positive")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, SweetResponse{
		Message: "Sweet purchased successfully",
		Sweet:   sweet,
	})
}

func (h *Handler) Restock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req QuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	sweet, err := h.service.Restock(r.Context(), id, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "Sweet")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "quantity must be positive")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, SweetResponse{
		Message: "Sweet restocked successfully",
		Sweet:   sweet,
	})
}

func parseUpdateParams(r *http.Request) (UpdateSweetParams, error) {
	var params UpdateSweetParams

	if values, ok := r.MultipartForm.Value["name"]; ok && len(values) > 0 {
		params.Name = &values[0]
	}

	if values, ok := r.MultipartForm.Value["category"]; ok && len(values) > 0 {
		params.Category = &values[0]
	}

	if values, ok := r.MultipartForm.Value["price"]; ok && len(values) > 0 {
		price, err := strconv.ParseFloat(values[0], 64)
		if err != nil {
			return params, errors.New("price must be a number")
		}
		params.Price = &price
	}

	if values, ok := r.MultipartForm.Value["quantity"]; ok && len(values) > 0 {
		qty, err := strconv.Atoi(values[0])
		if err != nil {
			return params, errors.New("quantity must be an integer")
		}
		params.Quantity = &qty
	}

	return params, nil
}

func extractImage(r *http.Request) *ImageUpload {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil
	}

	return &ImageUpload{
		Filename: header.Filename,
		Reader:   file,
	}
}
