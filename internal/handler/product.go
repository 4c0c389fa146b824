package handler

import (
	"net/http"
	"strconv"

	"github.com/segyhp/lamf-engine/internal/domain"
	"github.com/segyhp/lamf-engine/pkg/response"

	"github.com/gorilla/mux"
)

type ProductHandler struct {
	service ProductService
}

func NewProductHandler(service ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /loan-products[?isActive=true|false]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.LoanProductFilter
	if raw := r.URL.Query().Get("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "isActive must be true or false", nil)
			return
		}
		filter.IsActive = &active
	}

	products, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.SuccessMessage(w, "Loan products retrieved successfully", products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, err)
		return
	}

	response.SuccessMessage(w, "Loan product retrieved successfully", product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanProductRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	product, err := h.service.Create(r.Context(), &request)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var request domain.UpdateLoanProductRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	product, err := h.service.Update(r.Context(), mux.Vars(r)["id"], &request)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.SuccessMessage(w, "Loan product updated successfully", product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		response.Error(w, err)
		return
	}

	response.SuccessMessage(w, "Loan product deleted successfully", nil)
}
