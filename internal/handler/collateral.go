package handler

import (
	"net/http"

	"github.com/segyhp/lamf-engine/internal/domain"
	"github.com/segyhp/lamf-engine/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type CollateralHandler struct {
	service CollateralService
}

func NewCollateralHandler(service CollateralService) *CollateralHandler {
	return &CollateralHandler{service: service}
}

// List handles GET /collaterals[?loanApplicationId=&pledgeStatus=]
func (h *CollateralHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.CollateralFilter{PledgeStatus: domain.PledgeStatus(query.Get("pledgeStatus"))}
	if raw := query.Get("loanApplicationId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "loanApplicationId must be a valid id", nil)
			return
		}
		filter.LoanApplicationID = &id
	}

	collaterals, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.SuccessMessage(w, "Collaterals retrieved successfully", collaterals)
}

func (h *CollateralHandler) ListByLoan(w http.ResponseWriter, r *http.Request) {
	collaterals, err := h.service.ListByApplication(r.Context(), mux.Vars(r)["loanId"])
	if err != nil {
		response.Error(w, err)
		return
	}

	response.SuccessMessage(w, "Collaterals retrieved successfully", collaterals)
}

func (h *CollateralHandler) Get(w http.ResponseWriter, r *http.Request) {
	collateral, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, err)
		return
	}

	response.SuccessMessage(w, "Collateral retrieved successfully", collateral)
}

func (h *CollateralHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateCollateralRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	collateral, err := h.service.Create(r.Context(), &request)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, collateral)
}

func (h *CollateralHandler) Update(w http.ResponseWriter, r *http.Request) {
	var request domain.UpdateCollateralRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	collateral, err := h.service.Update(r.Context(), mux.Vars(r)["id"], &request)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.SuccessMessage(w, "Collateral updated successfully", collateral)
}

func (h *CollateralHandler) UpdatePledgeStatus(w http.ResponseWriter, r *http.Request) {
	var request domain.UpdatePledgeStatusRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	collateral, err := h.service.UpdatePledgeStatus(r.Context(), mux.Vars(r)["id"], &request)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.SuccessMessage(w, "Pledge status updated successfully", collateral)
}
