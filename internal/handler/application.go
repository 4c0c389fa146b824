package handler

import (
	"net/http"

	"github.com/segyhp/lamf-engine/internal/domain"
	"github.com/segyhp/lamf-engine/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ApplicationHandler struct {
	service ApplicationService
}

func NewApplicationHandler(service ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// List handles GET /loan-applications[?status=&loanProductId=]
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.LoanApplicationFilter{Status: domain.ApplicationStatus(query.Get("status"))}
	if raw := query.Get("loanProductId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "loanProductId must be a valid id", nil)
			return
		}
		filter.LoanProductID = &id
	}

	apps, err := h.service.List(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.SuccessMessage(w, "Loan applications retrieved successfully", apps)
}

func (h *ApplicationHandler) ListOngoing(w http.ResponseWriter, r *http.Request) {
	apps, err := h.service.ListOngoing(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.SuccessMessage(w, "Ongoing loans retrieved successfully", apps)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, err)
		return
	}

	response.SuccessMessage(w, "Loan application retrieved successfully", detail)
}

// Create handles POST /loan-applications and POST /loan-applications/api
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "No token provided, authorization denied")
		return
	}

	var request domain.CreateLoanApplicationRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	app, err := h.service.Create(r.Context(), actor, &request)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, app)
}

func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "No token provided, authorization denied")
		return
	}

	var request domain.UpdateLoanApplicationRequest
	if !decodeJSON(w, r, &request) {
		return
	}
	if request.Force && !actor.IsAdmin() {
		response.Forbidden(w, "Access denied. Only admins may force a status change.")
		return
	}

	app, err := h.service.UpdateStatus(r.Context(), actor, mux.Vars(r)["id"], &request)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.SuccessMessage(w, "Loan application updated successfully", app)
}
