package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/middleware"
	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/commons"
	"github.com/api-sage/ledger-service/internal/logger"
	"github.com/api-sage/ledger-service/internal/usecase/service_interfaces"
)

type TransferController struct {
	service service_interfaces.TransferService
	audit   service_interfaces.AuditService
}

func NewTransferController(service service_interfaces.TransferService, audit service_interfaces.AuditService) *TransferController {
	return &TransferController{service: service, audit: audit}
}

func (c *TransferController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	protect := func(handler http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(handler)
		}
		return handler
	}

	mux.Handle("POST /api/v1/transfers", protect(c.createTransfer))
	mux.Handle("GET /api/v1/transfers/{transferId}", protect(c.getTransfer))
}

func (c *TransferController) createTransfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	userID := middleware.UserIDFromContext(r.Context())

	response, err := c.service.CreateTransfer(r.Context(), userID, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromServiceError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	status := http.StatusCreated
	if response.Message == "transfer already processed" {
		status = http.StatusOK
	}

	if response.Data != nil {
		c.audit.Record(r.Context(), userID, "transfer.create", "transfer", response.Data.ID, response.Data.Amount, clientIP(r))
	}

	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func (c *TransferController) getTransfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID := middleware.UserIDFromContext(r.Context())
	transferID := r.PathValue("transferId")

	response, err := c.service.GetTransfer(r.Context(), userID, transferID)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromServiceError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
