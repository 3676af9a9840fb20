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

type HolderController struct {
	service service_interfaces.HolderService
	audit   service_interfaces.AuditService
}

func NewHolderController(service service_interfaces.HolderService, audit service_interfaces.AuditService) *HolderController {
	return &HolderController{service: service, audit: audit}
}

func (c *HolderController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	protect := func(handler http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(handler)
		}
		return handler
	}

	mux.Handle("POST /api/v1/holders", protect(c.createHolder))
	mux.Handle("GET /api/v1/holders/me", protect(c.getHolder))
	mux.Handle("PATCH /api/v1/holders/me", protect(c.updateHolder))
}

func (c *HolderController) createHolder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.CreateHolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.HolderResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	userID := middleware.UserIDFromContext(r.Context())

	response, err := c.service.CreateHolder(r.Context(), userID, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromServiceError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	if response.Data != nil {
		c.audit.Record(r.Context(), userID, "holder.create", "account_holder", response.Data.ID, "", clientIP(r))
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *HolderController) getHolder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID := middleware.UserIDFromContext(r.Context())

	response, err := c.service.GetHolder(r.Context(), userID)
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

func (c *HolderController) updateHolder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.UpdateHolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.HolderResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	userID := middleware.UserIDFromContext(r.Context())

	response, err := c.service.UpdateHolder(r.Context(), userID, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromServiceError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	if response.Data != nil {
		c.audit.Record(r.Context(), userID, "holder.update", "account_holder", response.Data.ID, "", clientIP(r))
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
