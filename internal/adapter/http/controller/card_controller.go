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

type CardController struct {
	service service_interfaces.CardService
	audit   service_interfaces.AuditService
}

func NewCardController(service service_interfaces.CardService, audit service_interfaces.AuditService) *CardController {
	return &CardController{service: service, audit: audit}
}

func (c *CardController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	protect := func(handler http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(handler)
		}
		return handler
	}

	mux.Handle("POST /api/v1/cards", protect(c.createCard))
	mux.Handle("GET /api/v1/cards", protect(c.listCards))
	mux.Handle("GET /api/v1/cards/{cardId}", protect(c.getCard))
	mux.Handle("PATCH /api/v1/cards/{cardId}/status", protect(c.updateStatus))
	mux.Handle("PATCH /api/v1/cards/{cardId}/limit", protect(c.updateLimit))
}

func (c *CardController) createCard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CardResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	userID := middleware.UserIDFromContext(r.Context())

	response, err := c.service.CreateCard(r.Context(), userID, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromServiceError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	if response.Data != nil {
		c.audit.Record(r.Context(), userID, "card.create", "card", response.Data.ID, "", clientIP(r))
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *CardController) listCards(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID := middleware.UserIDFromContext(r.Context())

	response, err := c.service.ListCards(r.Context(), userID)
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

func (c *CardController) getCard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID := middleware.UserIDFromContext(r.Context())
	cardID := r.PathValue("cardId")

	response, err := c.service.GetCard(r.Context(), userID, cardID)
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

func (c *CardController) updateStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.UpdateCardStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CardResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	userID := middleware.UserIDFromContext(r.Context())
	cardID := r.PathValue("cardId")

	response, err := c.service.UpdateCardStatus(r.Context(), userID, cardID, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromServiceError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	c.audit.Record(r.Context(), userID, "card.update_status", "card", cardID, req.Status, clientIP(r))

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *CardController) updateLimit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.UpdateCardLimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CardResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	userID := middleware.UserIDFromContext(r.Context())
	cardID := r.PathValue("cardId")

	response, err := c.service.UpdateCardLimit(r.Context(), userID, cardID, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromServiceError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	c.audit.Record(r.Context(), userID, "card.update_limit", "card", cardID, "", clientIP(r))

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
