package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/middleware"
	"github.com/api-sage/ledger-service/internal/logger"
	"github.com/api-sage/ledger-service/internal/usecase/service_interfaces"
)

type StatementController struct {
	service service_interfaces.StatementService
}

func NewStatementController(service service_interfaces.StatementService) *StatementController {
	return &StatementController{service: service}
}

func (c *StatementController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handler := http.Handler(http.HandlerFunc(c.getStatement))
	if authMiddleware != nil {
		handler = authMiddleware(handler)
	}
	mux.Handle("GET /api/v1/accounts/{accountId}/statement", handler)
}

func (c *StatementController) getStatement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID := middleware.UserIDFromContext(r.Context())
	accountID := r.PathValue("accountId")
	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")

	response, err := c.service.BuildStatement(r.Context(), userID, accountID, startDate, endDate)
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
