package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/middleware"
	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/commons"
	"github.com/api-sage/ledger-service/internal/logger"
	"github.com/api-sage/ledger-service/internal/usecase/service_interfaces"
)

type AccountController struct {
	accounts     service_interfaces.AccountService
	transactions service_interfaces.TransactionService
	audit        service_interfaces.AuditService
}

func NewAccountController(
	accounts service_interfaces.AccountService,
	transactions service_interfaces.TransactionService,
	audit service_interfaces.AuditService,
) *AccountController {
	return &AccountController{
		accounts:     accounts,
		transactions: transactions,
		audit:        audit,
	}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	protect := func(handler http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(handler)
		}
		return handler
	}

	mux.Handle("POST /api/v1/accounts", protect(c.createAccount))
	mux.Handle("GET /api/v1/accounts", protect(c.listAccounts))
	mux.Handle("GET /api/v1/accounts/all", protect(c.listActiveAccounts))
	mux.Handle("GET /api/v1/accounts/{accountId}", protect(c.getAccount))
	mux.Handle("PATCH /api/v1/accounts/{accountId}/status", protect(c.updateStatus))
	mux.Handle("POST /api/v1/accounts/{accountId}/deposit", protect(c.deposit))
	mux.Handle("POST /api/v1/accounts/{accountId}/withdraw", protect(c.withdraw))
	mux.Handle("GET /api/v1/accounts/{accountId}/transactions", protect(c.listTransactions))
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	userID := middleware.UserIDFromContext(r.Context())

	response, err := c.accounts.CreateAccount(r.Context(), userID, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromServiceError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	if response.Data != nil {
		c.audit.Record(r.Context(), userID, "account.create", "account", response.Data.ID, "", clientIP(r))
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID := middleware.UserIDFromContext(r.Context())

	response, err := c.accounts.ListAccounts(r.Context(), userID)
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

func (c *AccountController) listActiveAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.accounts.ListActiveAccounts(r.Context())
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

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID := middleware.UserIDFromContext(r.Context())
	accountID := r.PathValue("accountId")

	response, err := c.accounts.GetAccount(r.Context(), userID, accountID)
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

func (c *AccountController) updateStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.UpdateAccountStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	userID := middleware.UserIDFromContext(r.Context())
	accountID := r.PathValue("accountId")

	response, err := c.accounts.UpdateStatus(r.Context(), userID, accountID, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromServiceError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	c.audit.Record(r.Context(), userID, "account.update_status", "account", accountID, req.Status, clientIP(r))

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	userID := middleware.UserIDFromContext(r.Context())
	accountID := r.PathValue("accountId")

	response, err := c.transactions.Deposit(r.Context(), userID, accountID, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromServiceError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	if response.Data != nil {
		c.audit.Record(r.Context(), userID, "transaction.deposit", "transaction", response.Data.ID, response.Data.Amount, clientIP(r))
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) withdraw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var req models.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	userID := middleware.UserIDFromContext(r.Context())
	accountID := r.PathValue("accountId")

	response, err := c.transactions.Withdraw(r.Context(), userID, accountID, req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusFromServiceError(err, response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	if response.Data != nil {
		c.audit.Record(r.Context(), userID, "transaction.withdraw", "transaction", response.Data.ID, response.Data.Amount, clientIP(r))
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) listTransactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID := middleware.UserIDFromContext(r.Context())
	accountID := r.PathValue("accountId")

	transactionType, err := models.ParseTransactionType(r.URL.Query().Get("transactionType"))
	if err != nil {
		response := commons.ErrorResponse[models.TransactionListResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	query := models.ListTransactionsQuery{
		Page:            queryInt(r, "page"),
		PageSize:        queryInt(r, "pageSize"),
		TransactionType: transactionType,
	}

	response, err := c.transactions.ListTransactions(r.Context(), userID, accountID, query)
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

func queryInt(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
