// internal/handler/account.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/service"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// requireAccess resolves the authenticated user and checks the access
// predicate against the target account. It writes the response itself on
// failure.
func (h *AccountHandler) requireAccess(w http.ResponseWriter, r *http.Request, accountID uuid.UUID) (uuid.UUID, string, bool) {
	claims, userID, ok := identity(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return uuid.Nil, "", false
	}

	canAccess, err := h.accountService.CanAccess(r.Context(), userID, accountID)
	if err != nil {
		slog.ErrorContext(r.Context(), "access check error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return uuid.Nil, "", false
	}
	if !canAccess {
		respondWithError(w, http.StatusUnauthorized, "You do not have access to this account")
		return uuid.Nil, "", false
	}

	return userID, claims.Email, true
}

func (h *AccountHandler) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathUUID(r, "accountId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	if _, _, ok := h.requireAccess(w, r, accountID); !ok {
		return
	}

	account, err := h.accountService.GetAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			respondWithError(w, http.StatusNotFound, "Account not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) GetUserAccountsHandler(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := identity(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	accounts, err := h.accountService.GetUserAccounts(r.Context(), userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"accounts": accounts})
}

func (h *AccountHandler) GetAccountProductsHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathUUID(r, "accountId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	if _, _, ok := h.requireAccess(w, r, accountID); !ok {
		return
	}

	products, err := h.accountService.GetAccountProducts(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			respondWithError(w, http.StatusNotFound, "Account not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *AccountHandler) EnrollProductHandler(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathUUID(r, "accountId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid account id")
		return
	}

	if _, _, ok := h.requireAccess(w, r, accountID); !ok {
		return
	}

	var input service.EnrollProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.accountService.EnrollProduct(r.Context(), accountID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			respondWithError(w, http.StatusNotFound, domain.ErrAccountNotFound.Error())
		case errors.Is(err, domain.ErrProductNotFound):
			respondWithError(w, http.StatusNotFound, domain.ErrProductNotFound.Error())
		case errors.Is(err, domain.ErrAlreadyEnrolled):
			respondWithError(w, http.StatusConflict, domain.ErrAlreadyEnrolled.Error())
		case errors.Is(err, domain.ErrProvisioningFailed):
			respondWithError(w, http.StatusBadRequest, domain.ErrProvisioningFailed.Error())
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			slog.ErrorContext(r.Context(), "enrollment error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, output)
}
