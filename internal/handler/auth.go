// internal/handler/auth.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/service"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService    *service.AuthService
	accountService *service.AccountService
}

func NewAuthHandler(authService *service.AuthService, accountService *service.AccountService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		accountService: accountService,
	}
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.authService.Register(r.Context(), input)
	if err != nil {
		slog.ErrorContext(r.Context(), "user registration error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			respondWithError(w, http.StatusConflict, "Email already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, output)
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.authService.Login(r.Context(), input, clientIP(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			slog.ErrorContext(r.Context(), "login error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, output)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var input forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.authService.ForgotPassword(r.Context(), input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, output)
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	var input resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.authService.ResetPassword(r.Context(), token, input.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired), errors.Is(err, domain.ErrTokenInvalid):
			respondWithError(w, http.StatusBadRequest, "Invalid or expired token")
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

// VerifyHandler introspects the presented credential without requiring the
// guard. Both "Bearer <token>" and bare tokens are accepted.
func (h *AuthHandler) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if header == "" {
		respondWithError(w, http.StatusUnauthorized, "authorization required")
		return
	}
	token := strings.TrimPrefix(header, "Bearer ")

	output, err := h.authService.Verify(r.Context(), token)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	respondWithJSON(w, http.StatusOK, output)
}

type switchProductRequest struct {
	AccountID   uuid.UUID `json:"account_id"`
	ProductCode string    `json:"product_code"`
}

// SwitchProductHandler exchanges an authorized base credential plus an ACTIVE
// enrollment for a product-scoped credential.
func (h *AuthHandler) SwitchProductHandler(w http.ResponseWriter, r *http.Request) {
	claims, userID, ok := identity(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var input switchProductRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	canAccess, err := h.accountService.CanAccess(r.Context(), userID, input.AccountID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !canAccess {
		respondWithError(w, http.StatusUnauthorized, "You do not have access to this account")
		return
	}

	output, err := h.accountService.SwitchProduct(r.Context(), userID, claims.Email, input.AccountID, input.ProductCode)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotEnrolled):
			respondWithError(w, http.StatusBadRequest, domain.ErrNotEnrolled.Error())
		case errors.Is(err, domain.ErrEnrollmentNotActive):
			respondWithError(w, http.StatusBadRequest, domain.ErrEnrollmentNotActive.Error())
		case errors.Is(err, domain.ErrAccountNotFound):
			respondWithError(w, http.StatusNotFound, "Account not found")
		default:
			slog.ErrorContext(r.Context(), "switch product error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, output)
}

func clientIP(r *http.Request) string {
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 {
		return host[:i]
	}
	if host == "" {
		return "unknown"
	}
	return host
}
