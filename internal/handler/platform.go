// internal/handler/platform.go
package handler

import (
	"net/http"
	"strconv"

	"github.com/dangerclosesec/accountd/internal/service"
)

type PlatformHandler struct {
	platformService *service.PlatformService
	securityService *service.SecurityService
}

func NewPlatformHandler(platformService *service.PlatformService, securityService *service.SecurityService) *PlatformHandler {
	return &PlatformHandler{
		platformService: platformService,
		securityService: securityService,
	}
}

func (h *PlatformHandler) AnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	output, err := h.platformService.Analytics(r.Context(), r.URL.Query().Get("range"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, output)
}

func (h *PlatformHandler) SecurityOverviewHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	failedLimit, _ := strconv.Atoi(r.URL.Query().Get("failed_login_limit"))

	output, err := h.securityService.Overview(r.Context(), service.OverviewInput{
		Range:            r.URL.Query().Get("range"),
		TopIPLimit:       limit,
		FailedLoginLimit: failedLimit,
	})
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, output)
}
