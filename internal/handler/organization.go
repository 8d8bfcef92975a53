// internal/handler/organization.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dangerclosesec/accountd/internal/domain"
	"github.com/dangerclosesec/accountd/internal/model"
	"github.com/dangerclosesec/accountd/internal/service"
	"github.com/google/uuid"
)

type OrganizationHandler struct {
	orgService *service.OrganizationService
}

func NewOrganizationHandler(orgService *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

func (h *OrganizationHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := identity(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var input service.CreateOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.orgService.CreateOrganization(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusCreated, output)
}

func (h *OrganizationHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	orgID, _, ok := h.memberOrReject(w, r)
	if !ok {
		return
	}

	org, err := h.orgService.GetOrganization(r.Context(), orgID)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			respondWithError(w, http.StatusNotFound, "Organization not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	orgID, userID, ok := h.resolveOrg(w, r)
	if !ok {
		return
	}

	isOwner, err := h.orgService.IsOwner(r.Context(), orgID, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !isOwner {
		respondWithError(w, http.StatusUnauthorized, "Only the organization owner can do this")
		return
	}

	var input service.UpdateOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	org, err := h.orgService.UpdateOrganization(r.Context(), orgID, input)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			respondWithError(w, http.StatusNotFound, "Organization not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, org)
}

type addMemberRequest struct {
	UserID uuid.UUID        `json:"user_id"`
	Role   model.MemberRole `json:"role"`
}

func (h *OrganizationHandler) AddMemberHandler(w http.ResponseWriter, r *http.Request) {
	orgID, userID, ok := h.resolveOrg(w, r)
	if !ok {
		return
	}

	isOwner, err := h.orgService.IsOwner(r.Context(), orgID, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !isOwner {
		respondWithError(w, http.StatusUnauthorized, "Only the organization owner can do this")
		return
	}

	var input addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	member, err := h.orgService.AddMember(r.Context(), orgID, input.UserID, input.Role)
	if err != nil {
		if errors.Is(err, domain.ErrMemberAlreadyExists) {
			respondWithError(w, http.StatusConflict, "Member already exists")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusCreated, member)
}

func (h *OrganizationHandler) RemoveMemberHandler(w http.ResponseWriter, r *http.Request) {
	orgID, userID, ok := h.resolveOrg(w, r)
	if !ok {
		return
	}

	memberID, ok := pathUUID(r, "userId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	isOwner, err := h.orgService.IsOwner(r.Context(), orgID, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !isOwner {
		respondWithError(w, http.StatusUnauthorized, "Only the organization owner can do this")
		return
	}

	if err := h.orgService.RemoveMember(r.Context(), orgID, memberID); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			respondWithError(w, http.StatusNotFound, "Member not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Member removed successfully"})
}

func (h *OrganizationHandler) ListMembersHandler(w http.ResponseWriter, r *http.Request) {
	orgID, _, ok := h.memberOrReject(w, r)
	if !ok {
		return
	}

	members, err := h.orgService.ListMembers(r.Context(), orgID)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			respondWithError(w, http.StatusNotFound, "Organization not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

// resolveOrg parses the route and authenticates the caller without any
// membership requirement.
func (h *OrganizationHandler) resolveOrg(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	orgID, ok := pathUUID(r, "organizationId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid organization id")
		return uuid.Nil, uuid.Nil, false
	}

	_, userID, ok := identity(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return uuid.Nil, uuid.Nil, false
	}

	return orgID, userID, true
}

// memberOrReject additionally requires the caller to be a member of the
// organization.
func (h *OrganizationHandler) memberOrReject(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	orgID, userID, ok := h.resolveOrg(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	isMember, err := h.orgService.IsMember(r.Context(), orgID, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return uuid.Nil, uuid.Nil, false
	}
	if !isMember {
		respondWithError(w, http.StatusUnauthorized, "You are not a member of this organization")
		return uuid.Nil, uuid.Nil, false
	}

	return orgID, userID, true
}
