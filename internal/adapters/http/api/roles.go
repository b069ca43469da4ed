package api

import (
	"net/http"

	"github.com/okian/resumeguide/internal/domain/types"
)

// RolesHandler handles catalog requests.
type RolesHandler struct {
	deps RolesDependencies
}

// NewRolesHandler creates a new roles handler.
func NewRolesHandler(deps RolesDependencies) *RolesHandler {
	return &RolesHandler{deps: deps}
}

type rolesResponse struct {
	Roles []types.RoleSkills `json:"roles"`
}

// HandleGetRoles handles GET /v1/roles requests.
func (h *RolesHandler) HandleGetRoles(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "api.get_roles", http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, rolesResponse{Roles: h.deps.Roles(r.Context())})
}
