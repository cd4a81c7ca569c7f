package session

import (
	"slices"

	"github.com/nkiryanov/eventdesk/internal/models"
)

// Role names exactly as the backend sends them
const (
	RoleSuperAdministrator = "Super Administrador"
	RoleAdministrator      = "Administrador"
	RoleManager            = "Gestor"
	RolePhotographer       = "Fotógrafo"
	RoleProtocol           = "Protocolo"
)

var staffRoles = []string{
	RoleSuperAdministrator,
	RoleAdministrator,
	RoleManager,
	RolePhotographer,
	RoleProtocol,
}

func HasRole(u models.User, roles ...string) bool {
	return slices.Contains(roles, u.RoleName)
}

func (s *Store) IsSuperAdministrator() bool {
	return s.Authenticated() && HasRole(s.User(), RoleSuperAdministrator)
}

func (s *Store) IsAdministrator() bool {
	return s.Authenticated() && HasRole(s.User(), RoleAdministrator)
}

// IsMultiEventStaff is true for users that are not bound to a single event
func (s *Store) IsMultiEventStaff() bool {
	return s.Authenticated() && HasRole(s.User(), RoleAdministrator, RoleSuperAdministrator)
}

func (s *Store) IsStaff() bool {
	return s.Authenticated() && HasRole(s.User(), staffRoles...)
}
