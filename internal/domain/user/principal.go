package user

import (
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole      = errors.New("invalid role")
	ErrManagerNoAgency  = errors.New("manager principal requires an agency")
	ErrInvalidPrincipal = errors.New("invalid principal")
)

type Role string

const (
	RoleClient  Role = "client"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// StaffRoles may act on reservations they do not own.
var StaffRoles = []Role{RoleManager, RoleAdmin}

func (r Role) String() string {
	return string(r)
}

// ParseRole accepts role claims case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r != RoleClient && !slices.Contains(StaffRoles, r) {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Principal is the authenticated caller of a single request.
type Principal struct {
	UserID   uuid.UUID
	Role     Role
	AgencyID *uuid.UUID
}

func NewPrincipal(userID uuid.UUID, role string, agencyID *uuid.UUID) (Principal, error) {
	if userID == uuid.Nil {
		return Principal{}, ErrInvalidPrincipal
	}
	r, err := ParseRole(role)
	if err != nil {
		return Principal{}, err
	}
	if r == RoleManager && agencyID == nil {
		return Principal{}, ErrManagerNoAgency
	}
	return Principal{UserID: userID, Role: r, AgencyID: agencyID}, nil
}

func (p Principal) IsClient() bool  { return p.Role == RoleClient }
func (p Principal) IsManager() bool { return p.Role == RoleManager }
func (p Principal) IsAdmin() bool   { return p.Role == RoleAdmin }

// CanManageAgency is true for admins and for managers of agencyID.
func (p Principal) CanManageAgency(agencyID uuid.UUID) bool {
	switch p.Role {
	case RoleAdmin:
		return true
	case RoleManager:
		return p.AgencyID != nil && *p.AgencyID == agencyID
	default:
		return false
	}
}

// CanView reports whether p may read a reservation owned by ownerID in agencyID.
func (p Principal) CanView(ownerID, agencyID uuid.UUID) bool {
	if p.IsClient() {
		return p.UserID == ownerID
	}
	return p.CanManageAgency(agencyID)
}
