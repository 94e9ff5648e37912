//go:build unit || e2e

package builder

import (
	"car-rental-platform/internal/domain/user"

	"github.com/google/uuid"
)

func ClientPrincipal() user.Principal {
	return user.Principal{UserID: uuid.New(), Role: user.RoleClient}
}

func ManagerPrincipal(agencyID uuid.UUID) user.Principal {
	return user.Principal{UserID: uuid.New(), Role: user.RoleManager, AgencyID: &agencyID}
}

func AdminPrincipal() user.Principal {
	return user.Principal{UserID: uuid.New(), Role: user.RoleAdmin}
}
