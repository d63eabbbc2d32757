package actor

import "errors"

var ErrForbidden = errors.New("actor is not allowed to perform this action")

// Role is supplied by the upstream identity layer. The core trusts it.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleAdmin:
		return Role(s), nil
	default:
		return "", errors.New("invalid role")
	}
}

// Actor identifies the caller of every core operation. It is threaded
// explicitly through the service layer, never held in ambient state.
type Actor struct {
	CustomerID int64
	Role       Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
