package models

const (
	RoleReception = "reception"
	RoleGate      = "gate"
	RoleManager   = "manager"
)

// StaffUser is a back-office account.
type StaffUser struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Status       string `json:"status"`
}
