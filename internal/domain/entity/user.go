package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// Estados de un usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema (asesor comercial o administrador).
type User struct {
	ID                   string
	Email                string
	PasswordHash         string // bcrypt hash, nunca plano en dominio después de persistir
	Name                 string
	IdentificationNumber string // cédula; coincide con el código de vendedor del cliente en la intranet
	Role                 string // admin, vendedor
	Status               string // active, inactive
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
