package model

import "time"

// Roles del sistema.
const (
	RolOperador      = "operador"
	RolSupervisor    = "supervisor"
	RolAdministrador = "administrador"
)

type Usuario struct {
	ID           uint    `gorm:"primaryKey"`
	Codigo       string  `gorm:"size:50;uniqueIndex;not null"`
	Username     string  `gorm:"size:100;uniqueIndex;not null"`
	Nombre       string  `gorm:"size:200;not null"`
	Email        *string `gorm:"size:100"`
	PasswordHash string  `gorm:"size:100;not null"`
	Rol          string  `gorm:"size:30;not null;default:'operador'"`
	Activo       bool    `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
