package model

import "time"

type Cliente struct {
	ID          uint    `gorm:"primaryKey"`
	Codigo      string  `gorm:"size:50;uniqueIndex;not null"`
	Nombre      string  `gorm:"size:200;index;not null"`
	RazonSocial *string `gorm:"size:200"`
	CUIT        *string `gorm:"column:cuit;size:20;uniqueIndex"`
	Direccion   *string `gorm:"size:300"`
	Telefono    *string `gorm:"size:50"`
	Email       *string `gorm:"size:100"`
	Contacto    *string `gorm:"size:100"`
	Activo      bool    `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
