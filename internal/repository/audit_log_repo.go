package repository

import (
	"context"

	"github.com/mattygrunge/planproduccion/internal/dto"
	"github.com/mattygrunge/planproduccion/internal/model"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *model.AuditLog) error
	List(ctx context.Context, filter dto.AuditoriaFilter) ([]model.AuditLog, int64, error)
}

type auditLogRepo struct{ db *gorm.DB }

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository { return &auditLogRepo{db: db} }

func (r *auditLogRepo) Create(ctx context.Context, log *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *auditLogRepo) List(ctx context.Context, filter dto.AuditoriaFilter) ([]model.AuditLog, int64, error) {
	var logs []model.AuditLog
	var total int64

	q := r.db.WithContext(ctx).Model(&model.AuditLog{})
	if filter.Entidad != "" {
		q = q.Where("entidad = ?", filter.Entidad)
	}
	if filter.Accion != "" {
		q = q.Where("accion = ?", filter.Accion)
	}
	if filter.UsuarioID != 0 {
		q = q.Where("usuario_id = ?", filter.UsuarioID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Size
	err := q.Order("fecha_hora DESC").Limit(filter.Size).Offset(offset).Find(&logs).Error
	return logs, total, err
}
