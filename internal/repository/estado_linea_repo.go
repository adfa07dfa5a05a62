package repository

import (
	"context"

	"github.com/mattygrunge/planproduccion/internal/dto"
	"github.com/mattygrunge/planproduccion/internal/model"

	"gorm.io/gorm"
)

type EstadoLineaRepository interface {
	CreateTx(tx *gorm.DB, e *model.EstadoLinea) error
	FindByID(ctx context.Context, id uint) (*model.EstadoLinea, error)
	List(ctx context.Context, filter dto.EstadoLineaFilter) ([]model.EstadoLinea, int64, error)
	Update(ctx context.Context, e *model.EstadoLinea) error
	SoftDelete(ctx context.Context, id uint) error
	DB() *gorm.DB
}

type estadoLineaRepo struct{ db *gorm.DB }

func NewEstadoLineaRepository(db *gorm.DB) EstadoLineaRepository {
	return &estadoLineaRepo{db: db}
}

func (r *estadoLineaRepo) CreateTx(tx *gorm.DB, e *model.EstadoLinea) error {
	return tx.Create(e).Error
}

func (r *estadoLineaRepo) FindByID(ctx context.Context, id uint) (*model.EstadoLinea, error) {
	var e model.EstadoLinea
	err := r.db.WithContext(ctx).Preload("Sector").Preload("Linea").First(&e, id).Error
	return &e, err
}

func (r *estadoLineaRepo) List(ctx context.Context, filter dto.EstadoLineaFilter) ([]model.EstadoLinea, int64, error) {
	var estados []model.EstadoLinea
	var total int64

	q := r.db.WithContext(ctx).Model(&model.EstadoLinea{})
	if filter.SectorID != 0 {
		q = q.Where("sector_id = ?", filter.SectorID)
	}
	if filter.LineaID != 0 {
		q = q.Where("linea_id = ?", filter.LineaID)
	}
	if filter.TipoEstado != "" {
		q = q.Where("tipo_estado = ?", filter.TipoEstado)
	}
	if filter.Activo != nil {
		q = q.Where("activo = ?", *filter.Activo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Size
	err := q.Preload("Sector").Preload("Linea").
		Order("fecha_hora_inicio DESC").Limit(filter.Size).Offset(offset).
		Find(&estados).Error
	return estados, total, err
}

func (r *estadoLineaRepo) Update(ctx context.Context, e *model.EstadoLinea) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *estadoLineaRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.EstadoLinea{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *estadoLineaRepo) DB() *gorm.DB { return r.db }
