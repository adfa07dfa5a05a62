package repository

import (
	"context"

	"github.com/mattygrunge/planproduccion/internal/dto"
	"github.com/mattygrunge/planproduccion/internal/model"

	"gorm.io/gorm"
)

type LineaRepository interface {
	CreateTx(tx *gorm.DB, l *model.Linea) error
	FindByID(ctx context.Context, id uint) (*model.Linea, error)
	List(ctx context.Context, filter dto.LineaFilter) ([]model.Linea, int64, error)
	Update(ctx context.Context, l *model.Linea) error
	SoftDelete(ctx context.Context, id uint) error
	Reactivar(ctx context.Context, id uint) error
	DB() *gorm.DB
}

type lineaRepo struct{ db *gorm.DB }

func NewLineaRepository(db *gorm.DB) LineaRepository { return &lineaRepo{db: db} }

func (r *lineaRepo) CreateTx(tx *gorm.DB, l *model.Linea) error {
	return tx.Create(l).Error
}

func (r *lineaRepo) FindByID(ctx context.Context, id uint) (*model.Linea, error) {
	var l model.Linea
	err := r.db.WithContext(ctx).Preload("Sector").First(&l, id).Error
	return &l, err
}

func (r *lineaRepo) List(ctx context.Context, filter dto.LineaFilter) ([]model.Linea, int64, error) {
	var lineas []model.Linea
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Linea{})
	if filter.SectorID != 0 {
		q = q.Where("sector_id = ?", filter.SectorID)
	}
	if filter.Activo != nil {
		q = q.Where("activo = ?", *filter.Activo)
	}
	if filter.Search != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Size
	err := q.Preload("Sector").Order("nombre ASC").Limit(filter.Size).Offset(offset).Find(&lineas).Error
	return lineas, total, err
}

func (r *lineaRepo) Update(ctx context.Context, l *model.Linea) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *lineaRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Linea{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *lineaRepo) Reactivar(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Linea{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *lineaRepo) DB() *gorm.DB { return r.db }
