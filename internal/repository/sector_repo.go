package repository

import (
	"context"

	"github.com/mattygrunge/planproduccion/internal/dto"
	"github.com/mattygrunge/planproduccion/internal/model"

	"gorm.io/gorm"
)

type SectorRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sector) error
	FindByID(ctx context.Context, id uint) (*model.Sector, error)
	List(ctx context.Context, filter dto.ListFilter) ([]model.Sector, int64, error)
	Update(ctx context.Context, s *model.Sector) error
	SoftDelete(ctx context.Context, id uint) error
	Reactivar(ctx context.Context, id uint) error
	DB() *gorm.DB
}

type sectorRepo struct{ db *gorm.DB }

func NewSectorRepository(db *gorm.DB) SectorRepository { return &sectorRepo{db: db} }

func (r *sectorRepo) CreateTx(tx *gorm.DB, s *model.Sector) error {
	return tx.Create(s).Error
}

func (r *sectorRepo) FindByID(ctx context.Context, id uint) (*model.Sector, error) {
	var s model.Sector
	err := r.db.WithContext(ctx).Preload("Lineas").First(&s, id).Error
	return &s, err
}

func (r *sectorRepo) List(ctx context.Context, filter dto.ListFilter) ([]model.Sector, int64, error) {
	var sectores []model.Sector
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sector{})
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
	err := q.Order("nombre ASC").Limit(filter.Size).Offset(offset).Find(&sectores).Error
	return sectores, total, err
}

func (r *sectorRepo) Update(ctx context.Context, s *model.Sector) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sectorRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Sector{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *sectorRepo) Reactivar(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Sector{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *sectorRepo) DB() *gorm.DB { return r.db }
