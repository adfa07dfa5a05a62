package repository

import (
	"context"
	"time"

	"github.com/mattygrunge/planproduccion/internal/dto"
	"github.com/mattygrunge/planproduccion/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LoteRepository defines the data access contract for lotes.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type LoteRepository interface {
	CreateTx(tx *gorm.DB, l *model.Lote) error
	FindByID(ctx context.Context, id uint) (*model.Lote, error)
	List(ctx context.Context, filter dto.LoteFilter) ([]model.Lote, int64, error)
	Update(ctx context.Context, l *model.Lote) error
	SoftDelete(ctx context.Context, id uint) error

	// ExisteDuplicado reports whether an active lote with the same label and
	// product exists, excluding excluirID when editing (0 = no exclusion).
	ExisteDuplicado(ctx context.Context, numeroLote string, productoID uint, excluirID uint) (bool, error)

	// FindUltimoByProducto returns the most recently inserted active lote of
	// the product (highest id), or gorm.ErrRecordNotFound.
	FindUltimoByProducto(ctx context.Context, productoID uint) (*model.Lote, error)

	// Historial pages active lotes with date-range filters and a whitelisted
	// sort column; ResumenHistorial aggregates the same filtered set.
	Historial(ctx context.Context, filter dto.HistorialFilter) ([]model.Lote, int64, error)
	ResumenHistorial(ctx context.Context, filter dto.HistorialFilter) (*ResumenLotes, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type loteRepo struct{ db *gorm.DB }

func NewLoteRepository(db *gorm.DB) LoteRepository { return &loteRepo{db: db} }

func (r *loteRepo) CreateTx(tx *gorm.DB, l *model.Lote) error {
	return tx.Create(l).Error
}

func (r *loteRepo) FindByID(ctx context.Context, id uint) (*model.Lote, error) {
	var l model.Lote
	err := r.db.WithContext(ctx).
		Preload("Producto").
		Preload("EstadoLinea").
		First(&l, id).Error
	return &l, err
}

func (r *loteRepo) List(ctx context.Context, filter dto.LoteFilter) ([]model.Lote, int64, error) {
	var lotes []model.Lote
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Lote{})

	if filter.ProductoID != 0 {
		q = q.Where("producto_id = ?", filter.ProductoID)
	}
	if filter.EstadoLineaID != 0 {
		q = q.Where("estado_linea_id = ?", filter.EstadoLineaID)
	}
	if filter.Activo != nil {
		q = q.Where("activo = ?", *filter.Activo)
	}
	if filter.Search != "" {
		q = q.Where("numero_lote ILIKE ?", "%"+filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Size
	err := q.Preload("Producto").Preload("EstadoLinea").
		Order("id DESC").Limit(filter.Size).Offset(offset).
		Find(&lotes).Error
	return lotes, total, err
}

func (r *loteRepo) Update(ctx context.Context, l *model.Lote) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *loteRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Lote{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *loteRepo) ExisteDuplicado(ctx context.Context, numeroLote string, productoID uint, excluirID uint) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Lote{}).
		Where("numero_lote = ? AND producto_id = ? AND activo = true", numeroLote, productoID)
	if excluirID != 0 {
		q = q.Where("id <> ?", excluirID)
	}
	var total int64
	err := q.Count(&total).Error
	return total > 0, err
}

func (r *loteRepo) FindUltimoByProducto(ctx context.Context, productoID uint) (*model.Lote, error) {
	var l model.Lote
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND activo = true", productoID).
		Order("id DESC").
		First(&l).Error
	return &l, err
}

// ResumenLotes son los agregados del historial para el filtro aplicado.
type ResumenLotes struct {
	TotalLotes      int64
	TotalLitros     decimal.Decimal
	TotalPallets    int64
	TotalParciales  int64
	ProductosUnicos int64
	FechaPrimerLote *time.Time
	FechaUltimoLote *time.Time
}

// Columnas aceptadas para ordenar el historial. Cualquier otro valor cae en
// fecha_produccion; el valor nunca se interpola sin pasar por esta tabla.
var columnasOrdenHistorial = map[string]bool{
	"fecha_produccion": true,
	"numero_lote":      true,
	"litros_totales":   true,
	"created_at":       true,
}

func (r *loteRepo) historialQuery(ctx context.Context, filter dto.HistorialFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Lote{}).Where("activo = true")
	if filter.FechaDesde != "" {
		q = q.Where("fecha_produccion >= ?", filter.FechaDesde)
	}
	if filter.FechaHasta != "" {
		q = q.Where("fecha_produccion <= ?", filter.FechaHasta)
	}
	if filter.ProductoID != 0 {
		q = q.Where("producto_id = ?", filter.ProductoID)
	}
	if filter.NumeroLote != "" {
		q = q.Where("numero_lote ILIKE ?", "%"+filter.NumeroLote+"%")
	}
	return q
}

func (r *loteRepo) Historial(ctx context.Context, filter dto.HistorialFilter) ([]model.Lote, int64, error) {
	var lotes []model.Lote
	var total int64

	q := r.historialQuery(ctx, filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	columna := filter.OrdenCampo
	if !columnasOrdenHistorial[columna] {
		columna = "fecha_produccion"
	}
	direccion := "DESC"
	if filter.OrdenDireccion == "asc" {
		direccion = "ASC"
	}

	offset := (filter.Page - 1) * filter.Size
	err := q.Preload("Producto").Preload("EstadoLinea").
		Order(columna + " " + direccion).Limit(filter.Size).Offset(offset).
		Find(&lotes).Error
	return lotes, total, err
}

func (r *loteRepo) ResumenHistorial(ctx context.Context, filter dto.HistorialFilter) (*ResumenLotes, error) {
	var resumen ResumenLotes
	err := r.historialQuery(ctx, filter).
		Select(`COUNT(id) AS total_lotes,
			COALESCE(SUM(litros_totales), 0) AS total_litros,
			COALESCE(SUM(pallets), 0) AS total_pallets,
			COALESCE(SUM(parciales), 0) AS total_parciales,
			COUNT(DISTINCT producto_id) AS productos_unicos,
			MIN(fecha_produccion) AS fecha_primer_lote,
			MAX(fecha_produccion) AS fecha_ultimo_lote`).
		Scan(&resumen).Error
	if err != nil {
		return nil, err
	}
	return &resumen, nil
}

func (r *loteRepo) DB() *gorm.DB { return r.db }
