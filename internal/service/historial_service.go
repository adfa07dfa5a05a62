package service

import (
	"context"
	"time"

	"github.com/mattygrunge/planproduccion/internal/dto"
	"github.com/mattygrunge/planproduccion/internal/repository"
)

// HistorialService es la vista de consulta sobre los lotes registrados:
// filtros por rango de fechas, producto y número, más agregados del conjunto
// filtrado completo (no solo de la página).
type HistorialService interface {
	Consultar(ctx context.Context, filter dto.HistorialFilter) (*dto.HistorialResponse, error)
}

type historialService struct {
	lotes repository.LoteRepository
}

func NewHistorialService(lotes repository.LoteRepository) HistorialService {
	return &historialService{lotes: lotes}
}

var camposOrdenHistorial = map[string]bool{
	"fecha_produccion": true,
	"numero_lote":      true,
	"litros_totales":   true,
	"created_at":       true,
}

func (s *historialService) Consultar(ctx context.Context, filter dto.HistorialFilter) (*dto.HistorialResponse, error) {
	if filter.FechaDesde != "" {
		if _, err := time.Parse(fechaLayout, filter.FechaDesde); err != nil {
			return nil, ErrFechaInvalida
		}
	}
	if filter.FechaHasta != "" {
		if _, err := time.Parse(fechaLayout, filter.FechaHasta); err != nil {
			return nil, ErrFechaInvalida
		}
	}
	if filter.OrdenCampo != "" && !camposOrdenHistorial[filter.OrdenCampo] {
		return nil, ErrOrdenInvalido
	}
	if filter.OrdenDireccion != "" && filter.OrdenDireccion != "asc" && filter.OrdenDireccion != "desc" {
		return nil, ErrOrdenInvalido
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size < 1 {
		filter.Size = 20
	}

	lotes, total, err := s.lotes.Historial(ctx, filter)
	if err != nil {
		return nil, err
	}
	resumen, err := s.lotes.ResumenHistorial(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.LoteResponse, 0, len(lotes))
	for i := range lotes {
		items = append(items, *loteToResponse(&lotes[i]))
	}

	estadisticas := dto.HistorialEstadisticas{
		TotalLotes:      resumen.TotalLotes,
		TotalLitros:     resumen.TotalLitros,
		TotalPallets:    resumen.TotalPallets,
		TotalParciales:  resumen.TotalParciales,
		ProductosUnicos: resumen.ProductosUnicos,
	}
	if resumen.FechaPrimerLote != nil {
		f := resumen.FechaPrimerLote.Format(fechaLayout)
		estadisticas.FechaPrimerLote = &f
	}
	if resumen.FechaUltimoLote != nil {
		f := resumen.FechaUltimoLote.Format(fechaLayout)
		estadisticas.FechaUltimoLote = &f
	}

	return &dto.HistorialResponse{
		Items:        items,
		Estadisticas: estadisticas,
		Total:        total,
		Page:         filter.Page,
		Size:         filter.Size,
		Pages:        int((total + int64(filter.Size) - 1) / int64(filter.Size)),
	}, nil
}
