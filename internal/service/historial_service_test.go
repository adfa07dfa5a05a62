package service

import (
	"context"
	"testing"

	"github.com/mattygrunge/planproduccion/internal/dto"
	"github.com/mattygrunge/planproduccion/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistorialAgregaSoloActivos(t *testing.T) {
	repo := &stubLoteRepo{lotes: []model.Lote{
		{ID: 1, NumeroLote: "L-001", ProductoID: 1, Pallets: 10, Parciales: 2,
			LitrosTotales: decimal.NewFromInt(500), FechaProduccion: hoyTest, Activo: true},
		{ID: 2, NumeroLote: "L-002", ProductoID: 1, Pallets: 8, Parciales: 0,
			LitrosTotales: decimal.NewFromInt(400), FechaProduccion: hoyTest, Activo: true},
		{ID: 3, NumeroLote: "L-003", ProductoID: 1, Pallets: 99, Parciales: 9,
			LitrosTotales: decimal.NewFromInt(999), FechaProduccion: hoyTest, Activo: false},
	}}
	svc := NewHistorialService(repo)

	resp, err := svc.Consultar(context.Background(), dto.HistorialFilter{Page: 1, Size: 20})
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.Total)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, int64(2), resp.Estadisticas.TotalLotes)
	assert.True(t, resp.Estadisticas.TotalLitros.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, int64(18), resp.Estadisticas.TotalPallets)
	assert.Equal(t, int64(2), resp.Estadisticas.TotalParciales)
}

func TestHistorialOrdenInvalido(t *testing.T) {
	svc := NewHistorialService(&stubLoteRepo{})

	_, err := svc.Consultar(context.Background(), dto.HistorialFilter{OrdenCampo: "precio_unitario"})
	assert.ErrorIs(t, err, ErrOrdenInvalido)

	_, err = svc.Consultar(context.Background(), dto.HistorialFilter{OrdenDireccion: "sideways"})
	assert.ErrorIs(t, err, ErrOrdenInvalido)
}

func TestHistorialFechaInvalida(t *testing.T) {
	svc := NewHistorialService(&stubLoteRepo{})

	_, err := svc.Consultar(context.Background(), dto.HistorialFilter{FechaDesde: "15/06/2025"})
	assert.ErrorIs(t, err, ErrFechaInvalida)
}

func TestHistorialVacio(t *testing.T) {
	svc := NewHistorialService(&stubLoteRepo{})

	resp, err := svc.Consultar(context.Background(), dto.HistorialFilter{
		FechaDesde: "2025-01-01", FechaHasta: "2025-12-31",
		OrdenCampo: "numero_lote", OrdenDireccion: "asc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Total)
	assert.Empty(t, resp.Items)
	assert.Equal(t, int64(0), resp.Estadisticas.TotalLotes)
	assert.Nil(t, resp.Estadisticas.FechaPrimerLote)
}
