package service

import (
	"context"
	"testing"

	"github.com/mattygrunge/planproduccion/internal/dto"
	"github.com/mattygrunge/planproduccion/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubSectorRepo struct {
	sectores map[uint]*model.Sector
}

func (r *stubSectorRepo) CreateTx(tx *gorm.DB, s *model.Sector) error { return nil }
func (r *stubSectorRepo) FindByID(ctx context.Context, id uint) (*model.Sector, error) {
	if s, ok := r.sectores[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *stubSectorRepo) List(ctx context.Context, filter dto.ListFilter) ([]model.Sector, int64, error) {
	return nil, 0, nil
}
func (r *stubSectorRepo) Update(ctx context.Context, s *model.Sector) error { return nil }
func (r *stubSectorRepo) SoftDelete(ctx context.Context, id uint) error     { return nil }
func (r *stubSectorRepo) Reactivar(ctx context.Context, id uint) error      { return nil }
func (r *stubSectorRepo) DB() *gorm.DB                                      { return nil }

type stubLineaRepo struct {
	lineas map[uint]*model.Linea
}

func (r *stubLineaRepo) CreateTx(tx *gorm.DB, l *model.Linea) error { return nil }
func (r *stubLineaRepo) FindByID(ctx context.Context, id uint) (*model.Linea, error) {
	if l, ok := r.lineas[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *stubLineaRepo) List(ctx context.Context, filter dto.LineaFilter) ([]model.Linea, int64, error) {
	return nil, 0, nil
}
func (r *stubLineaRepo) Update(ctx context.Context, l *model.Linea) error { return nil }
func (r *stubLineaRepo) SoftDelete(ctx context.Context, id uint) error    { return nil }
func (r *stubLineaRepo) Reactivar(ctx context.Context, id uint) error     { return nil }
func (r *stubLineaRepo) DB() *gorm.DB                                     { return nil }

func newEstadoLineaServiceTest() EstadoLineaService {
	sectores := &stubSectorRepo{sectores: map[uint]*model.Sector{
		1: {ID: 1, Codigo: "SC250001", Nombre: "Envasado"},
		3: {ID: 3, Codigo: "SC250002", Nombre: "Elaboración"},
	}}
	lineas := &stubLineaRepo{lineas: map[uint]*model.Linea{
		2: {ID: 2, Codigo: "LN250001", Nombre: "Línea 1", SectorID: 1},
	}}
	return NewEstadoLineaService(&stubEstadoRepo{estados: map[uint]*model.EstadoLinea{}}, sectores, lineas, &stubAllocator{}, nil)
}

func TestCrearEstadoCalculaDuracion(t *testing.T) {
	svc := newEstadoLineaServiceTest()

	fin := "2025-06-15T10:30:00Z"
	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearEstadoLineaRequest{
		SectorID:        1,
		LineaID:         2,
		TipoEstado:      model.EstadoProduccion,
		FechaHoraInicio: "2025-06-15T08:00:00Z",
		FechaHoraFin:    &fin,
	})
	require.NoError(t, err)

	assert.Equal(t, "EL250001", resp.Codigo)
	require.NotNil(t, resp.DuracionMinutos)
	assert.Equal(t, 150, *resp.DuracionMinutos)
}

func TestCrearEstadoSinFinQuedaAbierto(t *testing.T) {
	svc := newEstadoLineaServiceTest()

	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearEstadoLineaRequest{
		SectorID:        1,
		LineaID:         2,
		TipoEstado:      model.EstadoLimpieza,
		FechaHoraInicio: "2025-06-15T08:00:00Z",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.FechaHoraFin)
	assert.Nil(t, resp.DuracionMinutos)
}

func TestCrearEstadoTipoInvalido(t *testing.T) {
	svc := newEstadoLineaServiceTest()

	_, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearEstadoLineaRequest{
		SectorID:        1,
		LineaID:         2,
		TipoEstado:      "vacaciones",
		FechaHoraInicio: "2025-06-15T08:00:00Z",
	})
	assert.ErrorIs(t, err, ErrTipoEstadoInvalido)
}

func TestCrearEstadoFinAnteriorAlInicio(t *testing.T) {
	svc := newEstadoLineaServiceTest()

	fin := "2025-06-15T07:00:00Z"
	_, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearEstadoLineaRequest{
		SectorID:        1,
		LineaID:         2,
		TipoEstado:      model.EstadoProduccion,
		FechaHoraInicio: "2025-06-15T08:00:00Z",
		FechaHoraFin:    &fin,
	})
	assert.ErrorIs(t, err, ErrRangoFechasInvalido)
}

func TestCrearEstadoLineaDeOtroSector(t *testing.T) {
	svc := newEstadoLineaServiceTest()

	_, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearEstadoLineaRequest{
		SectorID:        3,
		LineaID:         2,
		TipoEstado:      model.EstadoProduccion,
		FechaHoraInicio: "2025-06-15T08:00:00Z",
	})
	assert.ErrorIs(t, err, ErrLineaNoEncontrada)
}

func TestCrearEstadoSectorInexistente(t *testing.T) {
	svc := newEstadoLineaServiceTest()

	_, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearEstadoLineaRequest{
		SectorID:        9,
		LineaID:         2,
		TipoEstado:      model.EstadoProduccion,
		FechaHoraInicio: "2025-06-15T08:00:00Z",
	})
	assert.ErrorIs(t, err, ErrSectorNoEncontrado)
}

func TestTiposDisponibles(t *testing.T) {
	svc := newEstadoLineaServiceTest()
	tipos := svc.TiposDisponibles()
	assert.Equal(t, model.TiposEstado, tipos)
	assert.Contains(t, tipos, model.EstadoProduccion)
}
