package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mattygrunge/planproduccion/internal/codigo"
	"github.com/mattygrunge/planproduccion/internal/dto"
	"github.com/mattygrunge/planproduccion/internal/model"
	"github.com/mattygrunge/planproduccion/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ────────────────────────────────────────────────────────────────────

type stubLoteRepo struct {
	lotes      []model.Lote
	nextID     uint
	fallosAlta int // CreateTx devuelve ErrDuplicatedKey esta cantidad de veces
	altas      int
}

func (r *stubLoteRepo) CreateTx(tx *gorm.DB, l *model.Lote) error {
	r.altas++
	if r.fallosAlta > 0 {
		r.fallosAlta--
		return gorm.ErrDuplicatedKey
	}
	r.nextID++
	l.ID = r.nextID
	r.lotes = append(r.lotes, *l)
	return nil
}

func (r *stubLoteRepo) FindByID(ctx context.Context, id uint) (*model.Lote, error) {
	for i := range r.lotes {
		if r.lotes[i].ID == id {
			l := r.lotes[i]
			return &l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLoteRepo) List(ctx context.Context, filter dto.LoteFilter) ([]model.Lote, int64, error) {
	return r.lotes, int64(len(r.lotes)), nil
}

func (r *stubLoteRepo) Update(ctx context.Context, l *model.Lote) error {
	for i := range r.lotes {
		if r.lotes[i].ID == l.ID {
			r.lotes[i] = *l
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubLoteRepo) SoftDelete(ctx context.Context, id uint) error {
	for i := range r.lotes {
		if r.lotes[i].ID == id {
			r.lotes[i].Activo = false
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubLoteRepo) ExisteDuplicado(ctx context.Context, numeroLote string, productoID uint, excluirID uint) (bool, error) {
	for i := range r.lotes {
		l := &r.lotes[i]
		if l.NumeroLote == numeroLote && l.ProductoID == productoID && l.Activo && l.ID != excluirID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubLoteRepo) FindUltimoByProducto(ctx context.Context, productoID uint) (*model.Lote, error) {
	for i := len(r.lotes) - 1; i >= 0; i-- {
		if r.lotes[i].ProductoID == productoID && r.lotes[i].Activo {
			l := r.lotes[i]
			return &l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLoteRepo) Historial(ctx context.Context, filter dto.HistorialFilter) ([]model.Lote, int64, error) {
	activos := make([]model.Lote, 0)
	for _, l := range r.lotes {
		if l.Activo {
			activos = append(activos, l)
		}
	}
	return activos, int64(len(activos)), nil
}

func (r *stubLoteRepo) ResumenHistorial(ctx context.Context, filter dto.HistorialFilter) (*repository.ResumenLotes, error) {
	resumen := &repository.ResumenLotes{}
	for _, l := range r.lotes {
		if !l.Activo {
			continue
		}
		resumen.TotalLotes++
		resumen.TotalLitros = resumen.TotalLitros.Add(l.LitrosTotales)
		resumen.TotalPallets += int64(l.Pallets)
		resumen.TotalParciales += int64(l.Parciales)
	}
	return resumen, nil
}

func (r *stubLoteRepo) DB() *gorm.DB { return nil }

type stubProductoRepo struct {
	productos map[uint]*model.Producto
}

func (r *stubProductoRepo) CreateTx(tx *gorm.DB, p *model.Producto) error { return nil }
func (r *stubProductoRepo) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	if p, ok := r.productos[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *stubProductoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	return nil, 0, nil
}
func (r *stubProductoRepo) Update(ctx context.Context, p *model.Producto) error { return nil }
func (r *stubProductoRepo) SoftDelete(ctx context.Context, id uint) error       { return nil }
func (r *stubProductoRepo) Reactivar(ctx context.Context, id uint) error        { return nil }
func (r *stubProductoRepo) DB() *gorm.DB                                        { return nil }

type stubEstadoRepo struct {
	estados map[uint]*model.EstadoLinea
}

func (r *stubEstadoRepo) CreateTx(tx *gorm.DB, e *model.EstadoLinea) error { return nil }
func (r *stubEstadoRepo) FindByID(ctx context.Context, id uint) (*model.EstadoLinea, error) {
	if e, ok := r.estados[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *stubEstadoRepo) List(ctx context.Context, filter dto.EstadoLineaFilter) ([]model.EstadoLinea, int64, error) {
	return nil, 0, nil
}
func (r *stubEstadoRepo) Update(ctx context.Context, e *model.EstadoLinea) error { return nil }
func (r *stubEstadoRepo) SoftDelete(ctx context.Context, id uint) error          { return nil }
func (r *stubEstadoRepo) DB() *gorm.DB                                           { return nil }

type stubAllocator struct {
	secuencia int
}

func (a *stubAllocator) Next(ctx context.Context, k codigo.Kind) (string, error) {
	return a.NextTx(nil, k)
}

func (a *stubAllocator) NextTx(tx *gorm.DB, k codigo.Kind) (string, error) {
	a.secuencia++
	return fmt.Sprintf("%s25%04d", k.Prefijo, a.secuencia), nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

// hoy fija en los tests: 2025-06-15.
var hoyTest = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func newLoteServiceTest() (*loteService, *stubLoteRepo) {
	repo := &stubLoteRepo{}
	productos := &stubProductoRepo{productos: map[uint]*model.Producto{
		1: {
			ID:              1,
			Codigo:          "PD250001",
			Nombre:          "Lavandina 5L",
			AnosVencimiento: 2,
			LitrosPorUnidad: decimal.NewFromFloat(2.0),
		},
	}}
	estados := &stubEstadoRepo{estados: map[uint]*model.EstadoLinea{
		10: {ID: 10, TipoEstado: model.EstadoProduccion, FechaHoraInicio: hoyTest},
		11: {ID: 11, TipoEstado: model.EstadoLimpieza, FechaHoraInicio: hoyTest},
	}}
	svc := &loteService{
		repo:         repo,
		productoRepo: productos,
		estadoRepo:   estados,
		codigos:      &stubAllocator{},
		now:          func() time.Time { return hoyTest },
	}
	return svc, repo
}

func crearLoteBase(t *testing.T, svc *loteService, numeroLote string) *dto.LoteConAdvertenciasResponse {
	t.Helper()
	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:          numeroLote,
		ProductoID:          1,
		FechaProduccion:     "2025-06-15",
		IgnorarAdvertencias: true,
	})
	require.NoError(t, err)
	require.True(t, resp.Creado)
	return resp
}

// ── Crear ────────────────────────────────────────────────────────────────────

func TestCrearLoteSinAdvertencias(t *testing.T) {
	svc, repo := newLoteServiceTest()

	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "1",
		ProductoID:      1,
		FechaProduccion: "2025-06-15",
	})
	require.NoError(t, err)

	assert.True(t, resp.Creado)
	assert.Empty(t, resp.Advertencias)
	assert.Equal(t, "Lote creado exitosamente", resp.Mensaje)
	require.NotNil(t, resp.Lote)
	assert.Equal(t, "LT250001", resp.Lote.Codigo)
	assert.Len(t, repo.lotes, 1)
}

func TestCrearLoteCamposDerivados(t *testing.T) {
	svc, _ := newLoteServiceTest()

	pallets, parciales, unidades := 10, 5, 48
	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:        "1",
		ProductoID:        1,
		Pallets:           &pallets,
		Parciales:         &parciales,
		UnidadesPorPallet: &unidades,
		FechaProduccion:   "2025-06-15",
	})
	require.NoError(t, err)
	require.True(t, resp.Creado)

	// (10*48 + 5) * 2.0 = 970
	assert.True(t, resp.Lote.LitrosTotales.Equal(decimal.NewFromInt(970)),
		"litros_totales = %s", resp.Lote.LitrosTotales)
	// 2025-06-15 + 2*365 días = 2027-06-15
	require.NotNil(t, resp.Lote.FechaVencimiento)
	assert.Equal(t, "2027-06-15", *resp.Lote.FechaVencimiento)
}

func TestCrearLoteValoresManualesNoSePisan(t *testing.T) {
	svc, _ := newLoteServiceTest()

	litros := decimal.NewFromInt(500)
	vencimiento := "2026-01-01"
	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:       "1",
		ProductoID:       1,
		LitrosTotales:    &litros,
		FechaVencimiento: &vencimiento,
		FechaProduccion:  "2025-06-15",
	})
	require.NoError(t, err)
	assert.True(t, resp.Lote.LitrosTotales.Equal(litros))
	assert.Equal(t, "2026-01-01", *resp.Lote.FechaVencimiento)
}

func TestCrearLoteProductoInexistente(t *testing.T) {
	svc, _ := newLoteServiceTest()

	_, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "1",
		ProductoID:      99,
		FechaProduccion: "2025-06-15",
	})
	assert.ErrorIs(t, err, ErrProductoNoEncontrado)
}

func TestCrearLoteEstadoNoProduccion(t *testing.T) {
	svc, _ := newLoteServiceTest()

	estadoID := uint(11) // limpieza
	_, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "1",
		ProductoID:      1,
		EstadoLineaID:   &estadoID,
		FechaProduccion: "2025-06-15",
	})
	assert.ErrorIs(t, err, ErrEstadoLineaNoProduccion)
}

func TestCrearLoteFechaInvalida(t *testing.T) {
	svc, _ := newLoteServiceTest()

	_, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "1",
		ProductoID:      1,
		FechaProduccion: "15/06/2025",
	})
	assert.ErrorIs(t, err, ErrFechaInvalida)
}

// ── Advertencias ─────────────────────────────────────────────────────────────

func TestCrearLoteDuplicadoAdvierte(t *testing.T) {
	svc, repo := newLoteServiceTest()
	crearLoteBase(t, svc, "L-001")

	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "L-001",
		ProductoID:      1,
		FechaProduccion: "2025-06-15",
	})
	require.NoError(t, err)

	assert.False(t, resp.Creado)
	assert.Nil(t, resp.Lote)
	assert.Equal(t, "Se encontraron advertencias. Confirme para continuar.", resp.Mensaje)
	require.Len(t, resp.Advertencias, 1)
	assert.Equal(t, dto.WarningLoteDuplicado, resp.Advertencias[0].Tipo)
	assert.Contains(t, resp.Advertencias[0].Mensaje, "L-001")
	assert.Len(t, repo.lotes, 1, "nada debe persistirse")
}

func TestCrearLoteSaltoDeSecuencia(t *testing.T) {
	svc, _ := newLoteServiceTest()
	crearLoteBase(t, svc, "L-003")

	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "L-006",
		ProductoID:      1,
		FechaProduccion: "2025-06-15",
	})
	require.NoError(t, err)

	assert.False(t, resp.Creado)
	require.Len(t, resp.Advertencias, 1)
	assert.Equal(t, dto.WarningSaltoLote, resp.Advertencias[0].Tipo)
	assert.Contains(t, resp.Advertencias[0].Detalle, "Último lote: L-003")
	assert.Contains(t, resp.Advertencias[0].Detalle, "Esperado: L-004")
}

func TestCrearLoteConsecutivoNoAdvierte(t *testing.T) {
	svc, _ := newLoteServiceTest()
	crearLoteBase(t, svc, "L-003")

	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "L-004",
		ProductoID:      1,
		FechaProduccion: "2025-06-15",
	})
	require.NoError(t, err)
	assert.True(t, resp.Creado)
	assert.Empty(t, resp.Advertencias)
}

func TestCrearLoteNumeroMenorNoAdvierte(t *testing.T) {
	// Un número menor al último no es salto (reproceso, reimpresión).
	svc, _ := newLoteServiceTest()
	crearLoteBase(t, svc, "L-005")

	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "L-002",
		ProductoID:      1,
		FechaProduccion: "2025-06-15",
	})
	require.NoError(t, err)
	assert.True(t, resp.Creado)
	assert.Empty(t, resp.Advertencias)
}

func TestCrearPrimerLoteMayorQueUnoAdvierte(t *testing.T) {
	svc, _ := newLoteServiceTest()

	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "5",
		ProductoID:      1,
		FechaProduccion: "2025-06-15",
	})
	require.NoError(t, err)

	assert.False(t, resp.Creado)
	require.Len(t, resp.Advertencias, 1)
	assert.Equal(t, dto.WarningSaltoLote, resp.Advertencias[0].Tipo)
	assert.Contains(t, resp.Advertencias[0].Mensaje, "El primer lote debería ser '1'")
}

func TestCrearLoteEtiquetaSinNumeroNoComparaSecuencia(t *testing.T) {
	svc, _ := newLoteServiceTest()
	crearLoteBase(t, svc, "L-003")

	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "REPROCESO",
		ProductoID:      1,
		FechaProduccion: "2025-06-15",
	})
	require.NoError(t, err)
	assert.True(t, resp.Creado)
	assert.Empty(t, resp.Advertencias)
}

func TestCrearLoteFechaFutura(t *testing.T) {
	svc, _ := newLoteServiceTest()

	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "1",
		ProductoID:      1,
		FechaProduccion: "2025-06-18", // hoy + 3
	})
	require.NoError(t, err)

	assert.False(t, resp.Creado)
	require.Len(t, resp.Advertencias, 1)
	assert.Equal(t, dto.WarningFechaFutura, resp.Advertencias[0].Tipo)
	assert.Contains(t, resp.Advertencias[0].Mensaje, "3 día(s) en el futuro")
}

func TestCrearLoteFechaMuyAntigua(t *testing.T) {
	svc, _ := newLoteServiceTest()

	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "1",
		ProductoID:      1,
		FechaProduccion: "2025-05-01", // hoy - 45
	})
	require.NoError(t, err)

	assert.False(t, resp.Creado)
	require.Len(t, resp.Advertencias, 1)
	assert.Equal(t, dto.WarningFechaMuyAntigua, resp.Advertencias[0].Tipo)
	assert.Contains(t, resp.Advertencias[0].Mensaje, "45 días de antigüedad")
}

func TestCrearLoteFecha30DiasNoAdvierte(t *testing.T) {
	// 30 días exactos es el límite: todavía no advierte.
	svc, _ := newLoteServiceTest()

	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "1",
		ProductoID:      1,
		FechaProduccion: "2025-05-16",
	})
	require.NoError(t, err)
	assert.True(t, resp.Creado)
	assert.Empty(t, resp.Advertencias)
}

func TestCrearLoteVariasAdvertenciasEnOrden(t *testing.T) {
	// Cuando disparan varios chequeos, el orden es fijo:
	// duplicado, salto, fecha.
	svc, repo := newLoteServiceTest()
	crearLoteBase(t, svc, "L-001")

	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "L-001",
		ProductoID:      1,
		FechaProduccion: "2025-05-01", // hoy - 45
	})
	require.NoError(t, err)

	assert.False(t, resp.Creado)
	require.Len(t, resp.Advertencias, 2)
	assert.Equal(t, dto.WarningLoteDuplicado, resp.Advertencias[0].Tipo)
	assert.Equal(t, dto.WarningFechaMuyAntigua, resp.Advertencias[1].Tipo)
	assert.Len(t, repo.lotes, 1, "nada debe persistirse")
}

func TestCrearLoteIgnorarAdvertencias(t *testing.T) {
	svc, repo := newLoteServiceTest()
	crearLoteBase(t, svc, "L-001")

	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:          "L-001",
		ProductoID:          1,
		FechaProduccion:     "2025-06-15",
		IgnorarAdvertencias: true,
	})
	require.NoError(t, err)

	assert.True(t, resp.Creado)
	assert.Equal(t, "Lote creado exitosamente (con advertencias ignoradas)", resp.Mensaje)
	require.Len(t, resp.Advertencias, 1, "las advertencias igual se informan")
	assert.Len(t, repo.lotes, 2)
}

// ── Conflicto de código ──────────────────────────────────────────────────────

func TestCrearLoteReintentaCodigoDuplicado(t *testing.T) {
	svc, repo := newLoteServiceTest()
	repo.fallosAlta = 2

	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "1",
		ProductoID:      1,
		FechaProduccion: "2025-06-15",
	})
	require.NoError(t, err)

	assert.True(t, resp.Creado)
	assert.Equal(t, 3, repo.altas)
	// cada reintento pide un código nuevo
	assert.Equal(t, "LT250003", resp.Lote.Codigo)
}

func TestCrearLoteConflictoAgotaReintentos(t *testing.T) {
	svc, repo := newLoteServiceTest()
	repo.fallosAlta = 3

	_, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "1",
		ProductoID:      1,
		FechaProduccion: "2025-06-15",
	})
	assert.ErrorIs(t, err, ErrConflictoCodigo)
	assert.Equal(t, 3, repo.altas)
}

// ── Actualizar ───────────────────────────────────────────────────────────────

func TestActualizarLoteExcluyeElPropio(t *testing.T) {
	svc, _ := newLoteServiceTest()
	creado := crearLoteBase(t, svc, "L-001")

	obs := "revisado"
	resp, err := svc.Actualizar(context.Background(), creado.Lote.ID, ClientInfo{}, dto.ActualizarLoteRequest{
		Observaciones: &obs,
	})
	require.NoError(t, err)

	assert.True(t, resp.Creado)
	assert.Empty(t, resp.Advertencias, "no debe detectarse a sí mismo como duplicado")
	assert.Equal(t, "Lote actualizado exitosamente", resp.Mensaje)
}

func TestActualizarLoteRecalculaLitros(t *testing.T) {
	svc, _ := newLoteServiceTest()
	creado := crearLoteBase(t, svc, "L-001")

	pallets := 4
	unidades := 10
	resp, err := svc.Actualizar(context.Background(), creado.Lote.ID, ClientInfo{}, dto.ActualizarLoteRequest{
		Pallets:             &pallets,
		UnidadesPorPallet:   &unidades,
		IgnorarAdvertencias: true,
	})
	require.NoError(t, err)

	// (4*10 + 0) * 2.0 = 80
	assert.True(t, resp.Lote.LitrosTotales.Equal(decimal.NewFromInt(80)),
		"litros_totales = %s", resp.Lote.LitrosTotales)
}

func TestActualizarLoteConAdvertenciaSinConfirmar(t *testing.T) {
	svc, _ := newLoteServiceTest()
	crearLoteBase(t, svc, "L-001")
	segundo := crearLoteBase(t, svc, "L-002")

	numero := "L-001"
	resp, err := svc.Actualizar(context.Background(), segundo.Lote.ID, ClientInfo{}, dto.ActualizarLoteRequest{
		NumeroLote: &numero,
	})
	require.NoError(t, err)

	assert.False(t, resp.Creado)
	require.NotEmpty(t, resp.Advertencias)
	assert.Equal(t, dto.WarningLoteDuplicado, resp.Advertencias[0].Tipo)

	// el lote quedó sin tocar
	actual, err := svc.ObtenerPorID(context.Background(), segundo.Lote.ID)
	require.NoError(t, err)
	assert.Equal(t, "L-002", actual.NumeroLote)
}

func TestActualizarLoteInexistente(t *testing.T) {
	svc, _ := newLoteServiceTest()
	_, err := svc.Actualizar(context.Background(), 99, ClientInfo{}, dto.ActualizarLoteRequest{})
	assert.ErrorIs(t, err, ErrLoteNoEncontrado)
}

// ── Eliminar ─────────────────────────────────────────────────────────────────

func TestEliminarLoteEsBajaLogica(t *testing.T) {
	svc, repo := newLoteServiceTest()
	creado := crearLoteBase(t, svc, "L-001")

	require.NoError(t, svc.Eliminar(context.Background(), creado.Lote.ID, ClientInfo{}))
	assert.False(t, repo.lotes[0].Activo)
	assert.Len(t, repo.lotes, 1, "el registro sigue existiendo")

	// un lote inactivo ya no cuenta como duplicado
	resp, err := svc.Crear(context.Background(), ClientInfo{}, dto.CrearLoteRequest{
		NumeroLote:      "L-001",
		ProductoID:      1,
		FechaProduccion: "2025-06-15",
	})
	require.NoError(t, err)
	assert.True(t, resp.Creado)
}

// ── Validar ──────────────────────────────────────────────────────────────────

func TestValidarNoEscribe(t *testing.T) {
	svc, repo := newLoteServiceTest()
	crearLoteBase(t, svc, "L-003")

	resp, err := svc.Validar(context.Background(), dto.ValidarLoteRequest{
		NumeroLote:      "L-006",
		ProductoID:      1,
		FechaProduccion: "2025-06-15",
	})
	require.NoError(t, err)

	assert.False(t, resp.Valido)
	require.Len(t, resp.Advertencias, 1)
	require.NotNil(t, resp.LoteAnterior)
	assert.Equal(t, "L-003", *resp.LoteAnterior)
	require.NotNil(t, resp.LoteEsperado)
	assert.Equal(t, "L-004", *resp.LoteEsperado)
	assert.Len(t, repo.lotes, 1)
}

func TestValidarSinProblemas(t *testing.T) {
	svc, _ := newLoteServiceTest()
	crearLoteBase(t, svc, "L-003")

	resp, err := svc.Validar(context.Background(), dto.ValidarLoteRequest{
		NumeroLote:      "L-004",
		ProductoID:      1,
		FechaProduccion: "2025-06-15",
	})
	require.NoError(t, err)

	assert.True(t, resp.Valido)
	assert.Empty(t, resp.Advertencias)
	require.NotNil(t, resp.LoteAnterior)
	assert.Equal(t, "L-003", *resp.LoteAnterior)
	assert.Nil(t, resp.LoteEsperado)
}

func TestValidarEsIdempotente(t *testing.T) {
	// Validar no escribe nada, así que repetirla con el mismo input
	// devuelve exactamente las mismas advertencias.
	svc, _ := newLoteServiceTest()
	crearLoteBase(t, svc, "L-003")

	req := dto.ValidarLoteRequest{
		NumeroLote:      "L-006",
		ProductoID:      1,
		FechaProduccion: "2025-05-01", // hoy - 45
	}

	primera, err := svc.Validar(context.Background(), req)
	require.NoError(t, err)
	segunda, err := svc.Validar(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, primera.Advertencias, 2)
	assert.Equal(t, dto.WarningSaltoLote, primera.Advertencias[0].Tipo)
	assert.Equal(t, dto.WarningFechaMuyAntigua, primera.Advertencias[1].Tipo)
	assert.Equal(t, primera, segunda)
}

// ── Sugerencia ───────────────────────────────────────────────────────────────

func TestSugerirNumeroSinLotes(t *testing.T) {
	svc, _ := newLoteServiceTest()

	resp, err := svc.SugerirNumero(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "001", resp.Sugerencia)
	assert.Nil(t, resp.UltimoLote)
	assert.Equal(t, "No hay lotes anteriores. Se sugiere iniciar desde 001.", resp.Mensaje)
}

func TestSugerirNumeroPreservaFormato(t *testing.T) {
	svc, _ := newLoteServiceTest()
	crearLoteBase(t, svc, "L-003")

	resp, err := svc.SugerirNumero(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "L-004", resp.Sugerencia)
	require.NotNil(t, resp.UltimoLote)
	assert.Equal(t, "L-003", *resp.UltimoLote)
	assert.Equal(t, "Basado en el último lote 'L-003'", resp.Mensaje)
}

func TestSugerirNumeroEtiquetaSinDigitos(t *testing.T) {
	svc, _ := newLoteServiceTest()
	crearLoteBase(t, svc, "REPROCESO")

	resp, err := svc.SugerirNumero(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "REPROCESO-2", resp.Sugerencia)
}

func TestSugerirNumeroProductoInexistente(t *testing.T) {
	svc, _ := newLoteServiceTest()
	_, err := svc.SugerirNumero(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProductoNoEncontrado)
}

// ── UltimoDeProducto ─────────────────────────────────────────────────────────

func TestUltimoDeProducto(t *testing.T) {
	svc, _ := newLoteServiceTest()

	resp, err := svc.UltimoDeProducto(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, resp, "sin lotes devuelve null")

	crearLoteBase(t, svc, "L-001")
	crearLoteBase(t, svc, "L-002")

	resp, err = svc.UltimoDeProducto(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "L-002", resp.NumeroLote)
}
