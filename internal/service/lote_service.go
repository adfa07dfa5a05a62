package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mattygrunge/planproduccion/internal/codigo"
	"github.com/mattygrunge/planproduccion/internal/dto"
	"github.com/mattygrunge/planproduccion/internal/model"
	"github.com/mattygrunge/planproduccion/internal/repository"
	"github.com/mattygrunge/planproduccion/internal/worker"

	"gorm.io/gorm"
)

const fechaLayout = "2006-01-02"

// Antigüedad máxima de la fecha de producción antes de advertir.
const maxDiasAntiguedad = 30

type LoteService interface {
	Validar(ctx context.Context, req dto.ValidarLoteRequest) (*dto.ValidacionLoteResponse, error)
	Crear(ctx context.Context, info ClientInfo, req dto.CrearLoteRequest) (*dto.LoteConAdvertenciasResponse, error)
	Actualizar(ctx context.Context, id uint, info ClientInfo, req dto.ActualizarLoteRequest) (*dto.LoteConAdvertenciasResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.LoteResponse, error)
	Listar(ctx context.Context, filter dto.LoteFilter) (*dto.LoteListResponse, error)
	Eliminar(ctx context.Context, id uint, info ClientInfo) error
	UltimoDeProducto(ctx context.Context, productoID uint) (*dto.LoteResponse, error)
	SugerirNumero(ctx context.Context, productoID uint) (*dto.SugerenciaNumeroResponse, error)
}

type loteService struct {
	repo         repository.LoteRepository
	productoRepo repository.ProductoRepository
	estadoRepo   repository.EstadoLineaRepository
	codigos      codigo.Allocator
	dispatcher   *worker.Dispatcher
	now          func() time.Time
}

func NewLoteService(
	repo repository.LoteRepository,
	productoRepo repository.ProductoRepository,
	estadoRepo repository.EstadoLineaRepository,
	codigos codigo.Allocator,
	dispatcher *worker.Dispatcher,
) LoteService {
	return &loteService{
		repo:         repo,
		productoRepo: productoRepo,
		estadoRepo:   estadoRepo,
		codigos:      codigos,
		dispatcher:   dispatcher,
		now:          time.Now,
	}
}

// ── Validaciones ─────────────────────────────────────────────────────────────
// Tres chequeos independientes, solo lectura, emitidos siempre en el mismo
// orden: duplicado, salto, fecha.

// validar ejecuta todas las validaciones y devuelve las advertencias.
// excluirID excluye al lote en edición de los chequeos (0 = creación).
func (s *loteService) validar(ctx context.Context, numeroLote string, productoID uint, fechaProduccion time.Time, excluirID uint) ([]dto.LoteWarning, error) {
	var advertencias []dto.LoteWarning

	// 1. Lote duplicado: misma etiqueta exacta y mismo producto, solo activos.
	duplicado, err := s.repo.ExisteDuplicado(ctx, numeroLote, productoID, excluirID)
	if err != nil {
		return nil, err
	}
	if duplicado {
		advertencias = append(advertencias, dto.LoteWarning{
			Tipo:    dto.WarningLoteDuplicado,
			Mensaje: fmt.Sprintf("Ya existe un lote '%s' para este producto", numeroLote),
			Detalle: "Se recomienda verificar si es un error o si el lote ya fue registrado",
		})
	}

	// 2. Salto en la secuencia.
	haySalto, loteAnterior, loteEsperado, err := s.detectarSalto(ctx, numeroLote, productoID)
	if err != nil {
		return nil, err
	}
	if haySalto {
		if loteAnterior != nil {
			advertencias = append(advertencias, dto.LoteWarning{
				Tipo:    dto.WarningSaltoLote,
				Mensaje: "Se detectó un salto en la secuencia de lotes",
				Detalle: fmt.Sprintf("Último lote: %s, Esperado: %s, Ingresado: %s", *loteAnterior, *loteEsperado, numeroLote),
			})
		} else {
			advertencias = append(advertencias, dto.LoteWarning{
				Tipo:    dto.WarningSaltoLote,
				Mensaje: fmt.Sprintf("El primer lote debería ser '%s', se ingresó '%s'", *loteEsperado, numeroLote),
				Detalle: "Se recomienda iniciar la secuencia desde 1 o verificar si faltan lotes anteriores",
			})
		}
	}

	// 3. Plausibilidad de la fecha de producción.
	advertencias = append(advertencias, s.validarFecha(fechaProduccion)...)

	return advertencias, nil
}

// detectarSalto compara el número entrante contra el último lote activo del
// mismo producto (el de mayor id, es decir el insertado más recientemente).
// Devuelve (haySalto, numeroLoteAnterior, numeroLoteEsperado).
func (s *loteService) detectarSalto(ctx context.Context, numeroLote string, productoID uint) (bool, *string, *string, error) {
	numeroNuevo, ok := extraerNumeroDeLote(numeroLote)
	if !ok {
		// sin número no hay con qué comparar
		return false, nil, nil, nil
	}

	ultimo, err := s.repo.FindUltimoByProducto(ctx, productoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// primer lote del producto: se espera que arranque en 1
			if numeroNuevo > 1 {
				esperado := "1"
				return true, nil, &esperado, nil
			}
			return false, nil, nil, nil
		}
		return false, nil, nil, err
	}

	numeroAnterior, ok := extraerNumeroDeLote(ultimo.NumeroLote)
	if !ok {
		// el lote anterior no tiene número comparable
		return false, nil, nil, nil
	}

	if numeroNuevo > numeroAnterior+1 {
		// hay salto: reconstruir la etiqueta esperada con el formato del anterior
		esperado := reemplazarUltimoNumero(ultimo.NumeroLote, numeroAnterior+1)
		return true, &ultimo.NumeroLote, &esperado, nil
	}
	return false, &ultimo.NumeroLote, nil, nil
}

// validarFecha advierte fecha futura o con más de 30 días de antigüedad.
// Las dos condiciones son excluyentes por construcción.
func (s *loteService) validarFecha(fechaProduccion time.Time) []dto.LoteWarning {
	var advertencias []dto.LoteWarning
	hoy := s.hoy()
	fecha := truncarDia(fechaProduccion)

	if fecha.After(hoy) {
		dias := diasEntre(hoy, fecha)
		advertencias = append(advertencias, dto.LoteWarning{
			Tipo:    dto.WarningFechaFutura,
			Mensaje: fmt.Sprintf("La fecha de producción es %d día(s) en el futuro", dias),
			Detalle: fmt.Sprintf("Fecha ingresada: %s, Fecha actual: %s", fecha.Format(fechaLayout), hoy.Format(fechaLayout)),
		})
	} else if dias := diasEntre(fecha, hoy); dias > maxDiasAntiguedad {
		advertencias = append(advertencias, dto.LoteWarning{
			Tipo:    dto.WarningFechaMuyAntigua,
			Mensaje: fmt.Sprintf("La fecha de producción tiene %d días de antigüedad", dias),
			Detalle: fmt.Sprintf("Fecha ingresada: %s, Fecha actual: %s", fecha.Format(fechaLayout), hoy.Format(fechaLayout)),
		})
	}
	return advertencias
}

func (s *loteService) hoy() time.Time { return truncarDia(s.now()) }

func truncarDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func diasEntre(desde, hasta time.Time) int {
	return int(hasta.Sub(desde) / (24 * time.Hour))
}

// ── Referencias ──────────────────────────────────────────────────────────────

func (s *loteService) resolverProducto(ctx context.Context, id uint) (*model.Producto, error) {
	producto, err := s.productoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	return producto, nil
}

// verificarEstadoLinea rechaza referencias a estados inexistentes o que no
// sean de tipo "produccion". Error de referencia, no advertencia.
func (s *loteService) verificarEstadoLinea(ctx context.Context, id uint) error {
	estado, err := s.estadoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEstadoLineaNoEncontrado
		}
		return err
	}
	if !estado.EsProduccion() {
		return ErrEstadoLineaNoProduccion
	}
	return nil
}

// ── Validar (dry-run) ────────────────────────────────────────────────────────

func (s *loteService) Validar(ctx context.Context, req dto.ValidarLoteRequest) (*dto.ValidacionLoteResponse, error) {
	fecha, err := time.Parse(fechaLayout, req.FechaProduccion)
	if err != nil {
		return nil, ErrFechaInvalida
	}
	if _, err := s.resolverProducto(ctx, req.ProductoID); err != nil {
		return nil, err
	}

	advertencias, err := s.validar(ctx, req.NumeroLote, req.ProductoID, fecha, 0)
	if err != nil {
		return nil, err
	}

	// información del último lote, haya salto o no
	_, loteAnterior, loteEsperado, err := s.detectarSalto(ctx, req.NumeroLote, req.ProductoID)
	if err != nil {
		return nil, err
	}

	return &dto.ValidacionLoteResponse{
		Valido:       len(advertencias) == 0,
		Advertencias: nonNilWarnings(advertencias),
		LoteAnterior: loteAnterior,
		LoteEsperado: loteEsperado,
	}, nil
}

// ── Crear ────────────────────────────────────────────────────────────────────

func (s *loteService) Crear(ctx context.Context, info ClientInfo, req dto.CrearLoteRequest) (*dto.LoteConAdvertenciasResponse, error) {
	fechaProduccion, err := time.Parse(fechaLayout, req.FechaProduccion)
	if err != nil {
		return nil, ErrFechaInvalida
	}

	// 1. Referencias primero: fallan duro, nunca como advertencia.
	producto, err := s.resolverProducto(ctx, req.ProductoID)
	if err != nil {
		return nil, err
	}
	if req.EstadoLineaID != nil {
		if err := s.verificarEstadoLinea(ctx, *req.EstadoLineaID); err != nil {
			return nil, err
		}
	}

	// 2. Validaciones blandas.
	advertencias, err := s.validar(ctx, req.NumeroLote, req.ProductoID, fechaProduccion, 0)
	if err != nil {
		return nil, err
	}
	if len(advertencias) > 0 && !req.IgnorarAdvertencias {
		return &dto.LoteConAdvertenciasResponse{
			Lote:         nil,
			Advertencias: advertencias,
			Creado:       false,
			Mensaje:      "Se encontraron advertencias. Confirme para continuar.",
		}, nil
	}

	// 3. Campos derivados, solo cuando el caller no los cargó.
	lote := &model.Lote{
		NumeroLote:        req.NumeroLote,
		ProductoID:        req.ProductoID,
		EstadoLineaID:     req.EstadoLineaID,
		Pallets:           valorODefecto(req.Pallets, 0),
		Parciales:         valorODefecto(req.Parciales, 0),
		UnidadesPorPallet: valorODefecto(req.UnidadesPorPallet, 1),
		FechaProduccion:   fechaProduccion,
		LinkSenasa:        req.LinkSenasa,
		Observaciones:     req.Observaciones,
		UsuarioID:         info.UsuarioID,
		Activo:            true,
	}
	if req.Activo != nil {
		lote.Activo = *req.Activo
	}
	if req.LitrosTotales != nil {
		lote.LitrosTotales = *req.LitrosTotales
	} else {
		lote.LitrosTotales = lote.CalcularLitrosTotales(producto.LitrosPorUnidad)
	}
	if req.FechaVencimiento != nil {
		vencimiento, err := time.Parse(fechaLayout, *req.FechaVencimiento)
		if err != nil {
			return nil, ErrFechaInvalida
		}
		lote.FechaVencimiento = &vencimiento
	} else {
		vencimiento := model.CalcularFechaVencimiento(fechaProduccion, producto.AnosVencimiento)
		lote.FechaVencimiento = &vencimiento
	}

	// 4. Asignar código + insertar como unidad reintentable.
	err = crearConCodigo(ctx, s.repo.DB(), s.codigos, codigo.Lote, func(tx *gorm.DB, cod string) error {
		lote.Codigo = cod
		return s.repo.CreateTx(tx, lote)
	})
	if err != nil {
		return nil, err
	}

	auditar(ctx, s.dispatcher, info, model.AccionCrear, "lote", lote.ID,
		fmt.Sprintf("Lote: %s", lote.NumeroLote), nil, worker.SnapshotJSON(lote))

	mensaje := "Lote creado exitosamente"
	if len(advertencias) > 0 {
		mensaje += " (con advertencias ignoradas)"
	}
	return &dto.LoteConAdvertenciasResponse{
		Lote:         s.cargarRespuesta(ctx, lote),
		Advertencias: nonNilWarnings(advertencias),
		Creado:       true,
		Mensaje:      mensaje,
	}, nil
}

// ── Actualizar ───────────────────────────────────────────────────────────────

func (s *loteService) Actualizar(ctx context.Context, id uint, info ClientInfo, req dto.ActualizarLoteRequest) (*dto.LoteConAdvertenciasResponse, error) {
	lote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoteNoEncontrado
		}
		return nil, err
	}
	anterior := worker.SnapshotJSON(lote)

	// Valores efectivos para validar: lo nuevo o lo ya guardado.
	numeroLote := lote.NumeroLote
	if req.NumeroLote != nil {
		numeroLote = *req.NumeroLote
	}
	productoID := lote.ProductoID
	if req.ProductoID != nil {
		productoID = *req.ProductoID
	}
	fechaProduccion := lote.FechaProduccion
	if req.FechaProduccion != nil {
		fechaProduccion, err = time.Parse(fechaLayout, *req.FechaProduccion)
		if err != nil {
			return nil, ErrFechaInvalida
		}
	}

	producto, err := s.resolverProducto(ctx, productoID)
	if err != nil {
		return nil, err
	}
	if req.EstadoLineaID != nil {
		if err := s.verificarEstadoLinea(ctx, *req.EstadoLineaID); err != nil {
			return nil, err
		}
	}

	// Validaciones blandas, excluyendo al propio lote de duplicado/salto.
	advertencias, err := s.validar(ctx, numeroLote, productoID, fechaProduccion, id)
	if err != nil {
		return nil, err
	}
	if len(advertencias) > 0 && !req.IgnorarAdvertencias {
		return &dto.LoteConAdvertenciasResponse{
			Lote:         loteToResponse(lote),
			Advertencias: advertencias,
			Creado:       false,
			Mensaje:      "Se encontraron advertencias. Confirme para continuar.",
		}, nil
	}

	// Aplicar solo los campos presentes en el payload.
	lote.NumeroLote = numeroLote
	lote.ProductoID = productoID
	lote.FechaProduccion = fechaProduccion
	if req.EstadoLineaID != nil {
		lote.EstadoLineaID = req.EstadoLineaID
	}
	cantidadesCambiaron := false
	if req.Pallets != nil {
		lote.Pallets = *req.Pallets
		cantidadesCambiaron = true
	}
	if req.Parciales != nil {
		lote.Parciales = *req.Parciales
		cantidadesCambiaron = true
	}
	if req.UnidadesPorPallet != nil {
		lote.UnidadesPorPallet = *req.UnidadesPorPallet
		cantidadesCambiaron = true
	}
	if req.LitrosTotales != nil {
		lote.LitrosTotales = *req.LitrosTotales
	} else if cantidadesCambiaron {
		// recalcular solo cuando cambió algún parámetro de la fórmula
		lote.LitrosTotales = lote.CalcularLitrosTotales(producto.LitrosPorUnidad)
	}
	if req.FechaVencimiento != nil {
		vencimiento, err := time.Parse(fechaLayout, *req.FechaVencimiento)
		if err != nil {
			return nil, ErrFechaInvalida
		}
		lote.FechaVencimiento = &vencimiento
	} else if req.FechaProduccion != nil {
		vencimiento := model.CalcularFechaVencimiento(fechaProduccion, producto.AnosVencimiento)
		lote.FechaVencimiento = &vencimiento
	}
	if req.LinkSenasa != nil {
		lote.LinkSenasa = req.LinkSenasa
	}
	if req.Observaciones != nil {
		lote.Observaciones = req.Observaciones
	}
	if req.Activo != nil {
		lote.Activo = *req.Activo
	}

	if err := s.repo.Update(ctx, lote); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflictoCodigo
		}
		return nil, err
	}

	auditar(ctx, s.dispatcher, info, model.AccionEditar, "lote", lote.ID,
		fmt.Sprintf("Lote: %s", lote.NumeroLote), anterior, worker.SnapshotJSON(lote))

	mensaje := "Lote actualizado exitosamente"
	if len(advertencias) > 0 {
		mensaje += " (con advertencias ignoradas)"
	}
	return &dto.LoteConAdvertenciasResponse{
		Lote:         s.cargarRespuesta(ctx, lote),
		Advertencias: nonNilWarnings(advertencias),
		Creado:       true,
		Mensaje:      mensaje,
	}, nil
}

// ── Consultas y baja ─────────────────────────────────────────────────────────

func (s *loteService) ObtenerPorID(ctx context.Context, id uint) (*dto.LoteResponse, error) {
	lote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoteNoEncontrado
		}
		return nil, err
	}
	return loteToResponse(lote), nil
}

func (s *loteService) Listar(ctx context.Context, filter dto.LoteFilter) (*dto.LoteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size < 1 {
		filter.Size = 10
	}
	lotes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LoteResponse, 0, len(lotes))
	for i := range lotes {
		items = append(items, *loteToResponse(&lotes[i]))
	}
	pages := int((total + int64(filter.Size) - 1) / int64(filter.Size))
	return &dto.LoteListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.Size,
		Pages: pages,
	}, nil
}

// Eliminar da de baja lógica: el lote queda inactivo, nunca se borra.
func (s *loteService) Eliminar(ctx context.Context, id uint, info ClientInfo) error {
	lote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLoteNoEncontrado
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	auditar(ctx, s.dispatcher, info, model.AccionEliminar, "lote", lote.ID,
		fmt.Sprintf("Lote: %s", lote.NumeroLote), worker.SnapshotJSON(lote), nil)
	return nil
}

func (s *loteService) UltimoDeProducto(ctx context.Context, productoID uint) (*dto.LoteResponse, error) {
	lote, err := s.repo.FindUltimoByProducto(ctx, productoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return loteToResponse(lote), nil
}

// ── Sugerencia de número ─────────────────────────────────────────────────────

func (s *loteService) SugerirNumero(ctx context.Context, productoID uint) (*dto.SugerenciaNumeroResponse, error) {
	if _, err := s.resolverProducto(ctx, productoID); err != nil {
		return nil, err
	}

	ultimo, err := s.repo.FindUltimoByProducto(ctx, productoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.SugerenciaNumeroResponse{
				Sugerencia: "001",
				UltimoLote: nil,
				Mensaje:    "No hay lotes anteriores. Se sugiere iniciar desde 001.",
			}, nil
		}
		return nil, err
	}

	var sugerencia string
	if numeroActual, ok := extraerNumeroDeLote(ultimo.NumeroLote); ok {
		// mismo padding y formato que la etiqueta anterior
		sugerencia = reemplazarUltimoNumero(ultimo.NumeroLote, numeroActual+1)
	} else {
		sugerencia = ultimo.NumeroLote + "-2"
	}

	return &dto.SugerenciaNumeroResponse{
		Sugerencia: sugerencia,
		UltimoLote: &ultimo.NumeroLote,
		Mensaje:    fmt.Sprintf("Basado en el último lote '%s'", ultimo.NumeroLote),
	}, nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// cargarRespuesta recarga el lote con sus relaciones; si la recarga falla se
// responde con lo que ya está en memoria.
func (s *loteService) cargarRespuesta(ctx context.Context, lote *model.Lote) *dto.LoteResponse {
	if recargado, err := s.repo.FindByID(ctx, lote.ID); err == nil {
		return loteToResponse(recargado)
	}
	return loteToResponse(lote)
}

func valorODefecto(v *int, defecto int) int {
	if v != nil {
		return *v
	}
	return defecto
}

// nonNilWarnings garantiza `"advertencias": []` en lugar de null.
func nonNilWarnings(w []dto.LoteWarning) []dto.LoteWarning {
	if w == nil {
		return []dto.LoteWarning{}
	}
	return w
}

func loteToResponse(l *model.Lote) *dto.LoteResponse {
	resp := &dto.LoteResponse{
		ID:                l.ID,
		Codigo:            l.Codigo,
		NumeroLote:        l.NumeroLote,
		ProductoID:        l.ProductoID,
		EstadoLineaID:     l.EstadoLineaID,
		Pallets:           l.Pallets,
		Parciales:         l.Parciales,
		UnidadesPorPallet: l.UnidadesPorPallet,
		LitrosTotales:     l.LitrosTotales,
		FechaProduccion:   l.FechaProduccion.Format(fechaLayout),
		LinkSenasa:        l.LinkSenasa,
		Observaciones:     l.Observaciones,
		UsuarioID:         l.UsuarioID,
		Activo:            l.Activo,
		CreatedAt:         l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.FechaVencimiento != nil {
		v := l.FechaVencimiento.Format(fechaLayout)
		resp.FechaVencimiento = &v
	}
	if l.Producto != nil {
		resp.Producto = &dto.ProductoSimple{
			ID:              l.Producto.ID,
			Codigo:          l.Producto.Codigo,
			Nombre:          l.Producto.Nombre,
			AnosVencimiento: l.Producto.AnosVencimiento,
			LitrosPorUnidad: l.Producto.LitrosPorUnidad,
		}
	}
	if l.EstadoLinea != nil {
		resp.EstadoLinea = &dto.EstadoLineaSimple{
			ID:              l.EstadoLinea.ID,
			TipoEstado:      l.EstadoLinea.TipoEstado,
			FechaHoraInicio: l.EstadoLinea.FechaHoraInicio.UTC().Format(time.RFC3339),
		}
	}
	return resp
}
