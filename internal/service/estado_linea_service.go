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

type EstadoLineaService interface {
	Crear(ctx context.Context, info ClientInfo, req dto.CrearEstadoLineaRequest) (*dto.EstadoLineaResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.EstadoLineaResponse, error)
	Listar(ctx context.Context, filter dto.EstadoLineaFilter) (*dto.EstadoLineaListResponse, error)
	Actualizar(ctx context.Context, id uint, info ClientInfo, req dto.ActualizarEstadoLineaRequest) (*dto.EstadoLineaResponse, error)
	Eliminar(ctx context.Context, id uint, info ClientInfo) error
	TiposDisponibles() []string
}

type estadoLineaService struct {
	repo       repository.EstadoLineaRepository
	sectorRepo repository.SectorRepository
	lineaRepo  repository.LineaRepository
	codigos    codigo.Allocator
	dispatcher *worker.Dispatcher
}

func NewEstadoLineaService(
	repo repository.EstadoLineaRepository,
	sectorRepo repository.SectorRepository,
	lineaRepo repository.LineaRepository,
	codigos codigo.Allocator,
	dispatcher *worker.Dispatcher,
) EstadoLineaService {
	return &estadoLineaService{
		repo:       repo,
		sectorRepo: sectorRepo,
		lineaRepo:  lineaRepo,
		codigos:    codigos,
		dispatcher: dispatcher,
	}
}

func mapEstadoLinea(e *model.EstadoLinea) *dto.EstadoLineaResponse {
	resp := &dto.EstadoLineaResponse{
		ID:              e.ID,
		Codigo:          e.Codigo,
		SectorID:        e.SectorID,
		LineaID:         e.LineaID,
		TipoEstado:      e.TipoEstado,
		FechaHoraInicio: e.FechaHoraInicio.UTC().Format(time.RFC3339),
		DuracionMinutos: e.DuracionMinutos,
		Observaciones:   e.Observaciones,
		UsuarioID:       e.UsuarioID,
		Activo:          e.Activo,
		CreatedAt:       e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e.FechaHoraFin != nil {
		fin := e.FechaHoraFin.UTC().Format(time.RFC3339)
		resp.FechaHoraFin = &fin
	}
	if e.Sector != nil {
		resp.SectorNombre = e.Sector.Nombre
	}
	if e.Linea != nil {
		resp.LineaNombre = e.Linea.Nombre
	}
	return resp
}

func tipoEstadoValido(tipo string) bool {
	for _, t := range model.TiposEstado {
		if t == tipo {
			return true
		}
	}
	return false
}

// duracionDe devuelve la duración en minutos entre inicio y fin, si hay fin.
func duracionDe(inicio time.Time, fin *time.Time) *int {
	if fin == nil {
		return nil
	}
	minutos := int(fin.Sub(inicio) / time.Minute)
	return &minutos
}

func (s *estadoLineaService) verificarReferencias(ctx context.Context, sectorID, lineaID uint) error {
	if _, err := s.sectorRepo.FindByID(ctx, sectorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectorNoEncontrado
		}
		return err
	}
	linea, err := s.lineaRepo.FindByID(ctx, lineaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLineaNoEncontrada
		}
		return err
	}
	if linea.SectorID != sectorID {
		return ErrLineaNoEncontrada
	}
	return nil
}

func (s *estadoLineaService) Crear(ctx context.Context, info ClientInfo, req dto.CrearEstadoLineaRequest) (*dto.EstadoLineaResponse, error) {
	if !tipoEstadoValido(req.TipoEstado) {
		return nil, ErrTipoEstadoInvalido
	}
	if err := s.verificarReferencias(ctx, req.SectorID, req.LineaID); err != nil {
		return nil, err
	}

	inicio, err := time.Parse(time.RFC3339, req.FechaHoraInicio)
	if err != nil {
		return nil, ErrFechaHoraInvalida
	}
	var fin *time.Time
	if req.FechaHoraFin != nil {
		f, err := time.Parse(time.RFC3339, *req.FechaHoraFin)
		if err != nil {
			return nil, ErrFechaHoraInvalida
		}
		if !f.After(inicio) {
			return nil, ErrRangoFechasInvalido
		}
		fin = &f
	}

	estado := &model.EstadoLinea{
		SectorID:        req.SectorID,
		LineaID:         req.LineaID,
		TipoEstado:      req.TipoEstado,
		FechaHoraInicio: inicio,
		FechaHoraFin:    fin,
		DuracionMinutos: req.DuracionMinutos,
		Observaciones:   req.Observaciones,
		UsuarioID:       info.UsuarioID,
		Activo:          true,
	}
	if estado.DuracionMinutos == nil {
		estado.DuracionMinutos = duracionDe(inicio, fin)
	}

	err = crearConCodigo(ctx, s.repo.DB(), s.codigos, codigo.EstadoLinea, func(tx *gorm.DB, cod string) error {
		estado.Codigo = cod
		return s.repo.CreateTx(tx, estado)
	})
	if err != nil {
		return nil, err
	}

	auditar(ctx, s.dispatcher, info, model.AccionCrear, "estado_linea", estado.ID,
		fmt.Sprintf("Estado %s en línea %d", estado.TipoEstado, estado.LineaID), nil, worker.SnapshotJSON(estado))

	return s.cargarRespuesta(ctx, estado), nil
}

func (s *estadoLineaService) ObtenerPorID(ctx context.Context, id uint) (*dto.EstadoLineaResponse, error) {
	estado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstadoLineaNoEncontrado
		}
		return nil, err
	}
	return mapEstadoLinea(estado), nil
}

func (s *estadoLineaService) Listar(ctx context.Context, filter dto.EstadoLineaFilter) (*dto.EstadoLineaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size < 1 {
		filter.Size = 10
	}
	estados, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EstadoLineaResponse, 0, len(estados))
	for i := range estados {
		items = append(items, *mapEstadoLinea(&estados[i]))
	}
	return &dto.EstadoLineaListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.Size,
		Pages: int((total + int64(filter.Size) - 1) / int64(filter.Size)),
	}, nil
}

func (s *estadoLineaService) Actualizar(ctx context.Context, id uint, info ClientInfo, req dto.ActualizarEstadoLineaRequest) (*dto.EstadoLineaResponse, error) {
	estado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstadoLineaNoEncontrado
		}
		return nil, err
	}
	anterior := worker.SnapshotJSON(estado)

	if req.TipoEstado != nil {
		if !tipoEstadoValido(*req.TipoEstado) {
			return nil, ErrTipoEstadoInvalido
		}
		estado.TipoEstado = *req.TipoEstado
	}
	fechasCambiaron := false
	if req.FechaHoraInicio != nil {
		inicio, err := time.Parse(time.RFC3339, *req.FechaHoraInicio)
		if err != nil {
			return nil, ErrFechaHoraInvalida
		}
		estado.FechaHoraInicio = inicio
		fechasCambiaron = true
	}
	if req.FechaHoraFin != nil {
		fin, err := time.Parse(time.RFC3339, *req.FechaHoraFin)
		if err != nil {
			return nil, ErrFechaHoraInvalida
		}
		estado.FechaHoraFin = &fin
		fechasCambiaron = true
	}
	if estado.FechaHoraFin != nil && !estado.FechaHoraFin.After(estado.FechaHoraInicio) {
		return nil, ErrRangoFechasInvalido
	}
	if req.DuracionMinutos != nil {
		estado.DuracionMinutos = req.DuracionMinutos
	} else if fechasCambiaron {
		estado.DuracionMinutos = duracionDe(estado.FechaHoraInicio, estado.FechaHoraFin)
	}
	if req.Observaciones != nil {
		estado.Observaciones = req.Observaciones
	}

	if err := s.repo.Update(ctx, estado); err != nil {
		return nil, err
	}

	auditar(ctx, s.dispatcher, info, model.AccionEditar, "estado_linea", estado.ID,
		fmt.Sprintf("Estado %s en línea %d", estado.TipoEstado, estado.LineaID), anterior, worker.SnapshotJSON(estado))

	return mapEstadoLinea(estado), nil
}

func (s *estadoLineaService) Eliminar(ctx context.Context, id uint, info ClientInfo) error {
	estado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEstadoLineaNoEncontrado
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	auditar(ctx, s.dispatcher, info, model.AccionEliminar, "estado_linea", estado.ID,
		fmt.Sprintf("Estado %s en línea %d", estado.TipoEstado, estado.LineaID), worker.SnapshotJSON(estado), nil)
	return nil
}

func (s *estadoLineaService) TiposDisponibles() []string {
	tipos := make([]string, len(model.TiposEstado))
	copy(tipos, model.TiposEstado)
	return tipos
}

func (s *estadoLineaService) cargarRespuesta(ctx context.Context, estado *model.EstadoLinea) *dto.EstadoLineaResponse {
	if recargado, err := s.repo.FindByID(ctx, estado.ID); err == nil {
		return mapEstadoLinea(recargado)
	}
	return mapEstadoLinea(estado)
}
