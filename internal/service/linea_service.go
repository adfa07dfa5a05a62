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

type LineaService interface {
	Crear(ctx context.Context, info ClientInfo, req dto.CrearLineaRequest) (*dto.LineaResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.LineaResponse, error)
	Listar(ctx context.Context, filter dto.LineaFilter) (*dto.LineaListResponse, error)
	Actualizar(ctx context.Context, id uint, info ClientInfo, req dto.ActualizarLineaRequest) (*dto.LineaResponse, error)
	Eliminar(ctx context.Context, id uint, info ClientInfo) error
	Reactivar(ctx context.Context, id uint, info ClientInfo) error
}

type lineaService struct {
	repo       repository.LineaRepository
	sectorRepo repository.SectorRepository
	codigos    codigo.Allocator
	dispatcher *worker.Dispatcher
}

func NewLineaService(repo repository.LineaRepository, sectorRepo repository.SectorRepository, codigos codigo.Allocator, dispatcher *worker.Dispatcher) LineaService {
	return &lineaService{repo: repo, sectorRepo: sectorRepo, codigos: codigos, dispatcher: dispatcher}
}

func mapLinea(l *model.Linea) *dto.LineaResponse {
	resp := &dto.LineaResponse{
		ID:          l.ID,
		Codigo:      l.Codigo,
		Nombre:      l.Nombre,
		Descripcion: l.Descripcion,
		SectorID:    l.SectorID,
		Activo:      l.Activo,
		CreatedAt:   l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.Sector != nil {
		resp.SectorNombre = l.Sector.Nombre
	}
	return resp
}

func (s *lineaService) verificarSector(ctx context.Context, id uint) error {
	if _, err := s.sectorRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectorNoEncontrado
		}
		return err
	}
	return nil
}

func (s *lineaService) Crear(ctx context.Context, info ClientInfo, req dto.CrearLineaRequest) (*dto.LineaResponse, error) {
	if err := s.verificarSector(ctx, req.SectorID); err != nil {
		return nil, err
	}

	linea := &model.Linea{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		SectorID:    req.SectorID,
		Activo:      true,
	}

	err := crearConCodigo(ctx, s.repo.DB(), s.codigos, codigo.Linea, func(tx *gorm.DB, cod string) error {
		linea.Codigo = cod
		return s.repo.CreateTx(tx, linea)
	})
	if err != nil {
		return nil, err
	}

	auditar(ctx, s.dispatcher, info, model.AccionCrear, "linea", linea.ID,
		fmt.Sprintf("Línea: %s", linea.Nombre), nil, worker.SnapshotJSON(linea))

	return mapLinea(linea), nil
}

func (s *lineaService) ObtenerPorID(ctx context.Context, id uint) (*dto.LineaResponse, error) {
	linea, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLineaNoEncontrada
		}
		return nil, err
	}
	return mapLinea(linea), nil
}

func (s *lineaService) Listar(ctx context.Context, filter dto.LineaFilter) (*dto.LineaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size < 1 {
		filter.Size = 10
	}
	lineas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LineaResponse, 0, len(lineas))
	for i := range lineas {
		items = append(items, *mapLinea(&lineas[i]))
	}
	return &dto.LineaListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.Size,
		Pages: int((total + int64(filter.Size) - 1) / int64(filter.Size)),
	}, nil
}

func (s *lineaService) Actualizar(ctx context.Context, id uint, info ClientInfo, req dto.ActualizarLineaRequest) (*dto.LineaResponse, error) {
	linea, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLineaNoEncontrada
		}
		return nil, err
	}
	anterior := worker.SnapshotJSON(linea)

	if req.SectorID != nil {
		if err := s.verificarSector(ctx, *req.SectorID); err != nil {
			return nil, err
		}
		linea.SectorID = *req.SectorID
		linea.Sector = nil
	}
	if req.Nombre != nil {
		linea.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		linea.Descripcion = req.Descripcion
	}

	if err := s.repo.Update(ctx, linea); err != nil {
		return nil, err
	}

	auditar(ctx, s.dispatcher, info, model.AccionEditar, "linea", linea.ID,
		fmt.Sprintf("Línea: %s", linea.Nombre), anterior, worker.SnapshotJSON(linea))

	return mapLinea(linea), nil
}

func (s *lineaService) Eliminar(ctx context.Context, id uint, info ClientInfo) error {
	linea, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLineaNoEncontrada
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	auditar(ctx, s.dispatcher, info, model.AccionEliminar, "linea", linea.ID,
		fmt.Sprintf("Línea: %s", linea.Nombre), worker.SnapshotJSON(linea), nil)
	return nil
}

func (s *lineaService) Reactivar(ctx context.Context, id uint, info ClientInfo) error {
	linea, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLineaNoEncontrada
		}
		return err
	}
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return err
	}
	auditar(ctx, s.dispatcher, info, model.AccionEditar, "linea", linea.ID,
		fmt.Sprintf("Línea reactivada: %s", linea.Nombre), nil, nil)
	return nil
}
