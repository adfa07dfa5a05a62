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

type SectorService interface {
	Crear(ctx context.Context, info ClientInfo, req dto.CrearSectorRequest) (*dto.SectorResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.SectorResponse, error)
	Listar(ctx context.Context, filter dto.ListFilter) (*dto.SectorListResponse, error)
	Actualizar(ctx context.Context, id uint, info ClientInfo, req dto.ActualizarSectorRequest) (*dto.SectorResponse, error)
	Eliminar(ctx context.Context, id uint, info ClientInfo) error
	Reactivar(ctx context.Context, id uint, info ClientInfo) error
}

type sectorService struct {
	repo       repository.SectorRepository
	codigos    codigo.Allocator
	dispatcher *worker.Dispatcher
}

func NewSectorService(repo repository.SectorRepository, codigos codigo.Allocator, dispatcher *worker.Dispatcher) SectorService {
	return &sectorService{repo: repo, codigos: codigos, dispatcher: dispatcher}
}

func mapSector(s *model.Sector) *dto.SectorResponse {
	resp := &dto.SectorResponse{
		ID:          s.ID,
		Codigo:      s.Codigo,
		Nombre:      s.Nombre,
		Descripcion: s.Descripcion,
		Activo:      s.Activo,
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
	}
	for i := range s.Lineas {
		resp.Lineas = append(resp.Lineas, *mapLinea(&s.Lineas[i]))
	}
	return resp
}

func (s *sectorService) Crear(ctx context.Context, info ClientInfo, req dto.CrearSectorRequest) (*dto.SectorResponse, error) {
	sector := &model.Sector{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}

	err := crearConCodigo(ctx, s.repo.DB(), s.codigos, codigo.Sector, func(tx *gorm.DB, cod string) error {
		sector.Codigo = cod
		return s.repo.CreateTx(tx, sector)
	})
	if err != nil {
		return nil, err
	}

	auditar(ctx, s.dispatcher, info, model.AccionCrear, "sector", sector.ID,
		fmt.Sprintf("Sector: %s", sector.Nombre), nil, worker.SnapshotJSON(sector))

	return mapSector(sector), nil
}

func (s *sectorService) ObtenerPorID(ctx context.Context, id uint) (*dto.SectorResponse, error) {
	sector, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectorNoEncontrado
		}
		return nil, err
	}
	return mapSector(sector), nil
}

func (s *sectorService) Listar(ctx context.Context, filter dto.ListFilter) (*dto.SectorListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size < 1 {
		filter.Size = 10
	}
	sectores, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SectorResponse, 0, len(sectores))
	for i := range sectores {
		items = append(items, *mapSector(&sectores[i]))
	}
	return &dto.SectorListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.Size,
		Pages: int((total + int64(filter.Size) - 1) / int64(filter.Size)),
	}, nil
}

func (s *sectorService) Actualizar(ctx context.Context, id uint, info ClientInfo, req dto.ActualizarSectorRequest) (*dto.SectorResponse, error) {
	sector, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectorNoEncontrado
		}
		return nil, err
	}
	anterior := worker.SnapshotJSON(sector)

	if req.Nombre != nil {
		sector.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		sector.Descripcion = req.Descripcion
	}

	if err := s.repo.Update(ctx, sector); err != nil {
		return nil, err
	}

	auditar(ctx, s.dispatcher, info, model.AccionEditar, "sector", sector.ID,
		fmt.Sprintf("Sector: %s", sector.Nombre), anterior, worker.SnapshotJSON(sector))

	return mapSector(sector), nil
}

func (s *sectorService) Eliminar(ctx context.Context, id uint, info ClientInfo) error {
	sector, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectorNoEncontrado
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	auditar(ctx, s.dispatcher, info, model.AccionEliminar, "sector", sector.ID,
		fmt.Sprintf("Sector: %s", sector.Nombre), worker.SnapshotJSON(sector), nil)
	return nil
}

func (s *sectorService) Reactivar(ctx context.Context, id uint, info ClientInfo) error {
	sector, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectorNoEncontrado
		}
		return err
	}
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return err
	}
	auditar(ctx, s.dispatcher, info, model.AccionEditar, "sector", sector.ID,
		fmt.Sprintf("Sector reactivado: %s", sector.Nombre), nil, nil)
	return nil
}
