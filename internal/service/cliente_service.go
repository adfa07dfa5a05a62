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

type ClienteService interface {
	Crear(ctx context.Context, info ClientInfo, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, filter dto.ListFilter) (*dto.ClienteListResponse, error)
	Actualizar(ctx context.Context, id uint, info ClientInfo, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uint, info ClientInfo) error
	Reactivar(ctx context.Context, id uint, info ClientInfo) error
}

type clienteService struct {
	repo       repository.ClienteRepository
	codigos    codigo.Allocator
	dispatcher *worker.Dispatcher
}

func NewClienteService(repo repository.ClienteRepository, codigos codigo.Allocator, dispatcher *worker.Dispatcher) ClienteService {
	return &clienteService{repo: repo, codigos: codigos, dispatcher: dispatcher}
}

func mapCliente(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:          c.ID,
		Codigo:      c.Codigo,
		Nombre:      c.Nombre,
		RazonSocial: c.RazonSocial,
		CUIT:        c.CUIT,
		Direccion:   c.Direccion,
		Telefono:    c.Telefono,
		Email:       c.Email,
		Contacto:    c.Contacto,
		Activo:      c.Activo,
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *clienteService) Crear(ctx context.Context, info ClientInfo, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	cliente := &model.Cliente{
		Nombre:      req.Nombre,
		RazonSocial: req.RazonSocial,
		CUIT:        req.CUIT,
		Direccion:   req.Direccion,
		Telefono:    req.Telefono,
		Email:       req.Email,
		Contacto:    req.Contacto,
		Activo:      true,
	}

	err := crearConCodigo(ctx, s.repo.DB(), s.codigos, codigo.Cliente, func(tx *gorm.DB, cod string) error {
		cliente.Codigo = cod
		return s.repo.CreateTx(tx, cliente)
	})
	if err != nil {
		return nil, err
	}

	auditar(ctx, s.dispatcher, info, model.AccionCrear, "cliente", cliente.ID,
		fmt.Sprintf("Cliente: %s", cliente.Nombre), nil, worker.SnapshotJSON(cliente))

	return mapCliente(cliente), nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uint) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNoEncontrado
		}
		return nil, err
	}
	return mapCliente(cliente), nil
}

func (s *clienteService) Listar(ctx context.Context, filter dto.ListFilter) (*dto.ClienteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size < 1 {
		filter.Size = 10
	}
	clientes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		items = append(items, *mapCliente(&clientes[i]))
	}
	return &dto.ClienteListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.Size,
		Pages: int((total + int64(filter.Size) - 1) / int64(filter.Size)),
	}, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uint, info ClientInfo, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNoEncontrado
		}
		return nil, err
	}
	anterior := worker.SnapshotJSON(cliente)

	if req.Nombre != nil {
		cliente.Nombre = *req.Nombre
	}
	if req.RazonSocial != nil {
		cliente.RazonSocial = req.RazonSocial
	}
	if req.CUIT != nil {
		cliente.CUIT = req.CUIT
	}
	if req.Direccion != nil {
		cliente.Direccion = req.Direccion
	}
	if req.Telefono != nil {
		cliente.Telefono = req.Telefono
	}
	if req.Email != nil {
		cliente.Email = req.Email
	}
	if req.Contacto != nil {
		cliente.Contacto = req.Contacto
	}

	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}

	auditar(ctx, s.dispatcher, info, model.AccionEditar, "cliente", cliente.ID,
		fmt.Sprintf("Cliente: %s", cliente.Nombre), anterior, worker.SnapshotJSON(cliente))

	return mapCliente(cliente), nil
}

func (s *clienteService) Eliminar(ctx context.Context, id uint, info ClientInfo) error {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClienteNoEncontrado
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	auditar(ctx, s.dispatcher, info, model.AccionEliminar, "cliente", cliente.ID,
		fmt.Sprintf("Cliente: %s", cliente.Nombre), worker.SnapshotJSON(cliente), nil)
	return nil
}

func (s *clienteService) Reactivar(ctx context.Context, id uint, info ClientInfo) error {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClienteNoEncontrado
		}
		return err
	}
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return err
	}
	auditar(ctx, s.dispatcher, info, model.AccionEditar, "cliente", cliente.ID,
		fmt.Sprintf("Cliente reactivado: %s", cliente.Nombre), nil, nil)
	return nil
}
