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

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, info ClientInfo, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uint, info ClientInfo, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uint, info ClientInfo) error
	Reactivar(ctx context.Context, id uint, info ClientInfo) error
}

type productoService struct {
	repo       repository.ProductoRepository
	codigos    codigo.Allocator
	dispatcher *worker.Dispatcher
}

func NewProductoService(repo repository.ProductoRepository, codigos codigo.Allocator, dispatcher *worker.Dispatcher) ProductoService {
	return &productoService{repo: repo, codigos: codigos, dispatcher: dispatcher}
}

func mapProducto(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:              p.ID,
		Codigo:          p.Codigo,
		Nombre:          p.Nombre,
		Descripcion:     p.Descripcion,
		UnidadMedida:    p.UnidadMedida,
		PrecioUnitario:  p.PrecioUnitario,
		AnosVencimiento: p.AnosVencimiento,
		LitrosPorUnidad: p.LitrosPorUnidad,
		Activo:          p.Activo,
		CreatedAt:       p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *productoService) Crear(ctx context.Context, info ClientInfo, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	producto := &model.Producto{
		Nombre:          req.Nombre,
		Descripcion:     req.Descripcion,
		UnidadMedida:    "unidad",
		AnosVencimiento: 2,
		LitrosPorUnidad: decimal.NewFromInt(1),
		Activo:          true,
	}
	if req.UnidadMedida != "" {
		producto.UnidadMedida = req.UnidadMedida
	}
	if req.PrecioUnitario != nil {
		producto.PrecioUnitario = *req.PrecioUnitario
	}
	if req.AnosVencimiento != nil {
		producto.AnosVencimiento = *req.AnosVencimiento
	}
	if req.LitrosPorUnidad != nil {
		producto.LitrosPorUnidad = *req.LitrosPorUnidad
	}

	err := crearConCodigo(ctx, s.repo.DB(), s.codigos, codigo.Producto, func(tx *gorm.DB, cod string) error {
		producto.Codigo = cod
		return s.repo.CreateTx(tx, producto)
	})
	if err != nil {
		return nil, err
	}

	auditar(ctx, s.dispatcher, info, model.AccionCrear, "producto", producto.ID,
		fmt.Sprintf("Producto: %s", producto.Nombre), nil, worker.SnapshotJSON(producto))

	return mapProducto(producto), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	return mapProducto(producto), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size < 1 {
		filter.Size = 10
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, *mapProducto(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.Size,
		Pages: int((total + int64(filter.Size) - 1) / int64(filter.Size)),
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uint, info ClientInfo, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductoNoEncontrado
		}
		return nil, err
	}
	anterior := worker.SnapshotJSON(producto)

	if req.Nombre != nil {
		producto.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		producto.Descripcion = req.Descripcion
	}
	if req.UnidadMedida != nil {
		producto.UnidadMedida = *req.UnidadMedida
	}
	if req.PrecioUnitario != nil {
		producto.PrecioUnitario = *req.PrecioUnitario
	}
	if req.AnosVencimiento != nil {
		producto.AnosVencimiento = *req.AnosVencimiento
	}
	if req.LitrosPorUnidad != nil {
		producto.LitrosPorUnidad = *req.LitrosPorUnidad
	}

	if err := s.repo.Update(ctx, producto); err != nil {
		return nil, err
	}

	auditar(ctx, s.dispatcher, info, model.AccionEditar, "producto", producto.ID,
		fmt.Sprintf("Producto: %s", producto.Nombre), anterior, worker.SnapshotJSON(producto))

	return mapProducto(producto), nil
}

func (s *productoService) Eliminar(ctx context.Context, id uint, info ClientInfo) error {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductoNoEncontrado
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	auditar(ctx, s.dispatcher, info, model.AccionEliminar, "producto", producto.ID,
		fmt.Sprintf("Producto: %s", producto.Nombre), worker.SnapshotJSON(producto), nil)
	return nil
}

func (s *productoService) Reactivar(ctx context.Context, id uint, info ClientInfo) error {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductoNoEncontrado
		}
		return err
	}
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return err
	}
	auditar(ctx, s.dispatcher, info, model.AccionEditar, "producto", producto.ID,
		fmt.Sprintf("Producto reactivado: %s", producto.Nombre), nil, nil)
	return nil
}
