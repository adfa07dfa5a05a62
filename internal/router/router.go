package router

import (
	"time"

	"github.com/mattygrunge/planproduccion/internal/codigo"
	"github.com/mattygrunge/planproduccion/internal/config"
	"github.com/mattygrunge/planproduccion/internal/handler"
	"github.com/mattygrunge/planproduccion/internal/middleware"
	"github.com/mattygrunge/planproduccion/internal/model"
	"github.com/mattygrunge/planproduccion/internal/repository"
	"github.com/mattygrunge/planproduccion/internal/service"
	"github.com/mattygrunge/planproduccion/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	sectorRepo := repository.NewSectorRepository(db)
	lineaRepo := repository.NewLineaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	estadoLineaRepo := repository.NewEstadoLineaRepository(db)
	loteRepo := repository.NewLoteRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	codigos := codigo.NewGenerator(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(usuarioRepo, codigos, dispatcher, cfg)
	productoSvc := service.NewProductoService(productoRepo, codigos, dispatcher)
	sectorSvc := service.NewSectorService(sectorRepo, codigos, dispatcher)
	lineaSvc := service.NewLineaService(lineaRepo, sectorRepo, codigos, dispatcher)
	clienteSvc := service.NewClienteService(clienteRepo, codigos, dispatcher)
	estadoLineaSvc := service.NewEstadoLineaService(estadoLineaRepo, sectorRepo, lineaRepo, codigos, dispatcher)
	loteSvc := service.NewLoteService(loteRepo, productoRepo, estadoLineaRepo, codigos, dispatcher)
	historialSvc := service.NewHistorialService(loteRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	sectoresH := handler.NewSectoresHandler(sectorSvc)
	lineasH := handler.NewLineasHandler(lineaSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	estadosH := handler.NewEstadosLineaHandler(estadoLineaSvc)
	lotesH := handler.NewLotesHandler(loteSvc)
	historialH := handler.NewHistorialHandler(historialSvc)
	auditoriaH := handler.NewAuditoriaHandler(auditLogRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole(model.RolOperador, model.RolSupervisor, model.RolAdministrador)
	supervisores := middleware.RequireRole(model.RolSupervisor, model.RolAdministrador)
	admin := middleware.RequireRole(model.RolAdministrador)

	v1 := r.Group("/v1", jwtMW)
	{
		// Lotes — registro diario de producción, accesible a todos los roles
		lotes := v1.Group("/lotes", todos)
		{
			lotes.POST("", lotesH.Crear)
			lotes.GET("", lotesH.Listar)
			lotes.POST("/validar", lotesH.Validar)
			lotes.GET("/producto/:producto_id/ultimo", lotesH.UltimoDeProducto)
			lotes.GET("/producto/:producto_id/sugerir-numero", lotesH.SugerirNumero)
			lotes.GET("/:id", lotesH.ObtenerPorID)
			lotes.PUT("/:id", lotesH.Actualizar)
		}
		v1.DELETE("/lotes/:id", supervisores, lotesH.Eliminar)

		// Historial de producción con agregados, consulta de solo lectura
		v1.GET("/historial", todos, historialH.Consultar)

		// Estados de línea — registro de actividad, todos los roles
		v1.GET("/estados-linea/tipos", todos, estadosH.Tipos)
		estados := v1.Group("/estados-linea", todos)
		{
			estados.POST("", estadosH.Crear)
			estados.GET("", estadosH.Listar)
			estados.GET("/:id", estadosH.ObtenerPorID)
			estados.PUT("/:id", estadosH.Actualizar)
		}
		v1.DELETE("/estados-linea/:id", supervisores, estadosH.Eliminar)

		// Catálogos — lectura para todos, escritura para supervisores
		v1.GET("/productos", todos, productosH.Listar)
		v1.GET("/productos/:id", todos, productosH.ObtenerPorID)
		prods := v1.Group("/productos", supervisores)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		v1.GET("/sectores", todos, sectoresH.Listar)
		v1.GET("/sectores/:id", todos, sectoresH.ObtenerPorID)
		sectores := v1.Group("/sectores", supervisores)
		{
			sectores.POST("", sectoresH.Crear)
			sectores.PUT("/:id", sectoresH.Actualizar)
			sectores.DELETE("/:id", sectoresH.Eliminar)
			sectores.PATCH("/:id/reactivar", sectoresH.Reactivar)
		}

		v1.GET("/lineas", todos, lineasH.Listar)
		v1.GET("/lineas/:id", todos, lineasH.ObtenerPorID)
		lineas := v1.Group("/lineas", supervisores)
		{
			lineas.POST("", lineasH.Crear)
			lineas.PUT("/:id", lineasH.Actualizar)
			lineas.DELETE("/:id", lineasH.Eliminar)
			lineas.PATCH("/:id/reactivar", lineasH.Reactivar)
		}

		v1.GET("/clientes", todos, clientesH.Listar)
		v1.GET("/clientes/:id", todos, clientesH.ObtenerPorID)
		clientes := v1.Group("/clientes", supervisores)
		{
			clientes.POST("", clientesH.Crear)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Eliminar)
			clientes.PATCH("/:id/reactivar", clientesH.Reactivar)
		}

		// Administración
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
			usuarios.PATCH("/:id/reactivar", authH.ReactivarUsuario)
		}

		v1.GET("/auditoria", supervisores, auditoriaH.Listar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
