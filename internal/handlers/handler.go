package handlers

import (
	"context"

	"smart_home_face/internal/camera"
	"smart_home_face/internal/logger"
	"smart_home_face/internal/models"
	"smart_home_face/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Camera is the capture session the camera and face endpoints drive.
// *camera.Capture satisfies it.
type Camera interface {
	Start(ctx context.Context) error
	Stop()
	Capture() (models.CapturedImage, error)
	Status() camera.Status
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	camera   Camera
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, cam Camera, log *logger.Logger) *Handler {
	return &Handler{services: services, camera: cam, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Session, face, camera and theme endpoints
	h.registerSessionRoutes(router)
	h.registerFaceRoutes(router)
	h.registerCameraRoutes(router)
	h.registerThemeRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerSessionRoutes(r *gin.Engine) {
	session := r.Group("/api/session")
	{
		session.GET("", h.getSession)
		session.GET("/check", h.checkSession)
		session.POST("/login", h.login)
		session.POST("/signup", h.signup)
		session.POST("/demo", h.enterDemo)
		session.POST("/logout", h.logout)
	}
}

func (h *Handler) registerFaceRoutes(r *gin.Engine) {
	face := r.Group("/api/face")
	{
		face.GET("", h.faceStatus)
		face.POST("/authenticate", h.authenticateFace)
		face.POST("/register", h.registerFace)
		face.POST("/capture", h.requireCamera, h.captureFace)
	}
}

func (h *Handler) registerCameraRoutes(r *gin.Engine) {
	cam := r.Group("/api/camera", h.requireCamera)
	{
		cam.GET("", h.cameraStatus)
		cam.POST("/start", h.startCamera)
		cam.POST("/stop", h.stopCamera)
	}
}

func (h *Handler) registerThemeRoutes(r *gin.Engine) {
	theme := r.Group("/api/theme")
	{
		theme.GET("", h.getTheme)
		theme.POST("", h.setTheme)
		theme.POST("/toggle", h.toggleTheme)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.sessionMiddleware)
	{
		api.GET("/dashboard", h.revalidateSession, h.getDashboard)
		h.registerDeviceRoutes(api)
		api.GET("/sensors", h.getSensors)
		api.GET("/activity", h.getActivity)

		// WebSocket snapshot push (HTTP upgrade), same port
		api.GET("/ws", h.revalidateSession, h.wsConnect)
	}
}

func (h *Handler) registerDeviceRoutes(api *gin.RouterGroup) {
	devices := api.Group("/devices")
	{
		devices.GET("", h.getDevices)
		// Body example: {"status":"on"}
		devices.POST("/:id/toggle", h.toggleDevice)
	}
}
