// server/internal/api/routes/routes.go
package routes

import (
	"net/http"
	"time"

	"waste-retrieval-api-server/config"
	"waste-retrieval-api-server/internal/api/handlers"
	"waste-retrieval-api-server/internal/api/middleware"
	"waste-retrieval-api-server/internal/retrieval"
	"waste-retrieval-api-server/internal/s3"
	"waste-retrieval-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
)

// SetupRouter nhận vào các thành phần phụ thuộc và thiết lập các route.
// s3Uploader may be nil, which disables exports.
func SetupRouter(
	cfg config.Config,
	service *retrieval.Service,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
	log *logging.Logger,
) *gin.Engine {
	router := gin.Default()
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	router.Use(cors.New(corsConfig))

	secret := []byte(cfg.JWT.Secret)

	// Khởi tạo các handlers
	retrievalHandler := &handlers.RetrievalHandler{Service: service, Log: log}
	if wsHub != nil {
		retrievalHandler.Hub = wsHub
	}
	if s3Uploader != nil {
		retrievalHandler.Uploader = s3Uploader
	}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, JWTSecret: secret, Issuer: cfg.JWT.Issuer, Log: log}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// Quét QR: token là tùy chọn, userId có thể nằm trong body.
		apiV1.POST("/qr-scan", middleware.OptionalAuthenticate(secret, cfg.JWT.Issuer), retrievalHandler.SubmitQRScan)

		// Dashboard, yêu cầu đăng nhập
		retrievals := apiV1.Group("/retrievals")
		retrievals.Use(middleware.Authenticate(secret, cfg.JWT.Issuer))
		{
			retrievals.GET("", retrievalHandler.ListRetrievals)
			retrievals.POST("/export", retrievalHandler.ExportRetrievals)
		}
	}

	return router
}
