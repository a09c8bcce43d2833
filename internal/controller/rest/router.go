package rest

import (
	"net/http"
	"time"

	"github.com/Freeeeeet/course_payments/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options настройки HTTP-слоя
type Options struct {
	CORSOrigins []string
	// StaticDir раздаётся как SPA, если не пусто (production)
	StaticDir string
}

type Handler struct {
	payments *service.PaymentService
	access   *service.AccessService
	reviews  *service.ReviewService
	queries  *service.QueryService
	logger   *zap.Logger
}

func NewHandler(
	payments *service.PaymentService,
	access *service.AccessService,
	reviews *service.ReviewService,
	queries *service.QueryService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		payments: payments,
		access:   access,
		reviews:  reviews,
		queries:  queries,
		logger:   logger,
	}
}

// NewRouter собирает gin.Engine со всеми маршрутами API
func NewRouter(h *Handler, opts Options) *gin.Engine {
	r := gin.New()

	r.Use(requestLogger(h.logger))
	r.Use(recovery(h.logger))
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(sanitizeInput())

	payments := api.Group("/payments")
	payments.POST("", h.submitPayment)
	payments.GET("", h.listPayments)
	payments.GET("/export", h.exportPayments)
	payments.GET("/status/:id", h.paymentStatus)
	payments.POST("/unlock/:paymentId", h.unlockCourse)
	payments.GET("/:id", h.getPayment)
	payments.PATCH("/:id", h.updatePaymentStatus)
	payments.GET("/:id/receipt", h.paymentReceipt)

	courses := api.Group("/courses")
	courses.POST("/unlock/:paymentId", h.unlockCourse)
	courses.GET("/check-access/:paymentId", h.checkAccess)
	courses.GET("/:id/reviews", h.courseReviews)

	reviews := api.Group("/reviews")
	reviews.POST("", h.submitReview)
	reviews.GET("", h.listReviews)
	reviews.PATCH("/:id", h.updateReviewStatus)

	admin := api.Group("/admin")
	admin.GET("/payments", h.listPayments)
	admin.GET("/payments/:id", h.getPayment)
	admin.PATCH("/payments/:id", h.updatePaymentStatus)
	admin.GET("/summary", h.summary)

	if opts.StaticDir != "" {
		serveFrontend(r, opts.StaticDir)
	} else {
		r.NoRoute(func(c *gin.Context) {
			fail(c, http.StatusNotFound, "Route not found", "")
		})
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
