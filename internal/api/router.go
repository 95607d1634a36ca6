package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/carparkly/carparkly-backend-api-final/internal/auth"
	"github.com/carparkly/carparkly-backend-api-final/internal/booking"
	bookingHttp "github.com/carparkly/carparkly-backend-api-final/internal/booking/http"
	"github.com/carparkly/carparkly-backend-api-final/internal/client"
	clientHttp "github.com/carparkly/carparkly-backend-api-final/internal/client/http"
	"github.com/carparkly/carparkly-backend-api-final/internal/faq"
	faqHttp "github.com/carparkly/carparkly-backend-api-final/internal/faq/http"
	"github.com/carparkly/carparkly-backend-api-final/internal/file"
	fileHttp "github.com/carparkly/carparkly-backend-api-final/internal/file/http"
	"github.com/carparkly/carparkly-backend-api-final/internal/notification"
	notificationHttp "github.com/carparkly/carparkly-backend-api-final/internal/notification/http"
	"github.com/carparkly/carparkly-backend-api-final/internal/parkingspot"
	spotHttp "github.com/carparkly/carparkly-backend-api-final/internal/parkingspot/http"
	"github.com/carparkly/carparkly-backend-api-final/internal/partner"
	partnerHttp "github.com/carparkly/carparkly-backend-api-final/internal/partner/http"
	"github.com/carparkly/carparkly-backend-api-final/internal/payment"
	paymentHttp "github.com/carparkly/carparkly-backend-api-final/internal/payment/http"
	"github.com/carparkly/carparkly-backend-api-final/internal/payout"
	payoutHttp "github.com/carparkly/carparkly-backend-api-final/internal/payout/http"
	"github.com/carparkly/carparkly-backend-api-final/internal/penalty"
	penaltyHttp "github.com/carparkly/carparkly-backend-api-final/internal/penalty/http"
	"github.com/carparkly/carparkly-backend-api-final/internal/review"
	reviewHttp "github.com/carparkly/carparkly-backend-api-final/internal/review/http"
	"github.com/carparkly/carparkly-backend-api-final/internal/subscription"
	subscriptionHttp "github.com/carparkly/carparkly-backend-api-final/internal/subscription/http"
	"github.com/carparkly/carparkly-backend-api-final/internal/support"
	supportHttp "github.com/carparkly/carparkly-backend-api-final/internal/support/http"
	"github.com/carparkly/carparkly-backend-api-final/internal/user"
	userHttp "github.com/carparkly/carparkly-backend-api-final/internal/user/http"
)

// Config holds the services and settings the router assembles into the
// HTTP surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Currency     string

	JWTManager *auth.JWTManager
	Blacklist  *auth.TokenBlacklist

	UserService         user.Service
	ClientService       client.Service
	PartnerService      partner.Service
	SpotService         parkingspot.Service
	BookingService      booking.Service
	PaymentService      payment.Service
	FaqService          faq.Service
	PenaltyService      penalty.Service
	SubscriptionService subscription.Service
	NotificationService notification.Service
	ReviewService       review.Service
	SupportService      support.Service
	PayoutService       payout.Service
	FileService         file.Service
}

// NewRouter initializes the HTTP router engine. It assembles the global
// middleware (logging, recovery, CORS) and registers every module's
// routes under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// authMiddleware validates the bearer token; the role middlewares
	// re-check the user row on top of it.
	authMiddleware := auth.AuthRequired(cfg.JWTManager, cfg.Blacklist)
	adminMiddleware := RequireRole(cfg.UserService, user.RoleAdmin)
	partnerMiddleware := RequireRole(cfg.UserService, user.RolePartner, user.RoleAdmin)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager, cfg.Blacklist)
	clientHandler := clientHttp.NewHandler(cfg.ClientService)
	partnerHandler := partnerHttp.NewHandler(cfg.PartnerService)
	fileHandler := fileHttp.NewHandler(cfg.FileService)
	spotHandler := spotHttp.NewHandler(cfg.SpotService, cfg.PartnerService, fileHandler)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.SpotService, cfg.PartnerService, cfg.UserService, cfg.Currency)
	paymentHandler := paymentHttp.NewHandler(cfg.PaymentService, cfg.BookingService)
	faqHandler := faqHttp.NewHandler(cfg.FaqService)
	penaltyHandler := penaltyHttp.NewHandler(cfg.PenaltyService)
	subscriptionHandler := subscriptionHttp.NewHandler(cfg.SubscriptionService, cfg.PartnerService)
	notificationHandler := notificationHttp.NewHandler(cfg.NotificationService)
	reviewHandler := reviewHttp.NewHandler(cfg.ReviewService, cfg.SpotService)
	supportHandler := supportHttp.NewHandler(cfg.SupportService)
	payoutHandler := payoutHttp.NewHandler(cfg.PayoutService, cfg.PartnerService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		clientHttp.RegisterRoutes(v1, clientHandler, authMiddleware, adminMiddleware)
		partnerHttp.RegisterRoutes(v1, partnerHandler, authMiddleware, adminMiddleware)
		spotHttp.RegisterRoutes(v1, spotHandler, authMiddleware, partnerMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
		paymentHttp.RegisterRoutes(v1, paymentHandler, authMiddleware)
		faqHttp.RegisterRoutes(v1, faqHandler, authMiddleware, adminMiddleware)
		penaltyHttp.RegisterRoutes(v1, penaltyHandler, authMiddleware, adminMiddleware)
		subscriptionHttp.RegisterRoutes(v1, subscriptionHandler, authMiddleware, adminMiddleware)
		notificationHttp.RegisterRoutes(v1, notificationHandler, authMiddleware)
		reviewHttp.RegisterRoutes(v1, reviewHandler, authMiddleware)
		supportHttp.RegisterRoutes(v1, supportHandler, authMiddleware, adminMiddleware)
		payoutHttp.RegisterRoutes(v1, payoutHandler, authMiddleware, adminMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler, authMiddleware)
	}

	return r
}
