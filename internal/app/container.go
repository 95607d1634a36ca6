package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/carparkly/carparkly-backend-api-final/internal/api"
	"github.com/carparkly/carparkly-backend-api-final/internal/auth"
	"github.com/carparkly/carparkly-backend-api-final/internal/booking"
	"github.com/carparkly/carparkly-backend-api-final/internal/client"
	"github.com/carparkly/carparkly-backend-api-final/internal/events"
	"github.com/carparkly/carparkly-backend-api-final/internal/faq"
	"github.com/carparkly/carparkly-backend-api-final/internal/file"
	"github.com/carparkly/carparkly-backend-api-final/internal/notification"
	"github.com/carparkly/carparkly-backend-api-final/internal/parkingspot"
	"github.com/carparkly/carparkly-backend-api-final/internal/partner"
	"github.com/carparkly/carparkly-backend-api-final/internal/payment"
	"github.com/carparkly/carparkly-backend-api-final/internal/payout"
	"github.com/carparkly/carparkly-backend-api-final/internal/penalty"
	"github.com/carparkly/carparkly-backend-api-final/internal/pkg/storage"
	"github.com/carparkly/carparkly-backend-api-final/internal/review"
	"github.com/carparkly/carparkly-backend-api-final/internal/subscription"
	"github.com/carparkly/carparkly-backend-api-final/internal/support"
	"github.com/carparkly/carparkly-backend-api-final/internal/user"
)

// Config holds the dependencies and settings required to start the
// application. Redis and Events are optional; nil disables the token
// blacklist and lifecycle events respectively.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	DBPool *pgxpool.Pool
	Redis  *redis.Client
	Events *events.Publisher

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	OmisePublicKey  string
	OmiseSecretKey  string
	PaymentCurrency string

	UploadDir string
}

// Container holds the initialized components needed by main.
type Container struct {
	Router *gin.Engine

	JWTManager          *auth.JWTManager
	BookingService      booking.Service
	NotificationService notification.Service
}

// NewContainer initializes every module and wires them together.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	var blacklist *auth.TokenBlacklist
	if cfg.Redis != nil {
		blacklist = auth.NewTokenBlacklist(cfg.Redis)
	}

	// A typed nil inside the interface would dodge the nil checks in
	// the services, so only assign when a publisher really exists.
	var bookingEvents booking.EventPublisher
	var paymentEvents payment.EventPublisher
	if cfg.Events != nil {
		bookingEvents = cfg.Events
		paymentEvents = cfg.Events
	}

	store, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	gateway, err := payment.NewOmiseGateway(cfg.OmisePublicKey, cfg.OmiseSecretKey)
	if err != nil {
		return nil, fmt.Errorf("init omise gateway: %w", err)
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Client module
	clientRepo := client.NewPgxRepository(cfg.DBPool)
	clientService := client.NewService(clientRepo)

	// Partner module
	partnerRepo := partner.NewPgxRepository(cfg.DBPool)
	partnerService := partner.NewService(partnerRepo)

	// Parking spot module
	spotRepo := parkingspot.NewPgxRepository(cfg.DBPool)
	spotService := parkingspot.NewService(spotRepo)

	// Payment module
	paymentRepo := payment.NewRepository(cfg.DBPool)
	paymentService := payment.NewService(paymentRepo, gateway, paymentEvents, cfg.PaymentCurrency)

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, partnerService, paymentService, bookingEvents)

	// FAQ module
	faqRepo := faq.NewPgxRepository(cfg.DBPool)
	faqService := faq.NewService(faqRepo)

	// Penalty module
	penaltyRepo := penalty.NewPgxRepository(cfg.DBPool)
	penaltyService := penalty.NewService(penaltyRepo)

	// Subscription module
	subscriptionRepo := subscription.NewPgxRepository(cfg.DBPool)
	subscriptionService := subscription.NewService(subscriptionRepo)

	// Notification module
	notificationRepo := notification.NewPgxRepository(cfg.DBPool)
	notificationService := notification.NewService(notificationRepo)

	// Review module
	reviewRepo := review.NewPgxRepository(cfg.DBPool)
	reviewService := review.NewService(reviewRepo)

	// Support module
	supportRepo := support.NewPgxRepository(cfg.DBPool)
	supportService := support.NewService(supportRepo)

	// Payout module
	payoutRepo := payout.NewPgxRepository(cfg.DBPool)
	payoutService := payout.NewService(payoutRepo)

	// File module
	fileRepo := file.NewPgxRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, store)

	router := api.NewRouter(api.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		Currency:     cfg.PaymentCurrency,

		JWTManager: jwtManager,
		Blacklist:  blacklist,

		UserService:         userService,
		ClientService:       clientService,
		PartnerService:      partnerService,
		SpotService:         spotService,
		BookingService:      bookingService,
		PaymentService:      paymentService,
		FaqService:          faqService,
		PenaltyService:      penaltyService,
		SubscriptionService: subscriptionService,
		NotificationService: notificationService,
		ReviewService:       reviewService,
		SupportService:      supportService,
		PayoutService:       payoutService,
		FileService:         fileService,
	})

	return &Container{
		Router:              router,
		JWTManager:          jwtManager,
		BookingService:      bookingService,
		NotificationService: notificationService,
	}, nil
}
