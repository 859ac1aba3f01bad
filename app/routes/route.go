package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/oguzk/eticaret/app/configs"
	"github.com/oguzk/eticaret/app/handlers"
	adminhandlers "github.com/oguzk/eticaret/app/handlers/admin"
	"github.com/oguzk/eticaret/app/middlewares"
	"github.com/oguzk/eticaret/app/repositories"
	"github.com/oguzk/eticaret/app/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, iyzicoClient services.IyzicoClient) *mux.Router {
	rnd := render.New()
	env := configs.LoadENV

	contactRepo := repositories.NewContactRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	uiMediaRepo := repositories.NewUiMediaRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	mailer := services.NewMailer(services.MailerConfig{
		Host:     env.EmailHost,
		Port:     env.EmailPort,
		Username: env.EmailUsername,
		Password: env.EmailPassword,
		From:     env.EmailFrom,
	})

	providers := services.NewProviderRegistry(
		services.NewIyzicoProvider(),
		services.NewMidtransProvider(configs.GetMidtransCoreAPIClient()),
		services.NewFakeCcProvider(),
	)
	checkout := services.NewCheckoutService(db, cartRepo, orderRepo, paymentRepo)
	conversion := services.NewConversionService(cartRepo, paymentRepo, orderRepo, checkout, providers)

	contactHandler := handlers.NewContactHandler(contactRepo, mailer, env.ContactInbox, rnd)
	reviewHandler := handlers.NewReviewHandler(reviewRepo, orderRepo, rnd)
	uiMediaHandler := handlers.NewUiMediaHandler(uiMediaRepo, rnd)
	iyzicoHandler := handlers.NewIyzicoHandler(iyzicoClient, conversion, rnd)
	webhookHandler := handlers.NewWebhookHandler(env.FRONTEND_URL, rnd)
	authHandler := handlers.NewAuthHandler(customerRepo, env.JWTSecret, rnd)

	contactAdmin := adminhandlers.NewContactAdminHandler(contactRepo, rnd)
	reviewAdmin := adminhandlers.NewReviewAdminHandler(reviewRepo, rnd)
	uiMediaAdmin := adminhandlers.NewUiMediaAdminHandler(uiMediaRepo, env.UploadDir, rnd)
	iyzicoAdmin := adminhandlers.NewIyzicoAdminHandler(orderRepo, paymentRepo, rnd)

	auth := middlewares.AuthMiddleware(rnd)
	adminOnly := middlewares.AdminMiddleware(rnd)

	router := mux.NewRouter()
	router.Use(middlewares.LoggingMiddleware)
	router.Use(middlewares.MetricsMiddleware)

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public storefront API.
	store := router.PathPrefix("/store").Subrouter()
	store.HandleFunc("/contact", contactHandler.Create).Methods("POST")
	store.HandleFunc("/contact", contactHandler.Fields).Methods("GET")
	store.HandleFunc("/products/{id}/reviews", reviewHandler.ListByProduct).Methods("GET")
	store.HandleFunc("/ui-media", uiMediaHandler.List).Methods("GET")
	store.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	store.Handle("/auth/me", auth(http.HandlerFunc(authHandler.Me))).Methods("GET")
	store.Handle("/products/{id}/reviews", auth(http.HandlerFunc(reviewHandler.Create))).Methods("POST")

	// Gateway passthroughs.
	store.HandleFunc("/iyzico/binCheck", iyzicoHandler.BinCheck).Methods("POST")
	store.HandleFunc("/iyzico/init3ds", iyzicoHandler.Init3DS).Methods("POST")
	store.HandleFunc("/iyzico/auth3ds", iyzicoHandler.Auth3DS).Methods("POST")
	store.HandleFunc("/iyzico/initpwi", iyzicoHandler.InitPWI).Methods("POST")
	store.HandleFunc("/iyzico/retrivepwi", iyzicoHandler.RetrievePWI).Methods("POST")

	// Gateway callbacks; registered outside the admin middleware chain
	// because the gateway and the bank cannot authenticate.
	router.HandleFunc("/admin/iyzico/webhook", webhookHandler.Receive).Methods("POST")
	router.HandleFunc("/admin/iyzico/webhook", webhookHandler.Health).Methods("GET")
	router.HandleFunc("/admin/iyzico/callback3ds", webhookHandler.Callback3DS).Methods("POST")
	router.HandleFunc("/admin/iyzico/callback3ds", webhookHandler.Callback3DSRedirect).Methods("GET")

	// Admin API.
	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(auth, adminOnly)
	adminRouter.HandleFunc("/contact", contactAdmin.List).Methods("GET")
	adminRouter.HandleFunc("/contact/{id}", contactAdmin.Get).Methods("GET")
	adminRouter.HandleFunc("/contact/{id}", contactAdmin.Update).Methods("PUT")
	adminRouter.HandleFunc("/contact/{id}", contactAdmin.Delete).Methods("DELETE")

	adminRouter.HandleFunc("/product-reviews", reviewAdmin.List).Methods("GET")
	adminRouter.HandleFunc("/product-reviews/{id}", reviewAdmin.UpdateStatus).Methods("PUT")
	adminRouter.HandleFunc("/product-reviews/{id}", reviewAdmin.Delete).Methods("DELETE")

	adminRouter.HandleFunc("/iyzico/test", iyzicoAdmin.Test).Methods("GET", "POST")
	adminRouter.HandleFunc("/iyzico/order-info/{order_id}", iyzicoAdmin.OrderInfo).Methods("GET")

	adminRouter.HandleFunc("/ui-media", uiMediaAdmin.List).Methods("GET")
	adminRouter.HandleFunc("/ui-media", uiMediaAdmin.Create).Methods("POST")
	adminRouter.HandleFunc("/ui-media/reorder", uiMediaAdmin.Reorder).Methods("PUT")
	adminRouter.HandleFunc("/ui-media/{id}", uiMediaAdmin.Get).Methods("GET")
	adminRouter.HandleFunc("/ui-media/{id}", uiMediaAdmin.Update).Methods("PUT")
	adminRouter.HandleFunc("/ui-media/{id}", uiMediaAdmin.Delete).Methods("DELETE")

	return router
}
