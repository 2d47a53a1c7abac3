package routes

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/sinashm/go-shop/app/configs"
	"github.com/sinashm/go-shop/app/handlers"
	"github.com/sinashm/go-shop/app/middlewares"
	"github.com/sinashm/go-shop/app/repositories"
	"github.com/sinashm/go-shop/app/services"
	"github.com/sinashm/go-shop/app/utils/renderer"
	"github.com/sinashm/go-shop/app/utils/sessions"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, sessionKeys *configs.SessionKeys) *mux.Router {
	render := renderer.New()
	validate := validator.New()
	sessionStore := sessions.NewCookieSessionStore(sessionKeys.AuthKey, sessionKeys.EncKey)

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewBlogCategoryRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	postRepo := repositories.NewBlogPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)

	gateway := services.NewZarinpalClient(configs.LoadENV.ZARINPAL_MERCHANT_ID, configs.LoadENV.ZARINPAL_SANDBOX)
	checkoutSvc := services.NewCheckoutService(cartRepo, productRepo, orderRepo, orderItemRepo, gateway, configs.LoadENV.AppURL)

	homeHandler := handlers.NewHomeHandler(render, productRepo, postRepo)
	blogHandler := handlers.NewBlogHandler(render, validate, postRepo, categoryRepo, tagRepo, commentRepo)
	cartHandler := handlers.NewCartHandler(render, cartRepo, productRepo)
	orderHandler := handlers.NewOrderHandler(render, checkoutSvc, orderRepo, productRepo)
	authHandler := handlers.NewAuthHandler(render, validate, userRepo, sessionStore)

	router := mux.NewRouter()
	router.Use(middlewares.MethodOverrideMiddleware)
	router.Use(middlewares.UserContextMiddleware(sessionStore, userRepo))
	router.Use(middlewares.CartCountMiddleware(cartRepo))

	csrfProtect := csrf.Protect(
		sessionKeys.AuthKey,
		csrf.Secure(configs.LoadENV.AppEnv == "production"),
		csrf.Path("/"),
	)
	router.Use(csrfProtect)

	router.HandleFunc("/", homeHandler.HomeGet).Methods("GET")
	router.HandleFunc("/products/{slug}", homeHandler.ProductDetailGet).Methods("GET")

	router.HandleFunc("/blog", blogHandler.BlogListGet).Methods("GET")
	router.HandleFunc("/blog/{slug}", blogHandler.BlogDetailGet).Methods("GET")

	router.HandleFunc("/register", authHandler.RegisterGet).Methods("GET")
	router.HandleFunc("/register", authHandler.RegisterPost).Methods("POST")
	router.HandleFunc("/login", authHandler.LoginGet).Methods("GET")
	router.HandleFunc("/login", authHandler.LoginPost).Methods("POST")
	router.HandleFunc("/logout", authHandler.LogoutPost).Methods("POST")

	authed := router.NewRoute().Subrouter()
	authed.Use(middlewares.AuthRequiredMiddleware)

	authed.HandleFunc("/blog/{slug}/comments", blogHandler.CommentPost).Methods("POST")

	authed.HandleFunc("/carts", cartHandler.CartGet).Methods("GET")
	authed.HandleFunc("/carts/items", cartHandler.CartAddPost).Methods("POST")
	authed.HandleFunc("/carts/items/{itemID}/remove", cartHandler.CartRemoveItemPost).Methods("POST")

	authed.HandleFunc("/checkout", orderHandler.CheckoutGet).Methods("GET")
	authed.HandleFunc("/orders", orderHandler.OrderListGet).Methods("GET")
	authed.HandleFunc("/orders/{orderID}", orderHandler.OrderDetailGet).Methods("GET")
	authed.HandleFunc("/orders/{orderID}/verify", orderHandler.VerifyPaymentGet).Methods("GET")
	authed.HandleFunc("/orders/{orderID}", orderHandler.OrderDeletePost).Methods("DELETE")
	authed.HandleFunc("/orders/items/{itemID}/remove", orderHandler.RemoveOrderItemGet).Methods("GET")

	fs := http.FileServer(http.Dir("./public"))
	router.PathPrefix("/public/").Handler(http.StripPrefix("/public/", fs))

	return router
}
