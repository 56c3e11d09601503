package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Shivam-Coderturtle/campus-order-hub/handlers"
	"github.com/Shivam-Coderturtle/campus-order-hub/middlewares"
	"github.com/Shivam-Coderturtle/campus-order-hub/models"
)

type Server struct {
	Router *mux.Router
	server *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

func SetupRoutes() *Server {
	router := mux.NewRouter()
	authRoutes := router.PathPrefix("/api").Subrouter()
	authRoutes.Use(middlewares.AuthMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"alive": true}`)
	}).Methods("GET")
	router.HandleFunc("/register", handlers.Register).Methods("POST")
	router.HandleFunc("/refresh", handlers.RefreshToken).Methods("POST")
	router.HandleFunc("/login", handlers.Login).Methods("POST")
	authRoutes.HandleFunc("/logout", handlers.Logout).Methods("POST")
	authRoutes.HandleFunc("/session", handlers.GetSession).Methods("GET")

	authRoutes.HandleFunc("/outlets", handlers.ListOutlets).Methods("GET")
	authRoutes.HandleFunc("/outlets/{id}", handlers.GetOutlet).Methods("GET")
	authRoutes.HandleFunc("/outlets/{id}/menu", handlers.GetOutletMenu).Methods("GET")
	authRoutes.HandleFunc("/outlets/{id}/ratings", handlers.GetOutletRatings).Methods("GET")

	authRoutes.HandleFunc("/cart", handlers.GetCart).Methods("GET")
	authRoutes.HandleFunc("/cart", handlers.AddToCart).Methods("POST")
	authRoutes.HandleFunc("/cart", handlers.ClearCart).Methods("DELETE")
	authRoutes.HandleFunc("/cart/{itemId}", handlers.UpdateCartItem).Methods("PATCH")
	authRoutes.HandleFunc("/cart/{itemId}", handlers.RemoveCartItem).Methods("DELETE")

	authRoutes.HandleFunc("/orders", handlers.Checkout).Methods("POST")
	authRoutes.HandleFunc("/orders", handlers.ListMyOrders).Methods("GET")
	authRoutes.HandleFunc("/orders/{orderId}", handlers.GetOrder).Methods("GET")
	authRoutes.HandleFunc("/orders/{orderId}/ratings", handlers.RateOrder).Methods("POST")

	authRoutes.HandleFunc("/profile", handlers.GetProfile).Methods("GET")
	authRoutes.HandleFunc("/profile", handlers.SaveProfile).Methods("PUT")
	authRoutes.HandleFunc("/profile/otp/send", handlers.SendMobileOtp).Methods("POST")
	authRoutes.HandleFunc("/profile/otp/verify", handlers.VerifyMobileOtp).Methods("POST")

	authRoutes.HandleFunc("/notifications", handlers.ListNotifications).Methods("GET")
	authRoutes.HandleFunc("/notifications/read-all", handlers.MarkAllNotificationsRead).Methods("POST")
	authRoutes.HandleFunc("/notifications/{notificationId}/read", handlers.MarkNotificationRead).Methods("POST")
	authRoutes.HandleFunc("/notifications/ws", handlers.NotificationSocket).Methods("GET")

	// registration endpoints stay open to any authenticated user; the
	// dashboards below are role gated
	authRoutes.HandleFunc("/delivery/register", handlers.RegisterDeliveryPartner).Methods("POST")
	authRoutes.HandleFunc("/restaurant/register", handlers.RegisterRestaurantPartner).Methods("POST")

	delivery := authRoutes.PathPrefix("/delivery").Subrouter()
	delivery.Use(middlewares.RoleBasedMiddleware(models.RoleDeliveryPartner))

	delivery.HandleFunc("/profile", handlers.GetDeliveryProfile).Methods("GET")
	delivery.HandleFunc("/profile", handlers.UpdateDeliverySettings).Methods("PATCH")
	delivery.HandleFunc("/orders/available", handlers.AvailableOrders).Methods("GET")
	delivery.HandleFunc("/orders", handlers.MyDeliveries).Methods("GET")
	delivery.HandleFunc("/orders/{orderId}/accept", handlers.AcceptDeliveryOrder).Methods("POST")
	delivery.HandleFunc("/orders/{orderId}/pickup", handlers.PickupOrder).Methods("POST")
	delivery.HandleFunc("/orders/{orderId}/deliver", handlers.DeliverOrder).Methods("POST")

	restaurant := authRoutes.PathPrefix("/restaurant").Subrouter()
	restaurant.Use(middlewares.RoleBasedMiddleware(models.RoleRestaurantPartner))

	restaurant.HandleFunc("/profile", handlers.GetRestaurantProfile).Methods("GET")
	restaurant.HandleFunc("/orders", handlers.ListRestaurantOrders).Methods("GET")
	restaurant.HandleFunc("/orders/{orderId}/prepare", handlers.PrepareOrder).Methods("POST")
	restaurant.HandleFunc("/orders/{orderId}/cancel", handlers.CancelRestaurantOrder).Methods("POST")

	// admin only
	admin := authRoutes.PathPrefix("/admin").Subrouter()
	admin.Use(middlewares.RoleBasedMiddleware(models.RoleAdmin))

	admin.HandleFunc("/outlets", handlers.AdminCreateOutlet).Methods("POST")
	admin.HandleFunc("/outlets/{outletId}", handlers.AdminUpdateOutlet).Methods("PUT")
	admin.HandleFunc("/outlets/{outletId}", handlers.AdminDeleteOutlet).Methods("DELETE")
	admin.HandleFunc("/menu-items", handlers.AdminListMenuItems).Methods("GET")
	admin.HandleFunc("/menu-items", handlers.AdminCreateMenuItem).Methods("POST")
	admin.HandleFunc("/menu-items/{itemId}", handlers.AdminUpdateMenuItem).Methods("PUT")
	admin.HandleFunc("/menu-items/{itemId}", handlers.AdminDeleteMenuItem).Methods("DELETE")
	admin.HandleFunc("/orders", handlers.AdminListOrders).Methods("GET")
	admin.HandleFunc("/users", handlers.AdminListUsers).Methods("GET")
	admin.HandleFunc("/partners/restaurant", handlers.AdminListRestaurantPartners).Methods("GET")
	admin.HandleFunc("/partners/restaurant/{partnerId}", handlers.AdminReviewRestaurantPartner).Methods("PUT")
	admin.HandleFunc("/partners/delivery", handlers.AdminListDeliveryPartners).Methods("GET")

	return &Server{
		Router: router,
	}
}

func (svr *Server) Run(addr string) error {
	svr.server = &http.Server{
		Addr:              addr,
		Handler:           svr.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
