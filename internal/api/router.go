package api

import (
	"database/sql"
	"net/http"

	"github.com/jeongphys/g-bird-platform/internal/model"
	"github.com/jeongphys/g-bird-platform/internal/shop"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	membersHandler := &MembersHandler{DB: db}
	inventoryHandler := &InventoryHandler{DB: db, Selector: shop.NewSelector(shop.DefaultSelectionLimit)}
	ordersHandler := &OrdersHandler{DB: db}
	noticesHandler := &NoticesHandler{DB: db}
	albumsHandler := &AlbumsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Members (admin only).
	mux.Handle("GET /api/members", authMW(requireAdmin(http.HandlerFunc(membersHandler.List))))
	mux.Handle("POST /api/members", authMW(requireAdmin(http.HandlerFunc(membersHandler.Create))))
	mux.Handle("GET /api/members/{id}", authMW(requireAdmin(http.HandlerFunc(membersHandler.Get))))
	mux.Handle("PUT /api/members/{id}", authMW(requireAdmin(http.HandlerFunc(membersHandler.Update))))
	mux.Handle("PUT /api/members/{id}/password", authMW(requireAdmin(http.HandlerFunc(membersHandler.ResetPassword))))
	mux.Handle("DELETE /api/members/{id}", authMW(requireAdmin(http.HandlerFunc(membersHandler.Delete))))

	// Inventory: read and selection (all members), seed/reset (admin).
	mux.Handle("GET /api/inventory", authMW(http.HandlerFunc(inventoryHandler.List)))
	mux.Handle("GET /api/inventory/summary", authMW(http.HandlerFunc(inventoryHandler.Summary)))
	mux.Handle("POST /api/inventory/seed", authMW(requireAdmin(http.HandlerFunc(inventoryHandler.Seed))))
	mux.Handle("POST /api/inventory/reset", authMW(requireAdmin(http.HandlerFunc(inventoryHandler.Reset))))
	mux.Handle("POST /api/selection/click", authMW(http.HandlerFunc(inventoryHandler.Click)))

	// Orders: create and view own (all members), approve/reject/list (admin).
	mux.Handle("POST /api/orders", authMW(http.HandlerFunc(ordersHandler.Create)))
	mux.Handle("GET /api/orders", authMW(requireAdmin(http.HandlerFunc(ordersHandler.List))))
	mux.Handle("GET /api/orders/mine", authMW(http.HandlerFunc(ordersHandler.ListMine)))
	mux.Handle("GET /api/orders/{id}", authMW(http.HandlerFunc(ordersHandler.Get)))
	mux.Handle("POST /api/orders/{id}/approve", authMW(requireAdmin(http.HandlerFunc(ordersHandler.Approve))))
	mux.Handle("POST /api/orders/{id}/reject", authMW(requireAdmin(http.HandlerFunc(ordersHandler.Reject))))

	// Notices: read (all members), write (admin).
	mux.Handle("GET /api/notices", authMW(http.HandlerFunc(noticesHandler.List)))
	mux.Handle("GET /api/notices/{id}", authMW(http.HandlerFunc(noticesHandler.Get)))
	mux.Handle("POST /api/notices", authMW(requireAdmin(http.HandlerFunc(noticesHandler.Create))))
	mux.Handle("PUT /api/notices/{id}", authMW(requireAdmin(http.HandlerFunc(noticesHandler.Update))))
	mux.Handle("DELETE /api/notices/{id}", authMW(requireAdmin(http.HandlerFunc(noticesHandler.Delete))))

	// Albums (all members).
	mux.Handle("GET /api/albums", authMW(http.HandlerFunc(albumsHandler.List)))
	mux.Handle("POST /api/albums", authMW(http.HandlerFunc(albumsHandler.Create)))
	mux.Handle("GET /api/albums/{id}", authMW(http.HandlerFunc(albumsHandler.Get)))
	mux.Handle("POST /api/albums/{id}/photos", authMW(http.HandlerFunc(albumsHandler.UploadPhoto)))
	mux.Handle("GET /api/albums/{id}/photos/{photoId}", authMW(http.HandlerFunc(albumsHandler.GetPhoto)))

	return mux
}
