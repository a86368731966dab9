package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"fleetconsole/internal/alerts"
	"fleetconsole/internal/backend"
	"fleetconsole/internal/chat"
	"fleetconsole/internal/classify"
	"fleetconsole/internal/config"
	"fleetconsole/internal/handlers"
	"fleetconsole/internal/middleware"
	"fleetconsole/internal/orders"
	"fleetconsole/internal/store"
	"fleetconsole/internal/views"
	"fleetconsole/internal/websocket"
	"fleetconsole/pkg/logger"
	"fleetconsole/pkg/utils"
)

// kindInvalidator adapts the store for the write paths, which only know the
// entity kind they dirtied.
type kindInvalidator struct {
	cache *store.Store
}

func (k kindInvalidator) InvalidateOrders() {
	k.cache.InvalidateKind(store.KindOrders, store.KindDriverOrders, store.KindOrderStats)
}

func (k kindInvalidator) InvalidateAlerts() {
	k.cache.InvalidateKind(store.KindAlerts)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "text").WithError(err).Fatal("configuration invalid")
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	classify.SetLogger(log)
	middleware.SetLogger(log)

	log.WithField("backend", cfg.BackendBaseURL).Info("fleet console gateway starting")

	api := backend.New(cfg.BackendBaseURL, cfg.BackendAPIToken, cfg.BackendTimeout, log)
	cache := store.New(log)
	invalidate := kindInvalidator{cache: cache}

	lifecycle := alerts.NewManager(api, invalidate, log)
	viewLayer := views.New(api, cache, lifecycle, log)
	registry := views.NewRegistry(viewLayer, log)
	actions := orders.NewActions(api, invalidate, log)
	sessions := chat.NewRegistry()

	// The hub re-broadcasts every applied cache update; polling stands in for
	// a real push feed, so connected consoles see the same events either way.
	wsHub := websocket.NewHub(log)
	wsHub.SetPresenceHooks(registry.Mount, registry.Unmount)
	cache.AddApplyHook(func(key string, kind store.Kind, snap store.Snapshot) {
		if snap.Err != nil {
			return
		}
		switch kind {
		case store.KindDrivers, store.KindFleetSummary:
			wsHub.BroadcastToRole("manager", "driver_update", snap.Value)
		case store.KindOrders, store.KindOrderStats:
			wsHub.BroadcastToRole("manager", "order_update", snap.Value)
		case store.KindDriverOrders:
			wsHub.BroadcastToRole("manager", "order_update", snap.Value)
			if id := store.KeyParams(key).Get("driver_id"); id != "" && wsHub.IsUserConnected(id) {
				wsHub.BroadcastToUser(id, "order_update", snap.Value)
			}
		case store.KindAlerts:
			wsHub.BroadcastToRole("manager", "safety_alert", snap.Value)
		}
	})
	go wsHub.Run()

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/health/connections", func(w http.ResponseWriter, r *http.Request) {
		utils.Success(w, map[string]interface{}{
			"connected_clients": wsHub.GetClientCount(),
			"polling":           registry.Mounted(),
		})
	})

	// WebSocket endpoint (authentication handled in handler via query param)
	r.Get("/ws", websocket.HandleWebSocket(wsHub))

	r.Route("/api", func(r chi.Router) {
		// Driver app endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(middleware.RequireRole("driver"))

			r.Get("/driver/orders", handlers.GetDriverOrders(viewLayer))
			r.Post("/driver/orders/{id}/pickup", handlers.PickupOrder(viewLayer, actions))
			r.Post("/driver/orders/{id}/deliver", handlers.DeliverOrder(viewLayer, actions))
		})

		// Console endpoints (require authentication + manager role)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)
			r.Use(middleware.RequireRole("manager"))

			r.Get("/fleet/summary", handlers.GetFleetSummary(viewLayer))
			r.Get("/fleet/orders/stats", handlers.GetOrderStats(viewLayer))

			r.Get("/drivers", handlers.ListDrivers(viewLayer))
			r.Get("/drivers/{id}/performance", handlers.GetDriverPerformance(viewLayer))

			r.Get("/alerts", handlers.ListAlerts(viewLayer))
			r.Post("/alerts/{id}/acknowledge", handlers.AcknowledgeAlert(viewLayer))
			r.Post("/alerts/{id}/resolve", handlers.ResolveAlert(viewLayer))

			r.Get("/chat/{driverID}", handlers.OpenChat(viewLayer, sessions))
			r.Post("/chat/{driverID}", handlers.PostChatMessage(sessions))

			r.Get("/orders", handlers.GetOrders(viewLayer))
			r.Post("/orders/{id}/assign", handlers.AssignOrder(actions))
			r.Post("/orders/{id}/auto-assign", handlers.AutoAssignOrder(actions))
		})
	})

	log.WithField("port", cfg.Port).Info("server listening")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
