package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"homehub/internal/dto"
	"homehub/internal/observability/middleware"
	"homehub/internal/service"
)

const AICompletePath = "/api/v1/ai/complete"

type Services struct {
	Auth     service.AuthService
	Devices  service.DeviceService
	Sensors  service.SensorService
	Wardrobe service.WardrobeService
	Profile  service.ProfileService
}

type Options struct {
	TemplatesDir string
	StaticDir    string
	CORSOrigins  []string
	// IngestRateLimit caps public sensor posts per client IP per minute; 0 disables.
	IngestRateLimit int
	// AI handles POST /api/ai; nil leaves the route unmounted.
	AI http.Handler
	// Metrics defaults to promhttp.Handler().
	Metrics http.Handler
}

type Handler struct {
	auth     service.AuthService
	devices  service.DeviceService
	sensors  service.SensorService
	wardrobe service.WardrobeService
	profile  service.ProfileService
	pages    Pages
}

func NewRouter(svc Services, opts Options) http.Handler {
	h := &Handler{
		auth:     svc.Auth,
		devices:  svc.Devices,
		sensors:  svc.Sensors,
		wardrobe: svc.Wardrobe,
		profile:  svc.Profile,
		pages:    Pages{Dir: opts.TemplatesDir},
	}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.WithRequestAndTrace)
	r.Use(middleware.LogRequests)
	r.Use(middleware.WithMetrics)
	r.Use(chimw.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	metrics := opts.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	r.Handle("/metrics", metrics)

	if opts.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
	}

	// pages
	r.Get("/", h.pages.Handler("index.html"))
	r.Get("/signup", h.guestPage("signup.html"))
	r.Get("/login", h.guestPage("login.html"))
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
	r.Group(func(pr chi.Router) {
		pr.Use(h.RequirePage)
		pr.Get("/dashboard", h.pages.Handler("dashboard.html"))
		pr.Get("/profile", h.pages.Handler("profile.html"))
		pr.Get("/wardrobe", h.pages.Handler("wardrobe.html"))
	})

	// public bridge ingestion
	r.Group(func(pub chi.Router) {
		if opts.IngestRateLimit > 0 {
			pub.Use(httprate.Limit(opts.IngestRateLimit, time.Minute,
				httprate.WithKeyFuncs(func(r *http.Request) (string, error) { return clientIP(r), nil }),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusTooManyRequests, dto.IngestError{Error: "Too many requests"})
				}),
			))
		}
		pub.Post("/api/sensor-data/{mac_address}", h.ingestByMAC)
	})

	if opts.AI != nil {
		r.Method(http.MethodPost, "/api/ai", opts.AI)
	}

	// authenticated JSON API
	r.Group(func(api chi.Router) {
		api.Use(h.RequireUser)

		api.Get("/api/profile", h.getProfile)

		api.Get("/api/devices", h.listDevices)
		api.Post("/api/devices", h.addDevice)
		api.Route("/api/devices/{device_id}", func(dr chi.Router) {
			dr.Get("/", h.getDevice)
			dr.Delete("/", h.removeDevice)
			// device_id is the numeric devices.id on the data routes
			dr.Get("/data", h.getSensorData)
			dr.Post("/data", h.postSensorData)
		})

		api.Get("/api/wardrobe", h.listWardrobe)
		api.Post("/api/wardrobe", h.addClothing)
		api.Get("/api/wardrobe/{clothing_id}", h.getClothing)
		api.Put("/api/wardrobe/{clothing_id}", h.updateClothing)
		api.Delete("/api/wardrobe/{clothing_id}", h.removeClothing)
	})

	return r
}
