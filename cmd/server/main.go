package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/OlgaOrl/massage-booking/internal/api"
	"github.com/OlgaOrl/massage-booking/internal/repository"
	"github.com/OlgaOrl/massage-booking/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	if err := repository.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	if err := repository.SeedData(db); err != nil {
		log.Fatalf("Failed to seed data: %v", err)
	}

	svc := service.NewBookingService(
		repository.NewCatalogRepository(db),
		repository.NewSlotRepository(db),
		repository.NewReservationRepository(db),
		repository.NewBookingRepository(db),
		service.NewSenderService(),
	)
	handler := api.NewBookingHandler(svc)

	cleanup := service.NewCleanupService(repository.NewCleanupRepository(db))
	c := cron.New()
	if _, err := c.AddFunc("@every 1m", func() {
		if err := cleanup.PurgeExpiredReservations(); err != nil {
			log.Printf("Error during cleanup: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule cleanup job: %v", err)
	}
	c.Start()
	log.Println("Started cleanup job for expired reservations")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Println("Shutting down gracefully...")
		c.Stop()
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
		os.Exit(0)
	}()

	r := mux.NewRouter()
	r.Use(api.RequestLogger)

	r.HandleFunc("/api/massage-types", handler.GetMassageTypes).Methods("GET")
	r.HandleFunc("/api/slots", handler.GetSlots).Methods("GET")
	r.HandleFunc("/api/reservations", handler.CreateReservation).Methods("POST")
	r.HandleFunc("/api/reservations/{id}", handler.DeleteReservation).Methods("DELETE")
	r.HandleFunc("/api/bookings", handler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings/{id}", handler.GetBooking).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, cors(r)))
}
