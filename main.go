package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"dorm-backend/config"
	"dorm-backend/controllers"
	"dorm-backend/routes"
	"dorm-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("❌ ERROR: JWT_SECRET environment variable is not set. Cannot issue tokens.")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	userService := services.NewUserService(db)
	dormService := services.NewDormService(db)
	roomService := services.NewRoomService(db)
	bedService := services.NewBedService(db)
	bookingService := services.NewBookingService(db)
	complaintService := services.NewComplaintService(db)
	transactionService := services.NewTransactionService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(userService, secret)
	dormController := controllers.NewDormController(dormService)
	roomController := controllers.NewRoomController(roomService)
	bedController := controllers.NewBedController(bedService)
	bookingController := controllers.NewBookingController(bookingService)
	complaintController := controllers.NewComplaintController(complaintService)
	transactionController := controllers.NewTransactionController(transactionService)

	router := routes.SetupRouter(
		db,
		secret,
		authController,
		dormController,
		roomController,
		bedController,
		bookingController,
		complaintController,
		transactionController,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
