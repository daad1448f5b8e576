package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"dorm-backend/controllers"
	"dorm-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers onto the /api route tree. All routes
// except registration, login and the health check require a valid token;
// inventory mutations and booking review additionally require staff.
func SetupRouter(
	db *gorm.DB,
	secret string,
	ac *controllers.AuthController,
	dc *controllers.DormController,
	rc *controllers.RoomController,
	bc *controllers.BedController,
	bkc *controllers.BookingController,
	cc *controllers.ComplaintController,
	tc *controllers.TransactionController,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", ac.Register)
		auth.POST("/login", ac.Login)
		auth.GET("/me", middleware.RequireAuth(db, secret), ac.Me)
	}

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(db, secret))
	{
		dorms := authed.Group("/dorms")
		{
			dorms.GET("", dc.GetDorms)
			dorms.GET("/:id", dc.GetDormDetails)
			dorms.POST("", middleware.RequireStaff(), dc.CreateDorm)
			dorms.DELETE("/:id", middleware.RequireStaff(), dc.DeleteDorm)
		}

		rooms := authed.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/:id", rc.GetRoomDetails)
			rooms.GET("/:id/available-beds", rc.GetAvailableBeds)
			rooms.POST("", middleware.RequireStaff(), rc.CreateRoom)
			rooms.DELETE("/:id", middleware.RequireStaff(), rc.DeleteRoom)
		}

		beds := authed.Group("/beds")
		beds.Use(middleware.RequireStaff())
		{
			beds.GET("", bc.GetBeds)
			beds.POST("", bc.CreateBed)
			beds.PATCH("/:id", bc.UpdateBed)
			beds.DELETE("/:id", bc.DeleteBed)
		}

		bookings := authed.Group("/bookings")
		{
			bookings.GET("", bkc.GetBookings)
			bookings.POST("", bkc.CreateBooking)
			bookings.GET("/:id", bkc.GetBookingDetails)
			bookings.PATCH("/:id", middleware.RequireStaff(), bkc.UpdateBooking)
			bookings.DELETE("/:id", bkc.DeleteBooking)
		}

		complaints := authed.Group("/complaints")
		{
			complaints.GET("", cc.GetComplaints)
			complaints.POST("", cc.CreateComplaint)
			// static /messages segment must be registered before /:id
			complaints.PATCH("/messages/:id", cc.UpdateMessage)
			complaints.DELETE("/messages/:id", cc.DeleteMessage)
			complaints.DELETE("/:id", cc.DeleteComplaint)
			complaints.GET("/:id/messages", cc.GetMessages)
			complaints.POST("/:id/messages", cc.CreateMessage)
		}

		transactions := authed.Group("/transactions")
		{
			transactions.GET("", tc.GetTransactions)
			transactions.POST("", tc.CreateTransaction)
			transactions.GET("/:id", tc.GetTransaction)
			transactions.DELETE("/:id", tc.DeleteTransaction)
			transactions.POST("/:id/pay", middleware.RequireStaff(), tc.PayTransaction)
		}

		reports := authed.Group("/reports")
		reports.Use(middleware.RequireStaff())
		{
			reports.GET("/financial", tc.FinancialReport)
		}
	}

	return r
}
