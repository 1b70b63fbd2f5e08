package routes

import (
	"net/http"

	"medibook/admin"
	"medibook/appointments"
	"medibook/auth"
	"medibook/config"
	"medibook/doctors"
	"medibook/middleware"
	"medibook/profile"
	"medibook/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir(config.UploadDir))
}

func AddUserRoutes(router *httprouter.Router) {
	router.POST("/user/register", ratelim.RateLimit(auth.Register))
	router.POST("/user/login", ratelim.RateLimit(auth.Login))
	router.POST("/user/logout", middleware.Authenticate(auth.Logout))

	router.GET("/user/get-profile", middleware.Authenticate(profile.GetProfile))
	router.POST("/user/update-profile", middleware.Authenticate(profile.UpdateProfile))

	router.POST("/user/book-appointment", ratelim.RateLimit(middleware.Authenticate(appointments.Book)))
	router.GET("/user/appointment", middleware.Authenticate(appointments.List))
	router.GET("/user/appointment/:appointmentId/receipt", middleware.Authenticate(appointments.Receipt))
	router.POST("/user/cancel-appointment", middleware.Authenticate(appointments.Cancel))
	router.POST("/user/pay-appointment", middleware.Authenticate(appointments.Pay))
}

func AddDoctorRoutes(router *httprouter.Router) {
	router.GET("/doctors/list", doctors.List)
	router.POST("/doctors/login", ratelim.RateLimit(doctors.Login))
	router.POST("/doctors/change-availability", middleware.Authenticate(doctors.ChangeAvailability))
	router.POST("/doctors/complete-appointment", middleware.RequireRole("doctor", doctors.CompleteAppointment))

	// live slot availability for booking pages
	router.GET("/ws/doctor/:doctorId", appointments.SlotUpdatesWS)
}

func AddAdminRoutes(router *httprouter.Router) {
	router.POST("/admin/login", ratelim.RateLimit(admin.Login))
	router.POST("/admin/add-doctor", middleware.RequireRole("admin", admin.AddDoctor))
	router.GET("/admin/all-doctors", middleware.RequireRole("admin", admin.AllDoctors))
	router.GET("/admin/appointments", middleware.RequireRole("admin", admin.AllAppointments))
	router.GET("/admin/dashboard-stats", middleware.RequireRole("admin", admin.DashboardStats))
}
