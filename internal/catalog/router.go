package catalog

import (
	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes registers cinema, film and customer routes. Writes go
// through staff.
func SetupCatalogRoutes(router *gin.RouterGroup, controller Controller, staff gin.HandlerFunc) {
	cinemas := router.Group("/cinemas")
	{
		cinemas.GET("", controller.ListCinemas)   // GET /api/v1/cinemas
		cinemas.GET("/:id", controller.GetCinema) // GET /api/v1/cinemas/:id

		cinemas.POST("", staff, controller.CreateCinema)       // POST /api/v1/cinemas
		cinemas.PUT("/:id", staff, controller.UpdateCinema)    // PUT /api/v1/cinemas/:id
		cinemas.DELETE("/:id", staff, controller.DeleteCinema) // DELETE /api/v1/cinemas/:id
	}

	films := router.Group("/films")
	{
		films.GET("", controller.ListFilms)
		films.GET("/active", controller.ListActiveFilms) // films whose run has not ended
		films.GET("/:id", controller.GetFilm)

		films.POST("", staff, controller.CreateFilm)
		films.PUT("/:id", staff, controller.UpdateFilm)
		films.DELETE("/:id", staff, controller.DeleteFilm)
	}

	customers := router.Group("/customers")
	customers.Use(staff)
	{
		customers.GET("", controller.ListCustomers)
		customers.POST("", controller.CreateCustomer)
		customers.GET("/:id", controller.GetCustomer)
	}
}
