// README: API gateway; registers HTTP routes and delegates to the dispatcher.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabdispatch/internal/http/handlers"
	"cabdispatch/internal/http/middleware"
	"cabdispatch/internal/service"
)

func NewRouter(d *service.Dispatcher) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")

	network := handlers.NewNetworkHandler(d)
	api.GET("/locations", network.ListLocations)
	api.POST("/locations", network.CreateLocation)
	api.PATCH("/locations/:name", network.RenameLocation)
	api.DELETE("/locations/:name", network.DeleteLocation)
	api.GET("/roads", network.ListRoads)
	api.POST("/roads", network.CreateRoad)
	api.GET("/routes", network.Route)

	drivers := handlers.NewDriverHandler(d)
	api.POST("/drivers", drivers.Onboard)
	api.DELETE("/drivers/:id", drivers.Remove)
	api.GET("/drivers/:id/summary", drivers.Summary)
	api.POST("/drivers/:id/rest", drivers.Rest)
	api.DELETE("/drivers/:id/rest", drivers.ClearRest)
	api.DELETE("/rest", drivers.ClearAllRest)

	vehicles := handlers.NewVehicleHandler(d)
	api.POST("/vehicles", vehicles.Register)
	api.PUT("/vehicles/:id/location", vehicles.Relocate)
	api.DELETE("/vehicles/:id", vehicles.Remove)
	api.GET("/locations/:name/vehicles", vehicles.ListAt)
	api.POST("/locations/:name/rebalance", vehicles.Rebalance)
	api.POST("/rebalance", vehicles.RebalanceAll)

	rides := handlers.NewRideHandler(d)
	api.GET("/candidates", rides.Candidates)
	api.POST("/rides", rides.Request)
	api.POST("/rides/commit", rides.Commit)
	api.GET("/rides", rides.List)
	api.GET("/customers/:id/rides", rides.CustomerHistory)
	api.GET("/fleet", rides.Fleet)
	api.GET("/commission", rides.Commission)

	return r
}
