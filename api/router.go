package api

import (
	"github.com/Domenick1991/travelbook/config"
	"github.com/Domenick1991/travelbook/internal/service/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Flights  *FlightHandler
	Hotels   *HotelHandler
	Places   *PlaceHandler
	Airlines *AirlineHandler
	Users    *UserHandler
	Bookings *BookingHandler
}

// NewRouter builds the gin engine: CORS, a public /api group for reads and
// authentication, and a token-guarded /api group for everything else.
func NewRouter(cfg config.HTTPConfig, authSvc auth.AuthUseCase, h Handlers) *gin.Engine {
	router := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	public := router.Group("/api")
	private := router.Group("/api")
	private.Use(AuthMiddleware(authSvc))

	h.Auth.Register(public)
	h.Flights.Register(public, private)
	h.Hotels.Register(public, private)
	h.Places.Register(public, private)
	h.Airlines.Register(public, private)
	h.Users.Register(private)
	h.Bookings.Register(private)

	return router
}
