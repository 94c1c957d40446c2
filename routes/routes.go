package routes

import (
	"cadastra/cedule"
	"cadastra/dossiers"
	"cadastra/live"
	"cadastra/middleware"
	"cadastra/ratelim"
	"cadastra/resources"

	"github.com/julienschmidt/httprouter"
)

func AddCeduleRoutes(router *httprouter.Router) {
	router.GET("/api/cedule/pool", middleware.Authenticate(cedule.GetPool))
	router.GET("/api/cedule/days/:day", middleware.Authenticate(cedule.GetBoardDay))
	router.GET("/api/cedule/days/:day/teams/:teamid/timing", middleware.Authenticate(cedule.TimingHandler))

	router.POST("/api/cedule/days/:day/teams", ratelim.RateLimit(middleware.Authenticate(cedule.CreateTeamHandler)))
	router.PUT("/api/cedule/days/:day/teams/:teamid/roster", ratelim.RateLimit(middleware.Authenticate(cedule.UpdateRosterHandler)))
	router.DELETE("/api/cedule/days/:day/teams/:teamid", ratelim.RateLimit(middleware.Authenticate(cedule.RemoveTeamHandler)))
	router.POST("/api/cedule/days/:day/teams/:teamid/copy", ratelim.RateLimit(middleware.Authenticate(cedule.CopyTeamHandler)))

	router.POST("/api/cedule/moves/resource", ratelim.RateLimit(middleware.Authenticate(cedule.MoveResourceHandler)))
	router.POST("/api/cedule/moves/item", ratelim.RateLimit(middleware.Authenticate(cedule.MoveItemHandler)))
	router.POST("/api/cedule/moves/unschedule", ratelim.RateLimit(middleware.Authenticate(cedule.UnscheduleHandler)))
	router.POST("/api/cedule/verdict", ratelim.RateLimit(middleware.Authenticate(cedule.VerdictHandler)))
}

func AddDossierRoutes(router *httprouter.Router) {
	router.GET("/api/dossiers", middleware.Authenticate(dossiers.GetDossiers))
	router.GET("/api/dossiers/:id", middleware.Authenticate(dossiers.GetDossier))
	router.PUT("/api/dossiers/:id/mandats", ratelim.RateLimit(middleware.Authenticate(dossiers.UpdateMandates)))
}

func AddResourceRoutes(router *httprouter.Router) {
	router.GET("/api/resources/techniciens", middleware.Authenticate(resources.GetTechnicians))
	router.GET("/api/resources/vehicules", middleware.Authenticate(resources.GetVehicles))
	router.GET("/api/resources/equipements", middleware.Authenticate(resources.GetEquipment))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/ws/cedule/:day", middleware.Authenticate(live.ServeWS(hub)))
}
