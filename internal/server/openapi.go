package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "PanoQuest API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Game session and scoring backend for the PanoQuest geo-guessing game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/games
	startGame, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	startGame.SetSummary("Start a game")
	startGame.SetDescription("Deals five random distinct locations into a new game and returns the first round. Player identity comes from the optional X-Player-ID header; anonymous play is allowed.")
	startGame.AddRespStructure(StartGameResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	startGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(startGame)

	// GET /api/games/{gameID}
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}")
	getGame.SetSummary("Get game progress")
	getGame.SetDescription("Returns game status and per-round progress. Never includes location coordinates.")
	getGame.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGame)

	// GET /api/games/{gameID}/rounds/{roundIndex}
	getRound, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/rounds/{roundIndex}")
	getRound.SetSummary("Get a round")
	getRound.SetDescription("Returns the round's display image only. The true coordinates are withheld until the round is guessed.")
	getRound.AddRespStructure(RoundView{}, openapi.WithHTTPStatus(http.StatusOK))
	getRound.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getRound)

	// POST /api/games/{gameID}/rounds/{roundIndex}/guess
	submitGuess, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/rounds/{roundIndex}/guess")
	submitGuess.SetSummary("Submit a guess")
	submitGuess.SetDescription("Scores the round's single guess and reveals the true coordinates. A second guess on the same round is rejected.")
	submitGuess.AddReqStructure(GuessRequest{})
	submitGuess.AddRespStructure(GuessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	submitGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	submitGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(submitGuess)

	// POST /api/games/{gameID}/finish
	finishGame, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/finish")
	finishGame.SetSummary("Finish a game")
	finishGame.SetDescription("Totals all round scores, stamps the finish time, and returns the full breakdown. Idempotent.")
	finishGame.AddRespStructure(FinishGameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	finishGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	finishGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(finishGame)

	// GET /api/leaderboard
	getBoard, _ := r.NewOperationContext(http.MethodGet, "/api/leaderboard")
	getBoard.SetSummary("Leaderboard")
	getBoard.SetDescription("Returns the top finished games by total score.")
	getBoard.AddRespStructure(LeaderboardResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getBoard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getBoard)

	// GET /api/leaderboard/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/leaderboard/events")
	getEvents.SetSummary("Live results stream")
	getEvents.SetDescription("Server-Sent Events stream announcing finished games.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /ws/live
	getWSLive, _ := r.NewOperationContext(http.MethodGet, "/ws/live")
	getWSLive.SetSummary("Live results websocket")
	getWSLive.SetDescription("Upgrades to a websocket carrying the same feed as the SSE endpoint.")
	getWSLive.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWSLive)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with email and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the currently authenticated admin. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/admin/locations
	listLocations, _ := r.NewOperationContext(http.MethodGet, "/api/admin/locations")
	listLocations.SetSummary("List locations")
	listLocations.SetDescription("Returns the full location pool with coordinates. Requires admin_session cookie.")
	listLocations.AddRespStructure([]AdminLocation{}, openapi.WithHTTPStatus(http.StatusOK))
	listLocations.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listLocations)

	// POST /api/admin/locations
	createLocation, _ := r.NewOperationContext(http.MethodPost, "/api/admin/locations")
	createLocation.SetSummary("Create location")
	createLocation.SetDescription("Adds a location to the pool. Requires admin_session cookie.")
	createLocation.AddReqStructure(AdminLocationRequest{})
	createLocation.AddRespStructure(AdminLocation{}, openapi.WithHTTPStatus(http.StatusCreated))
	createLocation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createLocation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createLocation)

	// GET /api/admin/locations/{id}
	getLocation, _ := r.NewOperationContext(http.MethodGet, "/api/admin/locations/{id}")
	getLocation.SetSummary("Get location")
	getLocation.SetDescription("Returns one pool entry. Requires admin_session cookie.")
	getLocation.AddRespStructure(AdminLocation{}, openapi.WithHTTPStatus(http.StatusOK))
	getLocation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getLocation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getLocation)

	// PUT /api/admin/locations/{id}
	updateLocation, _ := r.NewOperationContext(http.MethodPut, "/api/admin/locations/{id}")
	updateLocation.SetSummary("Update location")
	updateLocation.SetDescription("Updates a pool entry. Requires admin_session cookie.")
	updateLocation.AddReqStructure(AdminLocationRequest{})
	updateLocation.AddRespStructure(AdminLocation{}, openapi.WithHTTPStatus(http.StatusOK))
	updateLocation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	updateLocation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	updateLocation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(updateLocation)

	// DELETE /api/admin/locations/{id}
	deleteLocation, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/locations/{id}")
	deleteLocation.SetSummary("Delete location")
	deleteLocation.SetDescription("Removes a pool entry. Blocked while game rounds reference it. Requires admin_session cookie.")
	deleteLocation.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteLocation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	deleteLocation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteLocation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteLocation)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(data)
	}
}
