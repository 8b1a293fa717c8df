package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/matches:refreshAll", handler.RefreshAllMatches)
	mux.HandleFunc("GET /v1/matches/{sport}", handler.GetMatchesBySport)
	mux.HandleFunc("GET /v1/matches/{matchID}/roster", handler.GetMatchRoster)
}

func registerFavoriteRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/favorites", handler.ListFavorites)
	mux.HandleFunc("POST /v1/favorites", handler.AddFavorite)
	mux.HandleFunc("DELETE /v1/favorites/{favoriteID}", handler.RemoveFavorite)
	mux.HandleFunc("GET /v1/favorites/matches", handler.ListFavoriteMatches)
}

func registerFinanceRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/finance/watchlist", handler.GetWatchlist)
	mux.HandleFunc("POST /v1/finance/watchlist", handler.AddWatchItem)
	mux.HandleFunc("POST /v1/finance/watchlist:refresh", handler.RefreshWatchlist)
	mux.HandleFunc("DELETE /v1/finance/watchlist/{watchID}", handler.RemoveWatchItem)
	mux.HandleFunc("GET /v1/finance/search", handler.SearchInstruments)
}

func registerSettingsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/settings", handler.GetSettings)
	mux.HandleFunc("PUT /v1/settings", handler.UpdateSettings)
}
