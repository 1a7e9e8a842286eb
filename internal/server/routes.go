package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/synergysphere/sphere/internal/api/v1"
	"github.com/synergysphere/sphere/internal/api/ws"
)

func registerAuthRoutes(api huma.API, authSvc v1.AuthService) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerAPIRoutes(api huma.API, boards v1.BoardService) {
	v1.RegisterBoardRoutes(api, boards)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/board/{boardID}", hub.ServeBoard)
}
