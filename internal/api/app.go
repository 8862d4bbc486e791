package api

import (
	"github.com/yourname/timebalance/internal"
	"github.com/yourname/timebalance/internal/service"
)

type App interface {
	Logger() internal.Logger
	Planner() *service.Planner
}

// Server is the App used by the HTTP server and the CLI.
type Server struct {
	logger  internal.Logger
	planner *service.Planner
}

func NewServer(logger internal.Logger, planner *service.Planner) *Server {
	return &Server{logger: logger, planner: planner}
}

func (s *Server) Logger() internal.Logger   { return s.logger }
func (s *Server) Planner() *service.Planner { return s.planner }

var _ App = (*Server)(nil)
