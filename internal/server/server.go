package server

import (
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"

	"github.com/helios-hq/helios/pkg/application"
)

type HTTPServer struct {
	router *mux.Router
}

func NewHTTPServer(app application.Application) *HTTPServer {
	router := mux.NewRouter()
	router.Use(app.Middleware()...)
	for _, controller := range app.Controllers() {
		controller.Register(router)
	}
	return &HTTPServer{router: router}
}

func (s *HTTPServer) Router() *mux.Router {
	return s.router
}

func (s *HTTPServer) Handler() http.Handler {
	return gziphandler.GzipHandler(s.router)
}

func (s *HTTPServer) Start(address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
