package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/thaodangspace/crashlogs/internal/report"
)

// BaseReply is the status envelope for non-data responses.
type BaseReply struct {
	Status string `json:"status"`
}

// Server exposes a scanned set of crash records as a read-only JSON API.
type Server struct {
	engine  *gin.Engine
	records []report.Record
}

// New builds a server over the given records. The records are a snapshot of
// one scan; the handlers never mutate them.
func New(records []report.Record, verbose bool) *Server {
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine:  gin.Default(),
		records: records,
	}
	s.applyRoutes()
	return s
}

func (s *Server) applyRoutes() {
	s.engine.GET("/health", s.Health())
	s.engine.GET("/crashes", s.GetCrashes())
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	log.WithField("address", addr).WithField("crashes", len(s.records)).Info("Run on")
	return s.engine.Run(addr)
}

// Engine returns the underlying gin engine, for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Health reports that the server is up.
func (s *Server) Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, &BaseReply{"success"})
	}
}

// GetCrashes returns the scanned records as sparse field maps, optionally
// filtered by the uid and type query parameters.
func (s *Server) GetCrashes() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.Query("uid")
		category := c.Query("type")

		out := make([]map[string]string, 0, len(s.records))
		for _, rec := range s.records {
			if uid != "" && rec.UID != uid {
				continue
			}
			if category != "" && rec.Type != category {
				continue
			}
			out = append(out, rec.Fields())
		}

		c.JSON(http.StatusOK, out)
	}
}
