package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roach88/qiyaas/internal/puzzle"
	"github.com/roach88/qiyaas/internal/store"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error              string   `json:"error"`
	AvailableEndpoints []string `json:"available_endpoints,omitempty"`
}

// StatsResponse is the body of GET /stats.
type StatsResponse struct {
	TotalUsedWords int    `json:"totalUsedWords"`
	LastUpdate     string `json:"lastUpdate"`
}

func (s *Server) getCurrent(c *gin.Context) {
	p, err := s.reader.LoadCurrentPuzzle(c.Request.Context())
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No puzzle available"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	setCache(c, fmt.Sprintf("public, max-age=%d, s-maxage=%d", seconds(s.cfg.CurrentTTL), seconds(s.cfg.CurrentTTL)), s.cfg.CurrentTTL)
	c.JSON(http.StatusOK, p)
}

func (s *Server) getByDate(c *gin.Context) {
	date := c.Param("date")
	if !puzzle.ValidDate(date) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	p, ok := s.cachedPuzzle(date)
	if !ok {
		var err error
		p, err = s.reader.LoadPuzzle(c.Request.Context(), date)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("No puzzle found for %s", date)})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		s.remember(date, p)
	}
	setCache(c, fmt.Sprintf("public, max-age=%d, immutable", seconds(s.cfg.HistoricalTTL)), s.cfg.HistoricalTTL)
	c.JSON(http.StatusOK, p)
}

func (s *Server) getStats(c *gin.Context) {
	used, err := s.reader.LoadUsedWords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, StatsResponse{
		TotalUsedWords: used.Len(),
		LastUpdate:     s.cfg.Now().UTC().Format(time.RFC3339),
	})
}

func preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:              "Not Found",
		AvailableEndpoints: Endpoints,
	})
}

// setCache sets the browser policy and the plain max-age for CDNs.
func setCache(c *gin.Context, policy string, ttl time.Duration) {
	c.Header("Cache-Control", policy)
	c.Header("CDN-Cache-Control", fmt.Sprintf("public, max-age=%d", seconds(ttl)))
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}
