package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dailyfeed/digest"
	"dailyfeed/logger"
	"dailyfeed/types"
)

// RegisterRunRoutes registers the endpoints that trigger or preview a run.
func (s *Server) RegisterRunRoutes(r *gin.Engine) {
	g := r.Group("/api", AuthMiddleware(s.secret))
	g.POST("/run", s.handleRun)
	g.GET("/preview", s.handlePreview)
}

// handleRun performs a full cycle synchronously and mirrors its status code.
func (s *Server) handleRun(c *gin.Context) {
	if !s.mu.TryLock() {
		c.JSON(http.StatusConflict, gin.H{"error": "a run is already in progress"})
		return
	}
	defer s.mu.Unlock()

	s.metrics.RunsInFlight.Inc()
	defer s.metrics.RunsInFlight.Dec()

	start := time.Now()
	// a dropped client must not turn a half-collected run into an empty day
	resp := s.runner.Run(context.WithoutCancel(c.Request.Context()))
	elapsed := time.Since(start)
	s.metrics.ObserveRun(resp.StatusCode, elapsed)
	s.log.Info("run finished via http",
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", elapsed),
	)
	c.JSON(resp.StatusCode, resp)
}

type previewResponse struct {
	Date      string                `json:"date"`
	Subject   string                `json:"subject"`
	Empty     bool                  `json:"empty"`
	Entries   []types.FeedEntry     `json:"entries"`
	Article   *types.ArticleContent `json:"article,omitempty"`
	Summary   string                `json:"summary,omitempty"`
	SummaryOK bool                  `json:"summary_ok"`
	Text      string                `json:"text,omitempty"`
}

// handlePreview collects and renders without delivering.
func (s *Server) handlePreview(c *gin.Context) {
	if !s.mu.TryLock() {
		c.JSON(http.StatusConflict, gin.H{"error": "a run is already in progress"})
		return
	}
	defer s.mu.Unlock()

	report, err := s.runner.Prepare(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		s.log.Error("preview failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.metrics.ObservePreview(len(report.Entries), report.Article != nil)

	out := previewResponse{
		Date:    digest.FormatDate(report.Date),
		Subject: report.Subject(),
		Empty:   report.Empty,
		Entries: report.Entries,
		Article: report.Article,
	}
	if out.Entries == nil {
		out.Entries = []types.FeedEntry{}
	}
	if !report.Empty {
		out.Summary = report.Summary.String()
		out.SummaryOK = report.Summary.OK()
		out.Text = report.Digest.Text
	}
	c.JSON(http.StatusOK, out)
}
