package http

import (
	"errors"
	"net/http"

	"github.com/aescanero/qaserve/internal/application/qa"
	"github.com/aescanero/qaserve/pkg/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const qaEndpoint = "/qa"

// Plain-text response bodies
const (
	msgNoAnswer       = "No valid answer found."
	msgInvalidRequest = "Invalid request body."
	msgServerError    = "There was a problem processing the request."
)

// Outcome label for requests rejected before dispatch
const outcomeMalformed = "malformed"

// InquiryRequest is the /qa request body. Pointers distinguish a missing
// field from an empty string.
type InquiryRequest struct {
	Question *string `json:"question" binding:"required"`
	Context  *string `json:"context" binding:"required"`
}

// handleHealth reports offload pool health
func (s *Server) handleHealth(c *gin.Context) {
	status := s.health.GetStatus()

	code := http.StatusOK
	state := "healthy"
	if !status.Healthy {
		code = http.StatusServiceUnavailable
		state = "unhealthy"
	}

	c.JSON(code, gin.H{
		"status":    state,
		"timestamp": status.Timestamp,
		"checks": gin.H{
			"offload_pool": status,
		},
	})
}

// handleQA answers a question against its context
func (s *Server) handleQA(c *gin.Context) {
	var req InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.rejectInquiry(c, err)
		return
	}

	inquiry := domain.Inquiry{
		Question: *req.Question,
		Context:  *req.Context,
	}
	if err := s.service.Validate(inquiry); err != nil {
		s.rejectInquiry(c, err)
		return
	}

	outcome := s.service.Answer(c.Request.Context(), inquiry)
	s.metrics.RecordRequest(qaEndpoint, string(outcome.Kind))

	switch outcome.Kind {
	case domain.OutcomeAnswered:
		s.metrics.IncCorrectRequests(qaEndpoint)
		c.String(http.StatusOK, outcome.Answer.Render())

	case domain.OutcomeNoAnswer:
		c.String(http.StatusOK, msgNoAnswer)

	default:
		s.logger.Error("question answering failed",
			zap.String("request_id", c.GetString(requestIDHeader)),
			zap.Bool("timeout", errors.Is(outcome.Err, qa.ErrInferenceTimeout)),
			zap.Error(outcome.Err))
		c.String(http.StatusInternalServerError, msgServerError)
	}
}

func (s *Server) rejectInquiry(c *gin.Context, err error) {
	s.logger.Warn("invalid request",
		zap.String("request_id", c.GetString(requestIDHeader)),
		zap.Error(err))
	s.metrics.RecordRequest(qaEndpoint, outcomeMalformed)
	c.String(http.StatusBadRequest, msgInvalidRequest)
}
