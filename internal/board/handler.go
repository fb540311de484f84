package board

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	v1 "github.com/tempguess/tempguess/internal/api/v1"
	"github.com/tempguess/tempguess/internal/core/calendar"
	httperr "github.com/tempguess/tempguess/internal/core/errors"
)

const (
	msgReadBodyFailed    = "Failed to read request body"
	msgInvalidJSON       = "Invalid JSON body"
	msgCitiesUnavailable = "Cities are not loaded"
)

// boardError carries the HTTP error shape from a helper back to the handler.
type boardError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *boardError) Error() string {
	return e.message
}

// RegisterRoutes registers the board routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/cities", s.HandleListCities)
	r.GET("/v1/board", s.HandleView)
	r.PUT("/v1/board/target", s.HandleSetTarget)
	r.POST("/v1/board/expand", s.HandleExpand)
	r.POST("/v1/board/refresh", s.HandleRefresh)
	r.POST("/v1/forecasts", s.HandleSaveForecasts)
}

// HandleListCities handles GET /v1/cities.
func (s *Service) HandleListCities(c *gin.Context) {
	cities, loaded := s.Cities()
	if !loaded {
		writeError(c, &boardError{
			statusCode: http.StatusServiceUnavailable,
			errorType:  httperr.HttpCitiesUnavailableError,
			message:    msgCitiesUnavailable,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// HandleView handles GET /v1/board.
func (s *Service) HandleView(c *gin.Context) {
	c.JSON(http.StatusOK, s.View())
}

// HandleSetTarget handles PUT /v1/board/target.
func (s *Service) HandleSetTarget(c *gin.Context) {
	var req v1.SetTargetRequest
	if berr := s.bindJSON(c, &req); berr != nil {
		writeError(c, berr)
		return
	}

	target, err := calendar.ParseTarget(req.Target)
	if err != nil {
		writeError(c, &boardError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidTargetError,
			message:    err.Error(),
		})
		return
	}

	s.SetTarget(target)
	c.Status(http.StatusNoContent)
}

// HandleExpand handles POST /v1/board/expand.
func (s *Service) HandleExpand(c *gin.Context) {
	s.Expand()
	c.Status(http.StatusNoContent)
}

// HandleRefresh handles POST /v1/board/refresh.
func (s *Service) HandleRefresh(c *gin.Context) {
	s.RequestRebuild()
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// HandleSaveForecasts handles POST /v1/forecasts.
func (s *Service) HandleSaveForecasts(c *gin.Context) {
	var req v1.SaveForecastsRequest
	if berr := s.bindJSON(c, &req); berr != nil {
		writeError(c, berr)
		return
	}

	result, err := s.Save(c.Request.Context(), req.Entries)
	if err != nil {
		writeError(c, saveError(err))
		return
	}
	c.JSON(http.StatusOK, result)
}

func saveError(err error) *boardError {
	switch {
	case errors.Is(err, ErrNoEntries):
		return &boardError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpNoEntriesError,
			message:    msgNoEntries,
		}
	case errors.Is(err, ErrInvalidSubmission):
		return &boardError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidSubmissionError,
			message:    err.Error(),
		}
	case errors.Is(err, ErrSave):
		return &boardError{
			statusCode: http.StatusBadGateway,
			errorType:  httperr.HttpSaveFailedError,
			message:    "Save failed",
			details:    err.Error(),
		}
	}
	return &boardError{
		statusCode: http.StatusInternalServerError,
		errorType:  httperr.HttpInternalError,
		message:    err.Error(),
	}
}

// bindJSON reads at most maxBody bytes and decodes them into dst.
func (s *Service) bindJSON(c *gin.Context, dst interface{}) *boardError {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, s.maxBody+1))
	if err != nil {
		slog.Error("[Board] Failed to read request body", "error", err)
		return &boardError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}
	if int64(len(body)) > s.maxBody {
		slog.Warn("[Board] Request body exceeds maximum size", "size", len(body), "max", s.maxBody)
		return &boardError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": s.maxBody / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err := c.ShouldBindJSON(dst); err != nil {
		slog.Warn("[Board] Invalid JSON body received", "error", err, "payload_size", len(body))
		return &boardError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}
	return nil
}

// writeError serializes a boardError as the JSON HTTP response.
func writeError(c *gin.Context, err *boardError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
