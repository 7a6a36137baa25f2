package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherreport.app/config"
	"weatherreport.app/models"
	apperrors "weatherreport.app/pkg/errors"
	"weatherreport.app/service"
)

const defaultReportListLimit = 20

// Server represents the HTTP server and API handler
type Server struct {
	router        *gin.Engine
	config        *config.Config
	reportService service.ReportServiceInterface
	emailGateway  service.DeliveryGateway
}

// NewServer creates and configures a new HTTP server
func NewServer(
	cfg *config.Config,
	reportService service.ReportServiceInterface,
	emailGateway service.DeliveryGateway,
) *Server {
	router := gin.Default()

	server := &Server{
		router:        router,
		config:        cfg,
		reportService: reportService,
		emailGateway:  emailGateway,
	}

	server.setupTemplates()
	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.indexPage)
	s.router.POST("/search", s.searchPage)
	s.router.POST("/send-email", s.sendEmail)

	api := s.router.Group("/api")
	{
		api.GET("/weather/:location", s.getWeatherReport)
		api.GET("/reports", s.listReports)
	}

	s.router.GET("/health", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func (s *Server) indexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"Error": "", "Location": ""})
}

func (s *Server) searchPage(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "index.html", gin.H{
			"Error":    "invalid request format",
			"Location": "",
		})
		return
	}

	slog.Debug("generating report for web search", "location", req.Location)

	response, err := s.reportService.GenerateReport(c.Request.Context(), req.Location)
	if err != nil {
		slog.Error("report generation failed", "location", req.Location, "error", err)
		status, message := errorStatus(err)
		c.HTML(status, "index.html", gin.H{
			"Error":    message,
			"Location": req.Location,
		})
		return
	}

	c.HTML(http.StatusOK, "report.html", gin.H{
		"Location": response.Weather.Location.DisplayName(),
		"Current":  response.Weather.Current,
		"Forecast": response.Weather.Forecast,
		"Report":   response.Report,
	})
}

func (s *Server) sendEmail(c *gin.Context) {
	var req models.SendEmailRequest
	if err := c.ShouldBind(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("a valid email and location are required"))
		return
	}

	slog.Debug("generating report for email delivery", "location", req.Location, "to", req.Email)

	response, err := s.reportService.GenerateReport(c.Request.Context(), req.Location)
	if err != nil {
		slog.Error("report generation failed", "location", req.Location, "error", err)
		s.handleError(c, err)
		return
	}

	// Delivery outcome is part of the payload, not the status code
	if !s.emailGateway.Deliver(response.Report, response.Weather, req.Email) {
		c.JSON(http.StatusOK, models.DeliveryResponse{
			Success: false,
			Message: "Failed to deliver the report email",
		})
		return
	}

	c.JSON(http.StatusOK, models.DeliveryResponse{
		Success: true,
		Message: fmt.Sprintf("Report for %s sent to %s", response.Weather.Location.DisplayName(), req.Email),
	})
}

func (s *Server) getWeatherReport(c *gin.Context) {
	location := c.Param("location")

	response, err := s.reportService.GenerateReport(c.Request.Context(), location)
	if err != nil {
		slog.Error("report generation failed", "location", location, "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) listReports(c *gin.Context) {
	limit := defaultReportListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.handleError(c, apperrors.NewValidationError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	records, err := s.reportService.ListRecentReports(limit)
	if err != nil {
		s.handleError(c, err)
		return
	}

	if records == nil {
		records = []models.ReportRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"reports": records})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleError maps application errors to HTTP responses
func (s *Server) handleError(c *gin.Context, err error) {
	status, message := errorStatus(err)
	c.JSON(status, models.ErrorResponse{Error: message})
}

func errorStatus(err error) (int, string) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, "Internal server error"
	}

	switch appErr.Type {
	case apperrors.ValidationError:
		return http.StatusBadRequest, appErr.Message
	case apperrors.NotFoundError:
		return http.StatusNotFound, appErr.Message
	case apperrors.ExternalAPIError, apperrors.GenerationError:
		return http.StatusServiceUnavailable, "External service unavailable"
	case apperrors.EmailError:
		return http.StatusServiceUnavailable, "Unable to send email"
	case apperrors.DatabaseError:
		return http.StatusInternalServerError, "Internal server error"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
