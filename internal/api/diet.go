package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/pageza/dietplan/backend/internal/logging"
	"github.com/pageza/dietplan/backend/internal/service"
	"github.com/pageza/dietplan/backend/internal/types"
)

// DietHandler handles diet plan requests
type DietHandler struct {
	dietService service.IDietPlanService
}

// NewDietHandler creates a new DietHandler instance
func NewDietHandler(dietService service.IDietPlanService) *DietHandler {
	return &DietHandler{dietService: dietService}
}

// RegisterRoutes registers the diet plan routes
func (h *DietHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/diet", h.GeneratePlan)
	router.OPTIONS("/diet", h.Preflight)
}

// Preflight answers OPTIONS /api/diet with an empty 200.
func (h *DietHandler) Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

// GeneratePlan handles POST /api/diet
func (h *DietHandler) GeneratePlan(c *gin.Context) {
	ctx := c.Request.Context()
	logger := logging.FromContext(ctx)
	logger.WithField("event", "request_received").Debug("Received a POST request to /api/diet")

	body, err := c.GetRawData()
	if err != nil {
		logger.WithError(err).Error("Failed to read request body")
		h.respondError(c, &service.ValidationError{Message: "No data provided", Cause: err})
		return
	}

	req, err := types.DecodeDietRequest(body)
	if err != nil {
		logger.WithError(err).Error("No JSON data received in the request")
		h.respondError(c, &service.ValidationError{Message: "No data provided", Cause: err})
		return
	}

	plan, err := h.dietService.Generate(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	logger.WithFields(log.Fields{
		"event":     "plan_generated",
		"diet_type": plan.DietType.Name,
		"model":     plan.Model,
	}).Info("Diet plan generated")

	c.JSON(http.StatusOK, types.DietPlanResponse{Plan: plan.Plan})
}

func (h *DietHandler) respondError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).
			WithError(err).
			WithField("event", "unexpected_error").
			Error("An error occurred while processing the diet plan request")
	}
	c.JSON(status, types.ErrorResponse{Error: message})
}
