package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wizerservices/tripz-api/internal/models"
	"github.com/wizerservices/tripz-api/internal/service"
)

// RecommendationHandler is the handler for the travel recommendation routes.
type RecommendationHandler struct {
	Service *service.RecommendationService
}

// NewRecommendationHandler is the constructor function for initializing a new RecommendationHandler.
func NewRecommendationHandler(recommendationService *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{Service: recommendationService}
}

// GetTopic returns the handler serving one topic's recommendation list for
// the destination_city query parameter.
func (h *RecommendationHandler) GetTopic(topic service.Topic) gin.HandlerFunc {
	return func(c *gin.Context) {
		destination, err := requiredParam(c, "destination_city")
		if err != nil {
			badRequest(c, err)
			return
		}

		list, err := h.Service.Recommend(c.Request.Context(), topic.Name, destination)
		if err != nil {
			respondError(c, topic.Name, err)
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

// GetTripPlan returns a budget trip plan. It never consults a search provider.
func (h *RecommendationHandler) GetTripPlan(c *gin.Context) {
	req, err := bindTripRequest(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	plan, err := h.Service.PlanTrip(c.Request.Context(), req)
	if err != nil {
		respondError(c, "itinerary", err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func bindTripRequest(c *gin.Context) (models.TripRequest, error) {
	var req models.TripRequest
	var err error

	if req.FromCity, err = requiredParam(c, "from_city"); err != nil {
		return req, err
	}
	if req.DestinationCity, err = requiredParam(c, "destination_city"); err != nil {
		return req, err
	}
	if req.NumDays, err = parseIntParam(c, "num_days"); err != nil {
		return req, err
	}
	if req.Interests, err = requiredParam(c, "interests"); err != nil {
		return req, err
	}
	if req.MaxBudget, err = parseIntParam(c, "max_budget"); err != nil {
		return req, err
	}

	return req, nil
}
