package handlers

import (
	"net/http"

	"fixitnow/middleware"
	"fixitnow/models"
	"fixitnow/services/review"
	"fixitnow/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler exposes review submission and listing over HTTP.
type ReviewHandler struct {
	Service review.ReviewService
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

// CreateReview handles POST /api/reviews.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	rv, err := h.Service.CreateReview(middleware.ActorID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review created successfully",
		"review":  rv,
	})
}

// UpdateReview handles PUT /api/reviews/:id.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	rv, err := h.Service.UpdateReview(c.Param("id"), middleware.ActorID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review updated successfully",
		"review":  rv,
	})
}

// DeleteReview handles DELETE /api/reviews/:id.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.Service.DeleteReview(c.Param("id"), middleware.ActorID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// ListByService handles GET /api/reviews/service/:id.
func (h *ReviewHandler) ListByService(c *gin.Context) {
	page := models.PageRequest{
		Page: queryInt(c, "page", 0),
		Size: queryInt(c, "size", 20),
	}
	result, err := h.Service.ListByService(c.Param("id"), page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListByProvider handles GET /api/reviews/provider/:id.
func (h *ReviewHandler) ListByProvider(c *gin.Context) {
	page := models.PageRequest{
		Page: queryInt(c, "page", 0),
		Size: queryInt(c, "size", 20),
	}
	result, err := h.Service.ListByProvider(c.Param("id"), page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListMine handles GET /api/reviews/customer/my-reviews.
func (h *ReviewHandler) ListMine(c *gin.Context) {
	reviews, err := h.Service.ListByCustomer(middleware.ActorID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// HasReviewed handles GET /api/reviews/check/:serviceId.
func (h *ReviewHandler) HasReviewed(c *gin.Context) {
	reviewed, err := h.Service.HasReviewed(c.Param("serviceId"), middleware.ActorID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasReviewed": reviewed})
}
