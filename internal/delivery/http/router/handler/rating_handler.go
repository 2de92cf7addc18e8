package handler

import (
	"log/slog"
	"net/http"

	"ratereview/internal/delivery/http/response"
	"ratereview/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RatingHandler holds dependencies for rating-related handlers.
type RatingHandler struct {
	uc     usecase.RatingUsecase
	logger *slog.Logger
}

// NewRatingHandler is the constructor for RatingHandler, injected by Fx.
func NewRatingHandler(uc usecase.RatingUsecase, logger *slog.Logger) *RatingHandler {
	return &RatingHandler{
		uc:     uc,
		logger: logger,
	}
}

// submitRatingRequest is the rating form body. The rater's identity comes
// from the session, never the body.
type submitRatingRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

// Submit upserts the authenticated user's rating for a store.
func (h *RatingHandler) Submit(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	email, ok := c.Get("email").(string)
	if !ok || email == "" {
		return response.Unauthorized(c, "UNAUTHORIZED", "Rater identity missing from request context")
	}

	var body submitRatingRequest
	if err := c.Bind(&body); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}

	if err := c.Validate(&body); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.uc.SubmitRating(c.Request().Context(), &usecase.SubmitRatingInput{
		StoreID: storeID,
		Email:   email,
		Rating:  body.Rating,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Rating submitted successfully")
}

// MyRatings returns every rating the authenticated user has submitted.
func (h *RatingHandler) MyRatings(c echo.Context) error {
	email, ok := c.Get("email").(string)
	if !ok || email == "" {
		return response.Unauthorized(c, "UNAUTHORIZED", "Rater identity missing from request context")
	}

	ratings, err := h.uc.ListAccountRatings(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ratings, "Ratings retrieved successfully")
}
