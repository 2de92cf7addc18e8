package handler

import (
	"log/slog"
	"net/http"

	"ratereview/internal/delivery/http/response"
	"ratereview/internal/domain/entity"
	"ratereview/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StoreHandler holds dependencies for store-related handlers.
type StoreHandler struct {
	uc     usecase.StoreUsecase
	logger *slog.Logger
}

// NewStoreHandler is the constructor for StoreHandler, injected by Fx.
func NewStoreHandler(uc usecase.StoreUsecase, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles the new-store request.
func (h *StoreHandler) Create(c echo.Context) error {
	var input *usecase.CreateStoreInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}

	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	store, err := h.uc.CreateStore(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, store, "Store created successfully")
}

// List returns stores with their derived averages. Owners see only their
// own stores; other roles see the full directory.
func (h *StoreHandler) List(c echo.Context) error {
	var (
		stores []*usecase.StoreView
		err    error
	)

	if role, _ := c.Get("role").(string); role == entity.RoleOwner.String() {
		email, _ := c.Get("email").(string)
		stores, err = h.uc.ListOwnerStores(c.Request().Context(), email)
	} else {
		stores, err = h.uc.ListStores(c.Request().Context())
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stores, "Stores retrieved successfully")
}

// ListRatings returns the individual ratings of one store. Owners may only
// inspect their own stores; admins may inspect any.
func (h *StoreHandler) ListRatings(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	ownerEmail := ""
	if role, _ := c.Get("role").(string); role == entity.RoleOwner.String() {
		ownerEmail, _ = c.Get("email").(string)
	}

	ratings, err := h.uc.ListStoreRatings(c.Request().Context(), storeID, ownerEmail)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ratings, "Ratings retrieved successfully")
}

// QR renders the store's review QR code as a PNG image.
func (h *StoreHandler) QR(c echo.Context) error {
	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	ownerEmail := ""
	if role, _ := c.Get("role").(string); role == entity.RoleOwner.String() {
		ownerEmail, _ = c.Get("email").(string)
	}

	png, err := h.uc.StoreQR(c.Request().Context(), storeID, ownerEmail)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
