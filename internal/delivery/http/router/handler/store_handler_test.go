package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ratereview/internal/delivery/http/validator"
	"ratereview/internal/domain/entity"
	mockusecase "ratereview/internal/mocks/usecase"
	"ratereview/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStoreTestContext(method, target, paramID, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}

	return c, rec
}

func TestStoreHandler_Create(t *testing.T) {
	mockUC := new(mockusecase.MockStoreUsecase)
	handler := &StoreHandler{uc: mockUC, logger: slog.Default()}

	store := &entity.Store{ID: uuid.New(), Name: "Corner Coffee and Pastry House", Email: "owner@example.com"}
	mockUC.On("CreateStore", mock.Anything, mock.MatchedBy(func(input *usecase.CreateStoreInput) bool {
		return input.Name == "Corner Coffee and Pastry House"
	})).Return(store, nil)

	c, rec := newStoreTestContext(http.MethodPost, "/stores", "",
		`{"name":"Corner Coffee and Pastry House","email":"owner@example.com","address":"9 Mill Road"}`)

	require.NoError(t, handler.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	mockUC.AssertExpectations(t)
}

func TestStoreHandler_List_OwnerSeesOwnStores(t *testing.T) {
	mockUC := new(mockusecase.MockStoreUsecase)
	handler := &StoreHandler{uc: mockUC, logger: slog.Default()}

	mockUC.On("ListOwnerStores", mock.Anything, "owner@example.com").Return([]*usecase.StoreView{}, nil)

	c, rec := newStoreTestContext(http.MethodGet, "/stores", "", "")
	c.Set("role", entity.RoleOwner.String())
	c.Set("email", "owner@example.com")

	require.NoError(t, handler.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockUC.AssertExpectations(t)
	mockUC.AssertNotCalled(t, "ListStores", mock.Anything)
}

func TestStoreHandler_List_UserSeesDirectory(t *testing.T) {
	mockUC := new(mockusecase.MockStoreUsecase)
	handler := &StoreHandler{uc: mockUC, logger: slog.Default()}

	store := &entity.Store{ID: uuid.New(), Name: "Corner Coffee and Pastry House", TotalRatingCount: 4, TotalRatingSum: 14}
	mockUC.On("ListStores", mock.Anything).Return([]*usecase.StoreView{
		{Store: store, AverageRating: 3.5, HasRatings: true},
	}, nil)

	c, rec := newStoreTestContext(http.MethodGet, "/stores", "", "")
	c.Set("role", entity.RoleUser.String())
	c.Set("email", "ann.lee@example.com")

	require.NoError(t, handler.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"average_rating":3.5`)
	mockUC.AssertExpectations(t)
}

func TestStoreHandler_ListRatings_OwnerScoped(t *testing.T) {
	mockUC := new(mockusecase.MockStoreUsecase)
	handler := &StoreHandler{uc: mockUC, logger: slog.Default()}

	storeID := uuid.New()
	mockUC.On("ListStoreRatings", mock.Anything, storeID, "owner@example.com").Return([]*entity.Rating{}, nil)

	c, rec := newStoreTestContext(http.MethodGet, "/stores/"+storeID.String()+"/ratings", storeID.String(), "")
	c.Set("role", entity.RoleOwner.String())
	c.Set("email", "owner@example.com")

	require.NoError(t, handler.ListRatings(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockUC.AssertExpectations(t)
}

func TestStoreHandler_ListRatings_AdminUnscoped(t *testing.T) {
	mockUC := new(mockusecase.MockStoreUsecase)
	handler := &StoreHandler{uc: mockUC, logger: slog.Default()}

	storeID := uuid.New()
	// Admins pass an empty owner email, disabling the ownership check.
	mockUC.On("ListStoreRatings", mock.Anything, storeID, "").Return([]*entity.Rating{}, nil)

	c, rec := newStoreTestContext(http.MethodGet, "/stores/"+storeID.String()+"/ratings", storeID.String(), "")
	c.Set("role", entity.RoleAdmin.String())
	c.Set("email", "root@example.com")

	require.NoError(t, handler.ListRatings(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockUC.AssertExpectations(t)
}

func TestStoreHandler_QR(t *testing.T) {
	mockUC := new(mockusecase.MockStoreUsecase)
	handler := &StoreHandler{uc: mockUC, logger: slog.Default()}

	storeID := uuid.New()
	png := []byte{0x89, 0x50, 0x4E, 0x47}
	mockUC.On("StoreQR", mock.Anything, storeID, "owner@example.com").Return(png, nil)

	c, rec := newStoreTestContext(http.MethodGet, "/stores/"+storeID.String()+"/qrcode", storeID.String(), "")
	c.Set("role", entity.RoleOwner.String())
	c.Set("email", "owner@example.com")

	require.NoError(t, handler.QR(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, png, rec.Body.Bytes())
	mockUC.AssertExpectations(t)
}

func TestStoreHandler_QR_InvalidStoreID(t *testing.T) {
	mockUC := new(mockusecase.MockStoreUsecase)
	handler := &StoreHandler{uc: mockUC, logger: slog.Default()}

	c, rec := newStoreTestContext(http.MethodGet, "/stores/not-a-uuid/qrcode", "not-a-uuid", "")
	c.Set("role", entity.RoleOwner.String())

	require.NoError(t, handler.QR(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockUC.AssertNotCalled(t, "StoreQR", mock.Anything, mock.Anything, mock.Anything)
}
