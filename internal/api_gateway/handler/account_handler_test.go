package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/api_gateway/middleware"
	"github.com/retail-ledger-engine/internal/domain/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func sampleAccount() *account.Account {
	now := time.Now().UTC()
	return &account.Account{
		ID:          uuid.New(),
		Name:        "Front Till",
		Balance:     1250,
		CashBalance: -300,
		IsDefault:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestAccountHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger, mockService)
		r := newTestRouter()
		r.POST("/accounts", h.Create)

		acc := sampleAccount()
		mockService.On("CreateAccount", mock.Anything, "Front Till", true).Return(acc, nil)

		rr := serve(r, http.MethodPost, "/accounts", `{"name":"Front Till","is_default":true}`, nil)

		assert.Equal(t, http.StatusCreated, rr.Code)
		resp := decode[AccountResponse](t, rr)
		assert.Equal(t, acc.ID.String(), resp.Data.ID)
		assert.True(t, resp.Data.Balance.Equal(decimal.RequireFromString("12.50")))
		assert.True(t, resp.Data.CashBalance.Equal(decimal.RequireFromString("-3")))
		assert.True(t, resp.Data.TotalBalance.Equal(decimal.RequireFromString("9.50")))
		assert.NotEmpty(t, resp.CorrelationID)
		mockService.AssertExpectations(t)
	})

	t.Run("MissingName", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger, mockService)
		r := newTestRouter()
		r.POST("/accounts", h.Create)

		rr := serve(r, http.MethodPost, "/accounts", `{"is_default":false}`, nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decode[any](t, rr)
		assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "name")
		mockService.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger, mockService)
		r := newTestRouter()
		r.POST("/accounts", h.Create)

		rr := serve(r, http.MethodPost, "/accounts", `{"name`, nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger, mockService)
		r := newTestRouter()
		r.POST("/accounts", h.Create)

		mockService.On("CreateAccount", mock.Anything, "Front Till", false).
			Return(nil, account.ErrDuplicateName{Name: "Front Till"})

		rr := serve(r, http.MethodPost, "/accounts", `{"name":"Front Till"}`, nil)

		assert.Equal(t, http.StatusConflict, rr.Code)
		resp := decode[any](t, rr)
		assert.Equal(t, "CONFLICT", resp.Error.Code)
		mockService.AssertExpectations(t)
	})
}

func TestAccountHandler_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger, mockService)
		r := newTestRouter()
		r.GET("/accounts/:id", h.GetByID)

		acc := sampleAccount()
		mockService.On("GetAccount", mock.Anything, acc.ID).Return(acc, nil)

		rr := serve(r, http.MethodGet, "/accounts/"+acc.ID.String(), "", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decode[AccountResponse](t, rr)
		assert.Equal(t, "Front Till", resp.Data.Name)
		assert.True(t, resp.Data.IsDefault)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidID", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger, mockService)
		r := newTestRouter()
		r.GET("/accounts/:id", h.GetByID)

		rr := serve(r, http.MethodGet, "/accounts/not-a-uuid", "", nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger, mockService)
		r := newTestRouter()
		r.GET("/accounts/:id", h.GetByID)

		id := uuid.New()
		mockService.On("GetAccount", mock.Anything, id).Return(nil, account.ErrAccountNotFound{AccountID: id})

		rr := serve(r, http.MethodGet, "/accounts/"+id.String(), "", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ServiceError", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger, mockService)
		r := newTestRouter()
		r.GET("/accounts/:id", h.GetByID)

		id := uuid.New()
		mockService.On("GetAccount", mock.Anything, id).Return(nil, errors.New("connection reset"))

		rr := serve(r, http.MethodGet, "/accounts/"+id.String(), "", nil)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "connection reset")
		mockService.AssertExpectations(t)
	})
}

func TestAccountHandler_List(t *testing.T) {
	mockService := new(MockAccountService)
	h := NewAccountHandler(testLogger, mockService)
	r := newTestRouter()
	r.GET("/accounts", h.List)

	mockService.On("ListAccounts", mock.Anything).Return([]*account.Account{sampleAccount(), sampleAccount()}, nil)

	rr := serve(r, http.MethodGet, "/accounts", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode[[]AccountResponse](t, rr)
	assert.Len(t, resp.Data, 2)
	mockService.AssertExpectations(t)
}

func TestAccountHandler_SetDefault(t *testing.T) {
	mockService := new(MockAccountService)
	h := NewAccountHandler(testLogger, mockService)
	r := newTestRouter()
	r.PUT("/accounts/:id/default", h.SetDefault)

	acc := sampleAccount()
	mockService.On("SetDefaultAccount", mock.Anything, acc.ID).Return(acc, nil)

	rr := serve(r, http.MethodPut, "/accounts/"+acc.ID.String()+"/default", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}

func TestAccountHandler_BankAccounts(t *testing.T) {
	t.Run("CreateUsesActor", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger, mockService)
		r := newTestRouter()
		r.POST("/bank-accounts", h.CreateBankAccount)

		actorID := uuid.New()
		ba := &account.BankAccount{
			ID:            uuid.New(),
			AccountNumber: "ACC-0007",
			Name:          "Jane Roe",
			CreatedBy:     actorID,
			CreatedAt:     time.Now(),
		}
		mockService.On("CreateBankAccount", mock.Anything, actorID, "Jane Roe").Return(ba, nil)

		rr := serve(r, http.MethodPost, "/bank-accounts", `{"holder_name":"Jane Roe"}`,
			map[string]string{middleware.ActorIDHeader: actorID.String()})

		assert.Equal(t, http.StatusCreated, rr.Code)
		resp := decode[BankAccountResponse](t, rr)
		assert.Equal(t, "ACC-0007", resp.Data.AccountNumber)
		assert.Equal(t, actorID.String(), resp.Data.CreatedBy)
		mockService.AssertExpectations(t)
	})

	t.Run("GetNotFound", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger, mockService)
		r := newTestRouter()
		r.GET("/bank-accounts/:id", h.GetBankAccount)

		id := uuid.New()
		mockService.On("GetBankAccount", mock.Anything, id).Return(nil, account.ErrBankAccountNotFound{BankAccountID: id})

		rr := serve(r, http.MethodGet, "/bank-accounts/"+id.String(), "", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})
}
