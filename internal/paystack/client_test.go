package paystack

import (
	"context"
	"net/http"
	"testing"

	"github.com/flexprice/paystack-bridge/internal/config"
	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/flexprice/paystack-bridge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *testutil.MockHTTPClient) {
	t.Helper()
	cfg := config.GetDefaultConfig()
	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)

	mock := testutil.NewMockHTTPClient()
	client, err := NewClient(cfg, mock, log)
	require.NoError(t, err)
	return client, mock
}

func TestNewClientRejectsBadSecretKey(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Paystack.TestSecretKey = "pk_test_not_a_secret"

	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)

	_, err = NewClient(cfg, testutil.NewMockHTTPClient(), log)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestCallSendsBearerAuth(t *testing.T) {
	client, mock := newTestClient(t)
	mock.RegisterResponse("/transaction/verify/ref_1", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"status":true,"message":"Verification successful","data":{"reference":"ref_1","status":"success"}}`),
	})

	result, err := client.Call(context.Background(), ResourceTransaction, VerbVerify, map[string]interface{}{
		"reference": "ref_1",
	})
	require.NoError(t, err)
	assert.True(t, result.Ok())

	requests := mock.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "Bearer sk_test_placeholder", requests[0].Headers["Authorization"])
	assert.Equal(t, "GET", requests[0].Method)
	assert.Equal(t, "https://api.paystack.co/transaction/verify/ref_1", requests[0].URL)
}

func TestCallEnforcesRequiredParams(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Call(context.Background(), ResourceTransaction, VerbInitialize, map[string]interface{}{
		"amount": 5000,
	})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestCallEnforcesRequiredArgs(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Call(context.Background(), ResourceTransaction, VerbVerify, nil)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestCallSendsDeclaredParamsAsQuery(t *testing.T) {
	client, mock := newTestClient(t)
	mock.RegisterResponse("/customer", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"status":true,"message":"Customers retrieved","data":[]}`),
	})

	_, err := client.Customers.List(context.Background(), &ListParams{PerPage: 2, Page: 3})
	require.NoError(t, err)

	requests := mock.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "https://api.paystack.co/customer?page=3&perPage=2", requests[0].URL)
}

func TestCallDropsUndeclaredParams(t *testing.T) {
	client, mock := newTestClient(t)
	mock.RegisterResponse("/transaction/initialize", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"status":true,"message":"Authorization URL created","data":{"reference":"ref_1"}}`),
	})

	_, err := client.Call(context.Background(), ResourceTransaction, VerbInitialize, map[string]interface{}{
		"amount":        5000,
		"email":         "buyer@example.com",
		"authorization": "should-not-be-sent",
	})
	require.NoError(t, err)

	requests := mock.Requests()
	require.Len(t, requests, 1)
	assert.Contains(t, string(requests[0].Body), "buyer@example.com")
	assert.NotContains(t, string(requests[0].Body), "should-not-be-sent")
}

func TestCallSurfacesProviderRejection(t *testing.T) {
	client, mock := newTestClient(t)
	mock.RegisterResponse("/transaction/verify/ref_bad", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"status":false,"message":"card declined"}`),
	})

	charge, err := client.Transactions.Verify(context.Background(), "ref_bad")
	require.NoError(t, err)
	assert.Equal(t, "card declined", charge.Error)
	assert.Nil(t, charge.Data)
}

func TestCallRecoversMessageFromErrorResponse(t *testing.T) {
	client, mock := newTestClient(t)
	mock.RegisterResponse("/transaction/verify/ref_missing", testutil.MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       []byte(`{"status":false,"message":"Transaction reference not found"}`),
	})

	charge, err := client.Transactions.Verify(context.Background(), "ref_missing")
	require.NoError(t, err)
	assert.Equal(t, "Transaction reference not found", charge.Error)
}

func TestCallHandlesTransportFailure(t *testing.T) {
	client, _ := newTestClient(t)
	// nothing registered: the mock responds with a bare 404
	charge, err := client.Transactions.Verify(context.Background(), "ref_gone")
	require.NoError(t, err)
	assert.NotEmpty(t, charge.Error)
}

func TestVerifyDecodesChargeData(t *testing.T) {
	client, mock := newTestClient(t)
	mock.RegisterResponse("/transaction/verify/ref_7", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body: []byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"reference": "ref_7",
				"status": "success",
				"amount": 5000,
				"currency": "NGN",
				"gateway_response": "Successful",
				"customer": {"email": "buyer@example.com"},
				"metadata": {"invoice_id": "inv_7"}
			}
		}`),
	})

	charge, err := client.Transactions.Verify(context.Background(), "ref_7")
	require.NoError(t, err)
	require.Empty(t, charge.Error)
	require.NotNil(t, charge.Data)
	assert.Equal(t, int64(5000), charge.Data.Amount)
	assert.Equal(t, "NGN", charge.Data.Currency)
	assert.Equal(t, "inv_7", charge.Data.Metadata.InvoiceID)
}
