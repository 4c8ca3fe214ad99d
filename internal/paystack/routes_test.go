package paystack

import (
	"testing"

	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKnownRoutes(t *testing.T) {
	tests := []struct {
		resource Resource
		verb     Verb
		method   string
		endpoint string
	}{
		{ResourceCustomer, VerbCreate, "POST", "/customer"},
		{ResourceCustomer, VerbFetch, "GET", "/customer/{id}"},
		{ResourceCustomer, VerbUpdate, "PUT", "/customer/{id}"},
		{ResourcePlan, VerbList, "GET", "/plan"},
		{ResourcePage, VerbUpdate, "PUT", "/page/{id}"},
		{ResourceTransaction, VerbInitialize, "POST", "/transaction/initialize"},
		{ResourceTransaction, VerbCharge, "POST", "/transaction/charge_authorization"},
		{ResourceTransaction, VerbChargeToken, "POST", "/transaction/charge_token"},
		{ResourceTransaction, VerbVerify, "GET", "/transaction/verify/{reference}"},
		{ResourceTransaction, VerbExport, "GET", "/transaction/export"},
		{ResourceTransaction, VerbTotals, "GET", "/transaction/totals"},
		{ResourceSubscription, VerbDisable, "POST", "/subscription/disable"},
		{ResourceSubscription, VerbEnable, "POST", "/subscription/enable"},
	}

	for _, tt := range tests {
		route, err := Resolve(tt.resource, tt.verb)
		require.NoError(t, err, "%s.%s", tt.resource, tt.verb)
		assert.Equal(t, tt.method, route.Method, "%s.%s", tt.resource, tt.verb)
		assert.Equal(t, tt.endpoint, route.Endpoint, "%s.%s", tt.resource, tt.verb)
	}
}

func TestResolveUnknownResource(t *testing.T) {
	_, err := Resolve(Resource("refund"), VerbCreate)
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidOperation(err))
}

func TestResolveUnknownVerb(t *testing.T) {
	_, err := Resolve(ResourcePage, VerbVerify)
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidOperation(err))
}

func TestEveryVerbIsDeclaredSomewhere(t *testing.T) {
	verbs := map[Verb]bool{}
	for _, table := range routes {
		for verb := range table {
			verbs[verb] = true
		}
	}

	for _, verb := range []Verb{
		VerbCreate, VerbFetch, VerbList, VerbUpdate, VerbDisable, VerbEnable,
		VerbInitialize, VerbCharge, VerbChargeToken, VerbExport, VerbTotals, VerbVerify,
	} {
		assert.True(t, verbs[verb], "verb %s is unused", verb)
	}
}

func TestRequiredFieldsAreDeclared(t *testing.T) {
	for resource, table := range routes {
		for verb, route := range table {
			for _, param := range route.RequiredParams {
				assert.Contains(t, route.Params, param,
					"%s.%s requires undeclared param %s", resource, verb, param)
			}
			for _, arg := range route.RequiredArgs {
				assert.Contains(t, route.Args, arg,
					"%s.%s requires undeclared arg %s", resource, verb, arg)
			}
		}
	}
}
