package paystack

import (
	ierr "github.com/flexprice/paystack-bridge/internal/errors"
)

// Resource is a Paystack API resource family
type Resource string

const (
	ResourceCustomer     Resource = "customer"
	ResourcePlan         Resource = "plan"
	ResourceTransaction  Resource = "transaction"
	ResourcePage         Resource = "page"
	ResourceSubscription Resource = "subscription"
)

// Verb is an operation on a resource
type Verb string

const (
	VerbCreate      Verb = "create"
	VerbFetch       Verb = "fetch"
	VerbList        Verb = "list"
	VerbUpdate      Verb = "update"
	VerbDisable     Verb = "disable"
	VerbEnable      Verb = "enable"
	VerbInitialize  Verb = "initialize"
	VerbCharge      Verb = "charge"
	VerbChargeToken Verb = "charge_token"
	VerbExport      Verb = "export"
	VerbTotals      Verb = "totals"
	VerbVerify      Verb = "verify"
)

// Route is a static description of one API call: its HTTP method, the
// endpoint template with {placeholder} path arguments, the declared body
// or query parameters, and the required subsets of each. The table below
// is the single source of truth for what the gateway accepts; it is
// resolved at call time and never mutated.
type Route struct {
	Method         string
	Endpoint       string
	Params         []string
	Args           []string
	RequiredParams []string
	RequiredArgs   []string
}

var routes = map[Resource]map[Verb]Route{
	ResourceCustomer: {
		VerbCreate: {
			Method:         "POST",
			Endpoint:       "/customer",
			Params:         []string{"first_name", "last_name", "email", "phone"},
			RequiredParams: []string{"first_name", "last_name", "email"},
		},
		VerbFetch: {
			Method:       "GET",
			Endpoint:     "/customer/{id}",
			Args:         []string{"id"},
			RequiredArgs: []string{"id"},
		},
		VerbList: {
			Method:   "GET",
			Endpoint: "/customer",
			Params:   []string{"perPage", "page"},
		},
		VerbUpdate: {
			Method:         "PUT",
			Endpoint:       "/customer/{id}",
			Params:         []string{"first_name", "last_name", "email", "phone"},
			Args:           []string{"id"},
			RequiredParams: []string{"first_name", "last_name"},
			RequiredArgs:   []string{"id"},
		},
	},
	ResourcePlan: {
		VerbCreate: {
			Method:   "POST",
			Endpoint: "/plan",
			Params: []string{
				"name", "description", "amount", "interval", "send_invoices",
				"send_sms", "hosted_page", "hosted_page_url", "hosted_page_summary",
				"currency",
			},
		},
		VerbFetch: {
			Method:       "GET",
			Endpoint:     "/plan/{id}",
			Args:         []string{"id"},
			RequiredArgs: []string{"id"},
		},
		VerbList: {
			Method:   "GET",
			Endpoint: "/plan",
			Params:   []string{"perPage", "page"},
		},
		VerbUpdate: {
			Method:   "PUT",
			Endpoint: "/plan/{id}",
			Params: []string{
				"name", "description", "amount", "interval", "send_invoices",
				"send_sms", "hosted_page", "hosted_page_url", "hosted_page_summary",
				"currency",
			},
			Args:         []string{"id"},
			RequiredArgs: []string{"id"},
		},
	},
	ResourceTransaction: {
		VerbInitialize: {
			Method:         "POST",
			Endpoint:       "/transaction/initialize",
			Params:         []string{"reference", "amount", "email", "plan", "currency", "callback_url", "metadata"},
			RequiredParams: []string{"amount", "email"},
		},
		VerbCharge: {
			Method:         "POST",
			Endpoint:       "/transaction/charge_authorization",
			Params:         []string{"reference", "authorization_code", "email", "amount"},
			RequiredParams: []string{"authorization_code", "email", "amount"},
		},
		VerbChargeToken: {
			Method:         "POST",
			Endpoint:       "/transaction/charge_token",
			Params:         []string{"reference", "token", "email", "amount"},
			RequiredParams: []string{"token", "email", "amount"},
		},
		VerbFetch: {
			Method:       "GET",
			Endpoint:     "/transaction/{id}",
			Args:         []string{"id"},
			RequiredArgs: []string{"id"},
		},
		VerbList: {
			Method:   "GET",
			Endpoint: "/transaction",
			Params:   []string{"perPage", "page"},
		},
		VerbExport: {
			Method:   "GET",
			Endpoint: "/transaction/export",
		},
		VerbTotals: {
			Method:   "GET",
			Endpoint: "/transaction/totals",
		},
		VerbVerify: {
			Method:       "GET",
			Endpoint:     "/transaction/verify/{reference}",
			Args:         []string{"reference"},
			RequiredArgs: []string{"reference"},
		},
	},
	ResourcePage: {
		VerbCreate: {
			Method:   "POST",
			Endpoint: "/page",
			Params:   []string{"name", "description", "amount"},
		},
		VerbFetch: {
			Method:       "GET",
			Endpoint:     "/page/{id}",
			Args:         []string{"id"},
			RequiredArgs: []string{"id"},
		},
		VerbList: {
			Method:   "GET",
			Endpoint: "/page",
			Params:   []string{"perPage", "page"},
		},
		VerbUpdate: {
			Method:       "PUT",
			Endpoint:     "/page/{id}",
			Params:       []string{"name", "description"},
			Args:         []string{"id"},
			RequiredArgs: []string{"id"},
		},
	},
	ResourceSubscription: {
		VerbCreate: {
			Method:         "POST",
			Endpoint:       "/subscription",
			Params:         []string{"customer", "plan", "authorization"},
			RequiredParams: []string{"customer", "plan"},
		},
		VerbFetch: {
			Method:       "GET",
			Endpoint:     "/subscription/{id}",
			Args:         []string{"id"},
			RequiredArgs: []string{"id"},
		},
		VerbList: {
			Method:   "GET",
			Endpoint: "/subscription",
			Params:   []string{"perPage", "page"},
		},
		VerbDisable: {
			Method:         "POST",
			Endpoint:       "/subscription/disable",
			Params:         []string{"code", "token"},
			RequiredParams: []string{"code", "token"},
		},
		VerbEnable: {
			Method:         "POST",
			Endpoint:       "/subscription/enable",
			Params:         []string{"code", "token"},
			RequiredParams: []string{"code", "token"},
		},
	},
}

// Resolve looks up the route descriptor for a resource and verb.
// Unknown combinations are programmer errors and fail immediately.
func Resolve(resource Resource, verb Verb) (Route, error) {
	verbs, ok := routes[resource]
	if !ok {
		return Route{}, ierr.NewError("unknown resource").
			WithHintf("Resource %q does not exist", resource).
			Mark(ierr.ErrInvalidOperation)
	}

	route, ok := verbs[verb]
	if !ok {
		return Route{}, ierr.NewError("unknown verb").
			WithHintf("Verb %q does not exist for resource %q", verb, resource).
			Mark(ierr.ErrInvalidOperation)
	}

	return route, nil
}
