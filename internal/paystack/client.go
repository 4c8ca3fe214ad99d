package paystack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/flexprice/paystack-bridge/internal/config"
	ierr "github.com/flexprice/paystack-bridge/internal/errors"
	"github.com/flexprice/paystack-bridge/internal/httpclient"
	"github.com/flexprice/paystack-bridge/internal/logger"
	"github.com/samber/lo"
)

// Client executes calls against the Paystack REST API. Every call goes
// through the static route table, so an operation the table does not
// declare cannot be issued, and a declared operation cannot be issued
// with its required parameters missing.
type Client struct {
	secretKey string
	baseURL   string
	http      httpclient.Client
	logger    *logger.Logger

	Customers     *CustomerResource
	Plans         *PlanResource
	Transactions  *TransactionResource
	Pages         *PageResource
	Subscriptions *SubscriptionResource
}

// NewClient creates a Paystack client from the active key pair
func NewClient(cfg *config.Configuration, http httpclient.Client, log *logger.Logger) (*Client, error) {
	secretKey := cfg.Paystack.ActiveSecretKey()
	if !strings.HasPrefix(secretKey, "sk_") {
		return nil, ierr.NewError("invalid paystack secret key").
			WithHint("Secret keys must start with sk_").
			Mark(ierr.ErrValidation)
	}

	c := &Client{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(cfg.Paystack.APIURL, "/"),
		http:      http,
		logger:    log,
	}
	c.Customers = &CustomerResource{client: c}
	c.Plans = &PlanResource{client: c}
	c.Transactions = &TransactionResource{client: c}
	c.Pages = &PageResource{client: c}
	c.Subscriptions = &SubscriptionResource{client: c}
	return c, nil
}

// Call resolves the route for resource and verb and executes it with the
// given payload. Path arguments are pulled out of the payload by name;
// whatever remains is sent as query parameters for GET routes and as a
// JSON body otherwise. Route resolution and missing-requirement failures
// return a typed error. Transport and provider failures do not: they come
// back as a Result with Error set, so callers handle one shape for every
// runtime outcome.
func (c *Client) Call(ctx context.Context, resource Resource, verb Verb, payload map[string]interface{}) (*Result, error) {
	route, err := Resolve(resource, verb)
	if err != nil {
		return nil, err
	}

	if payload == nil {
		payload = map[string]interface{}{}
	}

	args := make(map[string]interface{})
	params := make(map[string]interface{})
	for key, value := range payload {
		if lo.Contains(route.Args, key) {
			args[key] = value
			continue
		}
		if lo.Contains(route.Params, key) {
			params[key] = value
		}
	}

	for _, key := range route.RequiredArgs {
		if _, ok := args[key]; !ok {
			return nil, ierr.NewError("missing required argument").
				WithHintf("Argument %q is required for %s.%s", key, resource, verb).
				Mark(ierr.ErrValidation)
		}
	}
	for _, key := range route.RequiredParams {
		if _, ok := params[key]; !ok {
			return nil, ierr.NewError("missing required parameter").
				WithHintf("Parameter %q is required for %s.%s", key, resource, verb).
				Mark(ierr.ErrValidation)
		}
	}

	endpoint := route.Endpoint
	for key, value := range args {
		endpoint = strings.ReplaceAll(endpoint, "{"+key+"}", url.PathEscape(fmt.Sprintf("%v", value)))
	}

	req := &httpclient.Request{
		Method: route.Method,
		URL:    c.baseURL + endpoint,
		Headers: map[string]string{
			"Authorization": "Bearer " + c.secretKey,
			"Accept":        "application/json",
		},
	}

	if route.Method == "GET" {
		if len(params) > 0 {
			query := url.Values{}
			for key, value := range params {
				query.Set(key, fmt.Sprintf("%v", value))
			}
			req.URL += "?" + query.Encode()
		}
	} else {
		body, err := json.Marshal(params)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Request payload could not be encoded").
				Mark(ierr.ErrValidation)
		}
		req.Body = body
	}

	resp, err := c.http.Send(ctx, req)
	if err != nil {
		return c.failedResult(resource, verb, err), nil
	}

	result := &Result{}
	if err := json.Unmarshal(resp.Body, result); err != nil {
		c.logger.Errorw("failed to decode paystack response",
			"resource", resource, "verb", verb, "error", err)
		return &Result{Error: "invalid response from paystack"}, nil
	}

	if !result.Status {
		result.Error = result.Message
		if result.Error == "" {
			result.Error = "paystack request failed"
		}
	}
	return result, nil
}

// failedResult turns a transport-level failure into a Result. Provider
// error bodies on non-2xx responses still carry the envelope, so the
// message is recovered from there when possible.
func (c *Client) failedResult(resource Resource, verb Verb, err error) *Result {
	if httpErr, ok := httpclient.IsHTTPError(err); ok {
		result := &Result{}
		if decodeErr := json.Unmarshal(httpErr.Response, result); decodeErr == nil && result.Message != "" {
			result.Status = false
			result.Error = result.Message
			return result
		}
		c.logger.Errorw("paystack request failed",
			"resource", resource, "verb", verb, "status_code", httpErr.StatusCode)
		return &Result{Error: fmt.Sprintf("paystack request failed with status %d", httpErr.StatusCode)}
	}

	c.logger.Errorw("paystack request failed",
		"resource", resource, "verb", verb, "error", err)
	return &Result{Error: "request to paystack could not complete"}
}
