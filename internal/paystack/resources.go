package paystack

import (
	"context"
	"encoding/json"
)

// TransactionResource covers the transaction verbs
type TransactionResource struct {
	client *Client
}

// Initialize creates a hosted checkout session for the given charge
func (r *TransactionResource) Initialize(ctx context.Context, req *InitializeRequest) (*InitializeResult, error) {
	payload := map[string]interface{}{
		"amount": req.Amount,
		"email":  req.Email,
	}
	if req.Reference != "" {
		payload["reference"] = req.Reference
	}
	if req.Currency != "" {
		payload["currency"] = req.Currency
	}
	if req.Plan != "" {
		payload["plan"] = req.Plan
	}
	if req.CallbackURL != "" {
		payload["callback_url"] = req.CallbackURL
	}
	if len(req.Metadata) > 0 {
		payload["metadata"] = req.Metadata
	}

	result, err := r.client.Call(ctx, ResourceTransaction, VerbInitialize, payload)
	if err != nil {
		return nil, err
	}

	out := &InitializeResult{Message: result.Message, Error: result.Error}
	if result.Ok() && len(result.Data) > 0 {
		data := &InitializeData{}
		if err := json.Unmarshal(result.Data, data); err != nil {
			out.Error = "invalid response from paystack"
			return out, nil
		}
		out.Data = data
	}
	return out, nil
}

// Verify fetches the authoritative state of a transaction by reference
func (r *TransactionResource) Verify(ctx context.Context, reference string) (*ChargeResult, error) {
	result, err := r.client.Call(ctx, ResourceTransaction, VerbVerify, map[string]interface{}{
		"reference": reference,
	})
	if err != nil {
		return nil, err
	}
	return chargeResult(result), nil
}

// Charge debits a previously stored authorization
func (r *TransactionResource) Charge(ctx context.Context, payload map[string]interface{}) (*ChargeResult, error) {
	result, err := r.client.Call(ctx, ResourceTransaction, VerbCharge, payload)
	if err != nil {
		return nil, err
	}
	return chargeResult(result), nil
}

// ChargeToken debits a single-use token
func (r *TransactionResource) ChargeToken(ctx context.Context, payload map[string]interface{}) (*ChargeResult, error) {
	result, err := r.client.Call(ctx, ResourceTransaction, VerbChargeToken, payload)
	if err != nil {
		return nil, err
	}
	return chargeResult(result), nil
}

// Fetch retrieves a transaction by its provider id
func (r *TransactionResource) Fetch(ctx context.Context, id string) (*Result, error) {
	return r.client.Call(ctx, ResourceTransaction, VerbFetch, map[string]interface{}{"id": id})
}

// List pages through transactions
func (r *TransactionResource) List(ctx context.Context, params *ListParams) (*Result, error) {
	return r.client.Call(ctx, ResourceTransaction, VerbList, params.payload())
}

// Export requests a transaction export
func (r *TransactionResource) Export(ctx context.Context) (*Result, error) {
	return r.client.Call(ctx, ResourceTransaction, VerbExport, nil)
}

// Totals returns transaction volume totals
func (r *TransactionResource) Totals(ctx context.Context) (*Result, error) {
	return r.client.Call(ctx, ResourceTransaction, VerbTotals, nil)
}

func chargeResult(result *Result) *ChargeResult {
	out := &ChargeResult{Message: result.Message, Error: result.Error}
	if result.Ok() && len(result.Data) > 0 {
		data := &ChargeData{}
		if err := json.Unmarshal(result.Data, data); err != nil {
			out.Error = "invalid response from paystack"
			return out
		}
		out.Data = data
	}
	return out
}

// CustomerResource covers the customer verbs
type CustomerResource struct {
	client *Client
}

func (r *CustomerResource) Create(ctx context.Context, payload map[string]interface{}) (*Result, error) {
	return r.client.Call(ctx, ResourceCustomer, VerbCreate, payload)
}

func (r *CustomerResource) Fetch(ctx context.Context, id string) (*Result, error) {
	return r.client.Call(ctx, ResourceCustomer, VerbFetch, map[string]interface{}{"id": id})
}

func (r *CustomerResource) List(ctx context.Context, params *ListParams) (*Result, error) {
	return r.client.Call(ctx, ResourceCustomer, VerbList, params.payload())
}

func (r *CustomerResource) Update(ctx context.Context, id string, payload map[string]interface{}) (*Result, error) {
	payload = withArg(payload, "id", id)
	return r.client.Call(ctx, ResourceCustomer, VerbUpdate, payload)
}

// PlanResource covers the plan verbs
type PlanResource struct {
	client *Client
}

func (r *PlanResource) Create(ctx context.Context, payload map[string]interface{}) (*Result, error) {
	return r.client.Call(ctx, ResourcePlan, VerbCreate, payload)
}

func (r *PlanResource) Fetch(ctx context.Context, id string) (*Result, error) {
	return r.client.Call(ctx, ResourcePlan, VerbFetch, map[string]interface{}{"id": id})
}

func (r *PlanResource) List(ctx context.Context, params *ListParams) (*Result, error) {
	return r.client.Call(ctx, ResourcePlan, VerbList, params.payload())
}

func (r *PlanResource) Update(ctx context.Context, id string, payload map[string]interface{}) (*Result, error) {
	payload = withArg(payload, "id", id)
	return r.client.Call(ctx, ResourcePlan, VerbUpdate, payload)
}

// PageResource covers the payment page verbs
type PageResource struct {
	client *Client
}

func (r *PageResource) Create(ctx context.Context, payload map[string]interface{}) (*Result, error) {
	return r.client.Call(ctx, ResourcePage, VerbCreate, payload)
}

func (r *PageResource) Fetch(ctx context.Context, id string) (*Result, error) {
	return r.client.Call(ctx, ResourcePage, VerbFetch, map[string]interface{}{"id": id})
}

func (r *PageResource) List(ctx context.Context, params *ListParams) (*Result, error) {
	return r.client.Call(ctx, ResourcePage, VerbList, params.payload())
}

func (r *PageResource) Update(ctx context.Context, id string, payload map[string]interface{}) (*Result, error) {
	payload = withArg(payload, "id", id)
	return r.client.Call(ctx, ResourcePage, VerbUpdate, payload)
}

// SubscriptionResource covers the subscription verbs
type SubscriptionResource struct {
	client *Client
}

func (r *SubscriptionResource) Create(ctx context.Context, payload map[string]interface{}) (*Result, error) {
	return r.client.Call(ctx, ResourceSubscription, VerbCreate, payload)
}

func (r *SubscriptionResource) Fetch(ctx context.Context, id string) (*Result, error) {
	return r.client.Call(ctx, ResourceSubscription, VerbFetch, map[string]interface{}{"id": id})
}

func (r *SubscriptionResource) List(ctx context.Context, params *ListParams) (*Result, error) {
	return r.client.Call(ctx, ResourceSubscription, VerbList, params.payload())
}

// Disable pauses a subscription using its code and email token
func (r *SubscriptionResource) Disable(ctx context.Context, code, token string) (*Result, error) {
	return r.client.Call(ctx, ResourceSubscription, VerbDisable, map[string]interface{}{
		"code":  code,
		"token": token,
	})
}

// Enable resumes a subscription using its code and email token
func (r *SubscriptionResource) Enable(ctx context.Context, code, token string) (*Result, error) {
	return r.client.Call(ctx, ResourceSubscription, VerbEnable, map[string]interface{}{
		"code":  code,
		"token": token,
	})
}

func withArg(payload map[string]interface{}, key string, value interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		out[k] = v
	}
	out[key] = value
	return out
}
