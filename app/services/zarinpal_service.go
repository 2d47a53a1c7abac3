package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PaymentSuccessCode is the Zarinpal result code for a confirmed payment.
// Any other code is a business failure and is handed back to the caller
// untouched.
const PaymentSuccessCode = 100

const (
	zarinpalAPIBaseURL = "https://payment.zarinpal.com"
	zarinpalPayBaseURL = "https://www.zarinpal.com"

	zarinpalSandboxAPIBaseURL = "https://sandbox.zarinpal.com"
	zarinpalSandboxPayBaseURL = "https://sandbox.zarinpal.com"
)

type PaymentRequest struct {
	Amount      int64
	Description string
	CallbackURL string
	Email       string
	Mobile      string
}

// PaymentCreateResult is the gateway's answer to a create-session request.
// URL is empty when the gateway refused the request; Raw keeps the untouched
// response body for the caller to surface.
type PaymentCreateResult struct {
	Code      int
	Message   string
	Authority string
	URL       string
	Raw       string
}

// PaymentVerifyResult is the gateway's answer to a verify request.
type PaymentVerifyResult struct {
	Code    int
	Message string
	RefID   int64
	Raw     string
}

// PaymentGateway abstracts the two payment-provider operations the checkout
// flow needs.
type PaymentGateway interface {
	Create(ctx context.Context, req PaymentRequest) (*PaymentCreateResult, error)
	Verify(ctx context.Context, amount int64, authority string) (*PaymentVerifyResult, error)
}

// ZarinpalClient is a pass-through adapter over the Zarinpal v4 REST API.
// It performs no validation or retries of its own; gateway-reported business
// failures come back as results, only transport and decoding problems are
// errors.
type ZarinpalClient struct {
	merchantID string
	apiBaseURL string
	payBaseURL string
	client     *http.Client
}

func NewZarinpalClient(merchantID string, sandbox bool) *ZarinpalClient {
	apiBaseURL := zarinpalAPIBaseURL
	payBaseURL := zarinpalPayBaseURL
	if sandbox {
		apiBaseURL = zarinpalSandboxAPIBaseURL
		payBaseURL = zarinpalSandboxPayBaseURL
	}

	return &ZarinpalClient{
		merchantID: merchantID,
		apiBaseURL: apiBaseURL,
		payBaseURL: payBaseURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

type zarinpalData struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Authority string `json:"authority"`
	RefID     int64  `json:"ref_id"`
}

// UnmarshalJSON tolerates the gateway's habit of sending "data": [] instead
// of an object when the request was refused.
func (d *zarinpalData) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || b[0] != '{' {
		*d = zarinpalData{}
		return nil
	}
	type alias zarinpalData
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*d = zarinpalData(a)
	return nil
}

type zarinpalResponse struct {
	Data   zarinpalData    `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

func (z *ZarinpalClient) Create(ctx context.Context, req PaymentRequest) (*PaymentCreateResult, error) {
	payload := map[string]interface{}{
		"merchant_id":  z.merchantID,
		"amount":       req.Amount,
		"description":  req.Description,
		"callback_url": req.CallbackURL,
	}

	metadata := map[string]string{}
	if req.Email != "" {
		metadata["email"] = req.Email
	}
	if req.Mobile != "" {
		metadata["mobile"] = req.Mobile
	}
	if len(metadata) > 0 {
		payload["metadata"] = metadata
	}

	body, parsed, err := z.post(ctx, "/pg/v4/payment/request.json", payload)
	if err != nil {
		return nil, err
	}

	result := &PaymentCreateResult{
		Code:      parsed.Data.Code,
		Message:   parsed.Data.Message,
		Authority: parsed.Data.Authority,
		Raw:       string(body),
	}
	if parsed.Data.Code == PaymentSuccessCode && parsed.Data.Authority != "" {
		result.URL = fmt.Sprintf("%s/pg/StartPay/%s", z.payBaseURL, parsed.Data.Authority)
	}
	return result, nil
}

func (z *ZarinpalClient) Verify(ctx context.Context, amount int64, authority string) (*PaymentVerifyResult, error) {
	payload := map[string]interface{}{
		"merchant_id": z.merchantID,
		"amount":      amount,
		"authority":   authority,
	}

	body, parsed, err := z.post(ctx, "/pg/v4/payment/verify.json", payload)
	if err != nil {
		return nil, err
	}

	return &PaymentVerifyResult{
		Code:    parsed.Data.Code,
		Message: parsed.Data.Message,
		RefID:   parsed.Data.RefID,
		Raw:     string(body),
	}, nil
}

func (z *ZarinpalClient) post(ctx context.Context, endpoint string, payload map[string]interface{}) ([]byte, *zarinpalResponse, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode zarinpal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, z.apiBaseURL+endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build zarinpal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := z.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("zarinpal request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read zarinpal response: %w", err)
	}

	var parsed zarinpalResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, nil, fmt.Errorf("failed to decode zarinpal response: %s: %w", string(body), err)
	}

	return body, &parsed, nil
}
