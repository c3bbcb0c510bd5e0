package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type ResendMailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

func NewResendMailer(apiKey, from string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key not set")
	}

	return &ResendMailer{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendReconciliationAlert notifies the admin that an order was accepted
// on an unverifiable payment confirmation and needs manual review.
func (m *ResendMailer) SendReconciliationAlert(
	ctx context.Context,
	toEmail string,
	orderNumber string,
	paymentID string,
) error {
	body := sendRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: "Order " + orderNumber + " needs payment reconciliation",
		HTML: fmt.Sprintf(`
			<p>Order <strong>%s</strong> was accepted with a payment confirmation
			whose signature did not verify.</p>
			<p>Provider payment id: <code>%s</code></p>
			<p>Check the payment in the provider dashboard before fulfilment.</p>
		`, orderNumber, paymentID),
	}

	b, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New(
			"failed to send reconciliation alert: " + buf.String(),
		)
	}

	return nil
}
