package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// RemoteOrder is the payment-intent object created on the gateway side
type RemoteOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Client is the payment gateway adapter. CreateOrder registers a remote
// payment intent for a charge amount; VerifySignature checks a
// client-returned payment confirmation against the gateway secret.
type Client interface {
	CreateOrder(ctx context.Context, amount float64, currency, receipt string, notes map[string]string) (*RemoteOrder, error)
	VerifySignature(remoteOrderID, paymentID, signature string) bool
	KeyID() string
}

type razorpayClient struct {
	http      *resty.Client
	keyID     string
	keySecret string
}

// NewRazorpayClient builds a gateway client authenticated with the
// Razorpay key pair. Calls are not retried; a failure surfaces to the
// caller as an error.
func NewRazorpayClient(keyID, keySecret string) Client {
	http := resty.New().
		SetBaseURL("https://api.razorpay.com/v1").
		SetBasicAuth(keyID, keySecret).
		SetTimeout(30 * time.Second)

	return &razorpayClient{
		http:      http,
		keyID:     keyID,
		keySecret: keySecret,
	}
}

func (c *razorpayClient) KeyID() string {
	return c.keyID
}

// CreateOrder creates a remote payment order for the given amount.
// The amount is converted to the currency's smallest unit (paise).
func (c *razorpayClient) CreateOrder(ctx context.Context, amount float64, currency, receipt string, notes map[string]string) (*RemoteOrder, error) {
	body := map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)),
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		body["notes"] = notes
	}

	var remote RemoteOrder
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&remote).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("razorpay order creation failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("razorpay order creation failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	log.WithFields(logrus.Fields{
		"remote_order_id": remote.ID,
		"amount":          remote.Amount,
		"currency":        remote.Currency,
	}).Info("Razorpay order created")

	return &remote, nil
}

// VerifySignature recomputes the expected HMAC-SHA256 over
// "<remoteOrderID>|<paymentID>" and compares it to the supplied
// signature in constant time.
func (c *razorpayClient) VerifySignature(remoteOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(remoteOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
