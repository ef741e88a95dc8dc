// Package payment is the provider integration shim. Order creation and
// the signature algorithm belong to the provider; the engine only relies
// on the confirmation protocol implemented here.
package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

type Provider interface {
	// CreateOrder registers a payable order with the provider and returns
	// its order id. receipt is the booking reference, for reconciliation.
	CreateOrder(ctx context.Context, amount float64, receipt string) (string, error)
	// VerifySignature checks a confirmation callback against the order it
	// claims to settle.
	VerifySignature(orderID, paymentID, signature string) bool
}

// HMACProvider verifies confirmations with HMAC-SHA256 over
// "orderID|paymentID", the scheme used by hosted-checkout providers.
type HMACProvider struct {
	secret []byte
}

func NewHMACProvider(secret string) *HMACProvider {
	return &HMACProvider{secret: []byte(secret)}
}

func (p *HMACProvider) CreateOrder(ctx context.Context, amount float64, receipt string) (string, error) {
	// No remote call in this integration; the id is minted locally and
	// handed to the client for the hosted checkout.
	return fmt.Sprintf("order_%s", uuid.New().String()), nil
}

func (p *HMACProvider) VerifySignature(orderID, paymentID, signature string) bool {
	expected := p.Sign(orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the signature the provider would send for a confirmation.
func (p *HMACProvider) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, p.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
