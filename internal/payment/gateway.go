package payment

import (
	"context"
	"fmt"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
)

// ChargeResult is the gateway outcome of a charge attempt. A declined
// card is a result, not an error.
type ChargeResult struct {
	ChargeID       string
	Paid           bool
	FailureCode    string
	FailureMessage string
}

// Gateway abstracts the card processor.
type Gateway interface {
	Charge(ctx context.Context, amount int64, currency, cardToken string, metadata map[string]any) (*ChargeResult, error)
	Refund(ctx context.Context, chargeID string, amount int64) (string, error)
}

type OmiseGateway struct {
	client *omise.Client
}

func NewOmiseGateway(publicKey, secretKey string) (*OmiseGateway, error) {
	client, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("init omise client: %w", err)
	}
	return &OmiseGateway{client: client}, nil
}

// Charge creates a charge against a tokenized card. The omise client
// carries no context, so ctx is accepted only for interface symmetry.
func (g *OmiseGateway) Charge(_ context.Context, amount int64, currency, cardToken string, metadata map[string]any) (*ChargeResult, error) {
	charge := &omise.Charge{}
	op := &operations.CreateCharge{
		Amount:   amount,
		Currency: currency,
		Card:     cardToken,
		Metadata: metadata,
	}

	if err := g.client.Do(charge, op); err != nil {
		return nil, fmt.Errorf("omise create charge: %w", err)
	}

	result := &ChargeResult{
		ChargeID: charge.ID,
		Paid:     string(charge.Status) == "successful",
	}
	if charge.FailureCode != nil {
		result.FailureCode = *charge.FailureCode
	}
	if charge.FailureMessage != nil {
		result.FailureMessage = *charge.FailureMessage
	}

	return result, nil
}

// Refund refunds amount on the given charge and returns the processor
// refund ID.
func (g *OmiseGateway) Refund(_ context.Context, chargeID string, amount int64) (string, error) {
	refund := &omise.Refund{}
	op := &operations.CreateRefund{
		ChargeID: chargeID,
		Amount:   amount,
	}

	if err := g.client.Do(refund, op); err != nil {
		return "", fmt.Errorf("omise create refund: %w", err)
	}

	return refund.ID, nil
}
