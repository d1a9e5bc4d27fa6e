// Package command defines the envelope and payloads of ledger mutations submitted
// asynchronously over Kafka. The REST API binds the same payload types.
package command

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// Type selects the engine operation a command runs
type Type string

const (
	TypeCreateTransaction     Type = "CREATE_TRANSACTION"
	TypeUpdateTransaction     Type = "UPDATE_TRANSACTION"
	TypeDeleteTransaction     Type = "DELETE_TRANSACTION"
	TypeCreateBankTransaction Type = "CREATE_BANK_TRANSACTION"
	TypeUpdateBankTransaction Type = "UPDATE_BANK_TRANSACTION"
	TypeDeleteBankTransaction Type = "DELETE_BANK_TRANSACTION"
	TypeCreateSwap            Type = "CREATE_SWAP"
	TypeUpdateSwap            Type = "UPDATE_SWAP"
	TypeDeleteSwap            Type = "DELETE_SWAP"
	TypeCreateStockMovement   Type = "CREATE_STOCK_MOVEMENT"
	TypeUpdateStockMovement   Type = "UPDATE_STOCK_MOVEMENT"
	TypeDeleteStockMovement   Type = "DELETE_STOCK_MOVEMENT"
	TypeCreateAccount         Type = "CREATE_ACCOUNT"
	TypeSetDefaultAccount     Type = "SET_DEFAULT_ACCOUNT"
	TypeCreateBankAccount     Type = "CREATE_BANK_ACCOUNT"
	TypeSyncSequences         Type = "SYNC_SEQUENCES"
)

// Command is the Kafka envelope of one mutation. CommandID doubles as the idempotency key.
type Command struct {
	CommandID     uuid.UUID       `json:"command_id" validate:"required"`
	Type          Type            `json:"type" validate:"required,command_type"`
	ActorID       uuid.UUID       `json:"actor_id" validate:"required"`
	CorrelationID string          `json:"correlation_id,omitempty" validate:"max=128"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	IssuedAt      time.Time       `json:"issued_at"`
}

// New wraps payload in an envelope with a fresh command ID
func New(t Type, actorID uuid.UUID, correlationID string, payload any) (*Command, error) {
	cmd := &Command{
		CommandID:     uuid.New(),
		Type:          t,
		ActorID:       actorID,
		CorrelationID: correlationID,
		IssuedAt:      time.Now().UTC(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", t, err)
		}
		cmd.Payload = raw
	}
	if err := Validate(cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

// Parse decodes and validates an envelope. Payloads are decoded later by DecodePayload.
func Parse(data []byte) (*Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, shared.Invalid("command", "malformed JSON: %v", err)
	}
	if err := Validate(&cmd); err != nil {
		return nil, err
	}
	return &cmd, nil
}

// DecodePayload unmarshals the command payload into T and validates it
func DecodePayload[T any](cmd *Command) (*T, error) {
	var p T
	if len(cmd.Payload) == 0 {
		return nil, shared.Invalid("payload", "is required for %s", cmd.Type)
	}
	if err := json.Unmarshal(cmd.Payload, &p); err != nil {
		return nil, shared.Invalid("payload", "malformed %s payload: %v", cmd.Type, err)
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
