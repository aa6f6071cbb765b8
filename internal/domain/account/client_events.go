package account

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salon/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeClient = "Client"

// Event type constants
const (
	EventTypeClientCreated          = "ClientCreated"
	EventTypeClientUpdated          = "ClientUpdated"
	EventTypeClientContactAdded     = "ClientContactAdded"
	EventTypeClientCharged          = "ClientCharged"
	EventTypeClientPaymentProcessed = "ClientPaymentProcessed"
	EventTypeClientStatusChanged    = "ClientStatusChanged"
	EventTypeClientDeleted          = "ClientDeleted"
)

// ClientCreatedEvent is published when a new client account is created
type ClientCreatedEvent struct {
	shared.BaseDomainEvent
	ClientID     uuid.UUID    `json:"client_id"`
	CompanyName  string       `json:"company_name"`
	BusinessType BusinessType `json:"business_type"`
}

// NewClientCreatedEvent creates a new ClientCreatedEvent
func NewClientCreatedEvent(client *Client) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientCreated, AggregateTypeClient, client.ID),
		ClientID:        client.ID,
		CompanyName:     client.CompanyName,
		BusinessType:    client.BusinessType,
	}
}

// ClientUpdatedEvent is published when a client's details change
type ClientUpdatedEvent struct {
	shared.BaseDomainEvent
	ClientID    uuid.UUID `json:"client_id"`
	CompanyName string    `json:"company_name"`
}

// NewClientUpdatedEvent creates a new ClientUpdatedEvent
func NewClientUpdatedEvent(client *Client) *ClientUpdatedEvent {
	return &ClientUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientUpdated, AggregateTypeClient, client.ID),
		ClientID:        client.ID,
		CompanyName:     client.CompanyName,
	}
}

// ClientContactAddedEvent is published when a secondary contact is added
type ClientContactAddedEvent struct {
	shared.BaseDomainEvent
	ClientID     uuid.UUID `json:"client_id"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
}

// NewClientContactAddedEvent creates a new ClientContactAddedEvent
func NewClientContactAddedEvent(client *Client, contact ContactPerson) *ClientContactAddedEvent {
	return &ClientContactAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientContactAdded, AggregateTypeClient, client.ID),
		ClientID:        client.ID,
		ContactName:     contact.Name,
		ContactEmail:    contact.Email.String(),
	}
}

// ClientChargedEvent is published when a charge is recorded
type ClientChargedEvent struct {
	shared.BaseDomainEvent
	ClientID   uuid.UUID       `json:"client_id"`
	Amount     decimal.Decimal `json:"amount"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// NewClientChargedEvent creates a new ClientChargedEvent
func NewClientChargedEvent(client *Client, amount decimal.Decimal) *ClientChargedEvent {
	return &ClientChargedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientCharged, AggregateTypeClient, client.ID),
		ClientID:        client.ID,
		Amount:          amount,
		NewBalance:      client.CreditTerms.CurrentBalance(),
	}
}

// ClientPaymentProcessedEvent is published when a payment is recorded
type ClientPaymentProcessedEvent struct {
	shared.BaseDomainEvent
	ClientID   uuid.UUID       `json:"client_id"`
	Amount     decimal.Decimal `json:"amount"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// NewClientPaymentProcessedEvent creates a new ClientPaymentProcessedEvent
func NewClientPaymentProcessedEvent(client *Client, amount decimal.Decimal) *ClientPaymentProcessedEvent {
	return &ClientPaymentProcessedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientPaymentProcessed, AggregateTypeClient, client.ID),
		ClientID:        client.ID,
		Amount:          amount,
		NewBalance:      client.CreditTerms.CurrentBalance(),
	}
}

// ClientStatusChangedEvent is published when a client's status changes
type ClientStatusChangedEvent struct {
	shared.BaseDomainEvent
	ClientID  uuid.UUID    `json:"client_id"`
	OldStatus ClientStatus `json:"old_status"`
	NewStatus ClientStatus `json:"new_status"`
}

// NewClientStatusChangedEvent creates a new ClientStatusChangedEvent
func NewClientStatusChangedEvent(client *Client, oldStatus, newStatus ClientStatus) *ClientStatusChangedEvent {
	return &ClientStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientStatusChanged, AggregateTypeClient, client.ID),
		ClientID:        client.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// ClientDeletedEvent is published when a client is removed
type ClientDeletedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
}

// NewClientDeletedEvent creates a new ClientDeletedEvent
func NewClientDeletedEvent(clientID uuid.UUID) *ClientDeletedEvent {
	return &ClientDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientDeleted, AggregateTypeClient, clientID),
		ClientID:        clientID,
	}
}
