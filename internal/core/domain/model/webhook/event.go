// Package webhook models the durable log of payment gateway notifications. Every
// call to the webhook endpoint becomes an Event before it is acknowledged, so
// failures stay visible to operators and can be replayed.
package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"checkout/internal/pkg/errs"
)

var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

// PaymentNotificationType is the only notification type that is processed.
const PaymentNotificationType = "payment"

// Disposition is the outcome of handling an event.
type Disposition int

const (
	UnknownDisposition Disposition = iota
	Received
	Processed
	Ignored
	UnknownTransaction
	Rejected
	Failed
)

func getDispositionStrings() map[Disposition]string {
	return map[Disposition]string{
		Received:           "received",
		Processed:          "processed",
		Ignored:            "ignored",
		UnknownTransaction: "unknown_transaction",
		Rejected:           "rejected",
		Failed:             "failed",
	}
}

func (d Disposition) String() string {
	if s, ok := getDispositionStrings()[d]; ok {
		return s
	}
	return "unknown"
}

func ParseDisposition(s string) (Disposition, error) {
	for d, name := range getDispositionStrings() {
		if name == s {
			return d, nil
		}
	}
	return UnknownDisposition, errs.NewValueIsInvalidErrorWithCause("disposition", fmt.Errorf("%q is not a valid disposition", s))
}

// Notification is the only part of a webhook body that is trusted: what kind
// of resource changed and its gateway id.
type Notification struct {
	Type       string
	ExternalID string
}

type notificationBody struct {
	Type string `json:"type"`
	Data struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

// ParseNotification extracts {type, data.id} from a raw webhook body. The id
// may be sent as a JSON string or number. Every other field is ignored.
func ParseNotification(body []byte) (Notification, error) {
	var raw notificationBody
	if err := json.Unmarshal(body, &raw); err != nil {
		return Notification{}, errs.NewValueIsInvalidErrorWithCause("webhook body", err)
	}

	n := Notification{Type: strings.TrimSpace(raw.Type)}
	if n.Type == "" {
		return Notification{}, errs.NewValueIsRequiredError("webhook type")
	}

	id := bytes.TrimSpace(raw.Data.ID)
	if len(id) > 0 && !bytes.Equal(id, []byte("null")) {
		var s string
		if err := json.Unmarshal(id, &s); err == nil {
			n.ExternalID = strings.TrimSpace(s)
		} else {
			var num json.Number
			if err = json.Unmarshal(id, &num); err != nil {
				return Notification{}, errs.NewValueIsInvalidErrorWithCause("webhook data.id", err)
			}
			n.ExternalID = num.String()
		}
	}

	return n, nil
}

// Event is one received webhook call.
type Event struct {
	id          int64
	eventType   string
	externalID  string
	body        []byte
	disposition Disposition
	lastError   string
	attempts    int
	receivedAt  time.Time
	processedAt *time.Time

	isConstructed bool
}

func NewEvent(id int64, body []byte, at time.Time) (*Event, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("event id", fmt.Errorf("%d is not positive", id))
	}
	return &Event{
		id:            id,
		body:          append([]byte(nil), body...),
		disposition:   Received,
		receivedAt:    at,
		isConstructed: true,
	}, nil
}

// State is the persisted form used by RestoreEvent.
type State struct {
	ID          int64
	EventType   string
	ExternalID  string
	Body        []byte
	Disposition Disposition
	LastError   string
	Attempts    int
	ReceivedAt  time.Time
	ProcessedAt *time.Time
}

func RestoreEvent(state State) (*Event, error) {
	if state.ID <= 0 {
		return nil, errs.NewValueIsInvalidError("event id")
	}
	return &Event{
		id:            state.ID,
		eventType:     state.EventType,
		externalID:    state.ExternalID,
		body:          state.Body,
		disposition:   state.Disposition,
		lastError:     state.LastError,
		attempts:      state.Attempts,
		receivedAt:    state.ReceivedAt,
		processedAt:   state.ProcessedAt,
		isConstructed: true,
	}, nil
}

func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

func (e *Event) ID() int64 { return e.id }
func (e *Event) EventType() string { return e.eventType }
func (e *Event) ExternalID() string { return e.externalID }
func (e *Event) Body() []byte { return e.body }
func (e *Event) Disposition() Disposition { return e.disposition }
func (e *Event) LastError() string { return e.lastError }
func (e *Event) Attempts() int { return e.attempts }
func (e *Event) ReceivedAt() time.Time { return e.receivedAt }
func (e *Event) ProcessedAt() *time.Time { return e.processedAt }

// Identify stores the parsed notification.
func (e *Event) Identify(n Notification) {
	e.eventType = n.Type
	e.externalID = n.ExternalID
}

// Resolve records the outcome of one handling attempt.
func (e *Event) Resolve(d Disposition, cause error, at time.Time) {
	processed := at
	e.attempts++
	e.disposition = d
	e.lastError = ""
	if cause != nil {
		e.lastError = cause.Error()
	}
	e.processedAt = &processed
}

// IsRetryable reports whether handling failed for a transient reason.
func (e *Event) IsRetryable() bool {
	return e.disposition == Failed
}
