package adapter

import "context"

type SMSDeliveryStatus string

const (
	SMSDelivered SMSDeliveryStatus = "delivered"
	SMSQueued    SMSDeliveryStatus = "queued"
	SMSFailed    SMSDeliveryStatus = "failed"
)

// SMSGateway sends one text message. The returned status is logged by the
// caller, never retried.
type SMSGateway interface {
	Send(ctx context.Context, number, message string) (SMSDeliveryStatus, error)
}
