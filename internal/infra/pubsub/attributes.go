package pubsub

import (
	"donorhub/internal/domain/constants"
	"donorhub/internal/domain/service"
)

// eventAttributes builds the message attributes subscribers filter on.
func eventAttributes(event *service.AccountEvent) map[string]string {
	attributes := map[string]string{
		constants.PubSubAttrEventType: string(event.Type),
		constants.PubSubAttrUserID:    event.UserID,
	}
	if event.RequestID != "" {
		attributes[constants.PubSubAttrRequestID] = event.RequestID
	}

	return attributes
}
