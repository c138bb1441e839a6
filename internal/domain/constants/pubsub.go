// Package constants holds string identifiers shared between configuration and infrastructure.
package constants

// Pub/Sub providers accepted in pubsub.provider.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// PubSubAttr* are the message attribute keys set on every account event.
const (
	PubSubAttrEventType = "event_type"
	PubSubAttrUserID    = "user_id"
	PubSubAttrRequestID = "request_id"
)
