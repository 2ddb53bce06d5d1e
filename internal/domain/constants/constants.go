// Package constants holds cross-layer constant values.
package constants

// Pub/Sub provider names accepted by the event publisher configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Cart store provider names accepted by the persistence configuration.
const (
	CartStoreProviderMemory    = "memory"
	CartStoreProviderFirestore = "firestore"
)
