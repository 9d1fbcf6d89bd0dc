package service

// Broadcaster interface for WebSocket event broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastEvent(eventType string, payload interface{})
}
