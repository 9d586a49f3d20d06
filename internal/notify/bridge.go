package notify

import (
	"recruitflow-go/internal/realtime"
)

// socket payload types as the backend names them
const (
	typeNotification        = "notification"
	typeCandidateUpdated    = "candidate_updated"
	typeProcessUpdated      = "process_updated"
	typeEvaluationCompleted = "evaluation_completed"
)

var topicForType = map[string]string{
	typeNotification:        TopicNotification,
	typeCandidateUpdated:    TopicCandidateUpdated,
	typeProcessUpdated:      TopicProcessUpdated,
	typeEvaluationCompleted: TopicEvaluationCompleted,
}

// Bridge republishes inbound socket frames onto the hub. Known payload
// types land on their own topic; everything else goes to TopicNotification
// so nothing is silently lost. Delivery is async to keep the socket read
// loop unblocked. The returned handle detaches the bridge via channel.Off.
func Bridge(channel *realtime.Channel, hub *Hub) *realtime.Subscription {
	return channel.On(realtime.EventMessage, func(payload map[string]any) {
		topic := TopicNotification
		if typeName, ok := payload["type"].(string); ok {
			if mapped, known := topicForType[typeName]; known {
				topic = mapped
			}
		}
		hub.PublishAsync(topic, payload)
	})
}
