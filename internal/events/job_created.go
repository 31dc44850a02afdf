package events

var JobCreatedTopic = "JobCreatedEvent"

type JobCreated struct {
	JobID string
	Slug  string
	City  string
}
