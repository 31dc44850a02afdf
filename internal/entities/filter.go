package entities

// JobFilter narrows radius queries. Zero values mean "no constraint".
type JobFilter struct {
	Industry   Industry
	JobType    JobType
	Experience Experience
}
