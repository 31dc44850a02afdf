package entities

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const defaultPostingWindow = 7 * 24 * time.Hour

var validate = validator.New()

// Applicant is an opaque application record attached to a posting. It is
// never included in default read projections.
type Applicant struct {
	UserID    string    `json:"userId"`
	ResumeID  string    `json:"resumeId"`
	AppliedAt time.Time `json:"appliedAt"`
}

// Job is one posting. Slug and Location are derived fields: the slug comes
// from the title alone and the location from geocoding the address. Neither
// is ever accepted from a caller, and both are recomputed whenever their
// source field changes.
type Job struct {
	ID                string `gorm:"primaryKey"`
	Title             string
	Slug              string
	Description       string
	Email             string
	Address           string
	Location          *GeoPoint `gorm:"embedded;embeddedPrefix:loc_"`
	Company           string
	Industries        string
	JobType           JobType
	MinEducation      Education
	Positions         int
	Experience        Experience
	Salary            float64
	PostingDate       time.Time
	LastDate          time.Time
	ApplicantsApplied []Applicant `gorm:"serializer:json"`
	UserID            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// JobInput is the raw field set handed over by the transport layer. Pointer
// fields distinguish "absent" from a zero value.
type JobInput struct {
	Title        string   `validate:"required,max=100"`
	Description  string   `validate:"required,max=1000"`
	Email        string   `validate:"omitempty,email"`
	Address      string   `validate:"required"`
	Company      string   `validate:"required"`
	Industries   []string `validate:"required,min=1"`
	JobType      string   `validate:"required"`
	MinEducation string   `validate:"required"`
	Experience   string   `validate:"required"`
	Salary       *float64 `validate:"required"`
	Positions    *int
	PostingDate  *time.Time
	LastDate     *time.Time
	UserID       string
}

// NewJob validates the input and builds a candidate posting. All violations
// are collected and returned together as a single ValidationError. The
// returned job is not yet enriched: Slug and Location are empty.
func NewJob(input JobInput) (*Job, error) {

	input.Title = strings.TrimSpace(input.Title)

	violations := validateFields(input)
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	industries := lo.Map(input.Industries, func(item string, _ int) string {
		industry, _ := ToIndustry(item)
		return string(industry)
	})
	jobType, _ := ToJobType(input.JobType)
	education, _ := ToEducation(input.MinEducation)
	experience, _ := ToExperience(input.Experience)

	positions := 1
	if input.Positions != nil {
		positions = *input.Positions
	}

	postingDate := time.Now().UTC()
	if input.PostingDate != nil {
		postingDate = *input.PostingDate
	}

	lastDate := postingDate.Add(defaultPostingWindow)
	if input.LastDate != nil {
		lastDate = *input.LastDate
	}

	return &Job{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Description:  input.Description,
		Email:        input.Email,
		Address:      input.Address,
		Company:      input.Company,
		Industries:   strings.Join(industries, ","),
		JobType:      jobType,
		MinEducation: education,
		Positions:    positions,
		Experience:   experience,
		Salary:       *input.Salary,
		PostingDate:  postingDate,
		LastDate:     lastDate,
		UserID:       input.UserID,
	}, nil
}

func validateFields(input JobInput) []FieldViolation {

	var violations []FieldViolation

	if err := validate.Struct(input); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			violations = append(violations, FieldViolation{
				Field:  fieldErr.Field(),
				Reason: reasonFor(fieldErr),
			})
		}
	}

	for _, industry := range input.Industries {
		if _, err := ToIndustry(industry); err != nil {
			violations = append(violations, FieldViolation{Field: "Industries", Reason: err.Error()})
		}
	}
	if input.JobType != "" {
		if _, err := ToJobType(input.JobType); err != nil {
			violations = append(violations, FieldViolation{Field: "JobType", Reason: err.Error()})
		}
	}
	if input.MinEducation != "" {
		if _, err := ToEducation(input.MinEducation); err != nil {
			violations = append(violations, FieldViolation{Field: "MinEducation", Reason: err.Error()})
		}
	}
	if input.Experience != "" {
		if _, err := ToExperience(input.Experience); err != nil {
			violations = append(violations, FieldViolation{Field: "Experience", Reason: err.Error()})
		}
	}
	if input.Salary != nil && *input.Salary < 0 {
		violations = append(violations, FieldViolation{Field: "Salary", Reason: "must be non-negative"})
	}
	if input.Positions != nil && *input.Positions < 0 {
		violations = append(violations, FieldViolation{Field: "Positions", Reason: "must be non-negative"})
	}

	return violations
}

func reasonFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "max":
		return "can not exceed " + fieldErr.Param() + " characters"
	case "min":
		return "must not be empty"
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}

func (j *Job) IndustriesAsArray() []Industry {
	if j.Industries == "" {
		return []Industry{}
	}
	return lo.Map(strings.Split(j.Industries, ","), func(item string, _ int) Industry {
		return Industry(item)
	})
}

// HasIndustry reports whether the posting lists the given industry.
func (j *Job) HasIndustry(industry Industry) bool {
	return lo.Contains(j.IndustriesAsArray(), industry)
}

// SetIndustries replaces the industry set from raw strings. Membership is
// checked by Validate.
func (j *Job) SetIndustries(industries []string) {
	j.Industries = strings.Join(industries, ",")
}

// Validate re-checks every field rule against the current state of the
// record; used after updates, where fields may have been replaced with
// arbitrary caller input.
func (j *Job) Validate() error {

	salary := j.Salary
	positions := j.Positions

	input := JobInput{
		Title:       j.Title,
		Description: j.Description,
		Email:       j.Email,
		Address:     j.Address,
		Company:     j.Company,
		Industries: lo.Map(j.IndustriesAsArray(), func(item Industry, _ int) string {
			return string(item)
		}),
		JobType:      string(j.JobType),
		MinEducation: string(j.MinEducation),
		Experience:   string(j.Experience),
		Salary:       &salary,
		Positions:    &positions,
	}

	if violations := validateFields(input); len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
