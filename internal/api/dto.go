package api

import (
	"time"

	"github.com/samber/lo"

	"github.com/dstrelkov/jobdeck/internal/entities"
	"github.com/dstrelkov/jobdeck/internal/services"
)

type createJobDTO struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Email        string     `json:"email,omitempty"`
	Address      string     `json:"address"`
	Company      string     `json:"company"`
	Industries   []string   `json:"industry"`
	JobType      string     `json:"jobType"`
	MinEducation string     `json:"minEducation"`
	Positions    *int       `json:"positions,omitempty"`
	Experience   string     `json:"experience"`
	Salary       *float64   `json:"salary"`
	PostingDate  *time.Time `json:"postingDate,omitempty"`
	LastDate     *time.Time `json:"lastDate,omitempty"`
	UserID       string     `json:"userId,omitempty"`
}

func (dto createJobDTO) toInput() entities.JobInput {
	return entities.JobInput{
		Title:        dto.Title,
		Description:  dto.Description,
		Email:        dto.Email,
		Address:      dto.Address,
		Company:      dto.Company,
		Industries:   dto.Industries,
		JobType:      dto.JobType,
		MinEducation: dto.MinEducation,
		Positions:    dto.Positions,
		Experience:   dto.Experience,
		Salary:       dto.Salary,
		PostingDate:  dto.PostingDate,
		LastDate:     dto.LastDate,
		UserID:       dto.UserID,
	}
}

type updateJobDTO struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Email        *string    `json:"email,omitempty"`
	Address      *string    `json:"address,omitempty"`
	Company      *string    `json:"company,omitempty"`
	Industries   []string   `json:"industry,omitempty"`
	JobType      *string    `json:"jobType,omitempty"`
	MinEducation *string    `json:"minEducation,omitempty"`
	Positions    *int       `json:"positions,omitempty"`
	Experience   *string    `json:"experience,omitempty"`
	Salary       *float64   `json:"salary,omitempty"`
	LastDate     *time.Time `json:"lastDate,omitempty"`
}

func (dto updateJobDTO) toInput() services.UpdateJobInput {
	return services.UpdateJobInput{
		Title:        dto.Title,
		Description:  dto.Description,
		Email:        dto.Email,
		Address:      dto.Address,
		Company:      dto.Company,
		Industries:   dto.Industries,
		JobType:      dto.JobType,
		MinEducation: dto.MinEducation,
		Positions:    dto.Positions,
		Experience:   dto.Experience,
		Salary:       dto.Salary,
		LastDate:     dto.LastDate,
	}
}

type locationResp struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formattedAddress,omitempty"`
	City             string  `json:"city,omitempty"`
	State            string  `json:"state,omitempty"`
	ZipCode          string  `json:"zipCode,omitempty"`
	CountryCode      string  `json:"countryCode,omitempty"`
}

// jobResp is the default read projection; applicantsApplied is deliberately
// absent from it.
type jobResp struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug"`
	Description  string        `json:"description"`
	Email        string        `json:"email,omitempty"`
	Address      string        `json:"address"`
	Location     *locationResp `json:"location,omitempty"`
	Company      string        `json:"company"`
	Industries   []string      `json:"industry"`
	JobType      string        `json:"jobType"`
	MinEducation string        `json:"minEducation"`
	Positions    int           `json:"positions"`
	Experience   string        `json:"experience"`
	Salary       float64       `json:"salary"`
	PostingDate  time.Time     `json:"postingDate"`
	LastDate     time.Time     `json:"lastDate"`
	UserID       string        `json:"userId,omitempty"`
}

func toJobResp(job *entities.Job) jobResp {

	resp := jobResp{
		ID:          job.ID,
		Title:       job.Title,
		Slug:        job.Slug,
		Description: job.Description,
		Email:       job.Email,
		Address:     job.Address,
		Company:     job.Company,
		Industries: lo.Map(job.IndustriesAsArray(), func(item entities.Industry, _ int) string {
			return string(item)
		}),
		JobType:      string(job.JobType),
		MinEducation: string(job.MinEducation),
		Positions:    job.Positions,
		Experience:   string(job.Experience),
		Salary:       job.Salary,
		PostingDate:  job.PostingDate,
		LastDate:     job.LastDate,
		UserID:       job.UserID,
	}

	if job.Location != nil {
		resp.Location = &locationResp{
			Latitude:         job.Location.Latitude,
			Longitude:        job.Location.Longitude,
			FormattedAddress: job.Location.FormattedAddress,
			City:             job.Location.City,
			State:            job.Location.State,
			ZipCode:          job.Location.ZipCode,
			CountryCode:      job.Location.CountryCode,
		}
	}

	return resp
}
