package entities

import "fmt"

type Industry string

const (
	IndustryBusiness  Industry = "Business"
	IndustryIT        Industry = "Information Technology"
	IndustryBanking   Industry = "Banking"
	IndustryEducation Industry = "Education/Training"
	IndustryTelecom   Industry = "Telecommunication"
	IndustryOthers    Industry = "Others"
)

func ToIndustry(s string) (Industry, error) {
	switch s {
	case string(IndustryBusiness):
		return IndustryBusiness, nil
	case string(IndustryIT):
		return IndustryIT, nil
	case string(IndustryBanking):
		return IndustryBanking, nil
	case string(IndustryEducation):
		return IndustryEducation, nil
	case string(IndustryTelecom):
		return IndustryTelecom, nil
	case string(IndustryOthers):
		return IndustryOthers, nil
	default:
		return "", fmt.Errorf("invalid industry: %v", s)
	}
}

type JobType string

const (
	Permanent  JobType = "Permanent"
	Temporary  JobType = "Temporary"
	Internship JobType = "Internship"
)

func ToJobType(s string) (JobType, error) {
	switch s {
	case string(Permanent):
		return Permanent, nil
	case string(Temporary):
		return Temporary, nil
	case string(Internship):
		return Internship, nil
	default:
		return "", fmt.Errorf("invalid job type: %v", s)
	}
}

type Education string

const (
	Bachelors Education = "Bachelors"
	Masters   Education = "Masters"
	PhD       Education = "PhD"
)

func ToEducation(s string) (Education, error) {
	switch s {
	case string(Bachelors):
		return Bachelors, nil
	case string(Masters):
		return Masters, nil
	case string(PhD):
		return PhD, nil
	default:
		return "", fmt.Errorf("invalid education: %v", s)
	}
}

// Experience bands, ordered from least to most.
type Experience string

const (
	NoExperience Experience = "No Experience"
	OneToTwo     Experience = "1-2 years experience"
	TwoToFive    Experience = "2-5 years experience"
	FivePlus     Experience = "5+ years experience"
)

func ToExperience(s string) (Experience, error) {
	switch s {
	case string(NoExperience):
		return NoExperience, nil
	case string(OneToTwo):
		return OneToTwo, nil
	case string(TwoToFive):
		return TwoToFive, nil
	case string(FivePlus):
		return FivePlus, nil
	default:
		return "", fmt.Errorf("invalid experience: %v", s)
	}
}
