package models

// MentorInput is the registration payload for a mentor.
type MentorInput struct {
	Name      string   `json:"name" yaml:"name" binding:"required"`
	Expertise []string `json:"expertise" yaml:"expertise" binding:"required,min=1"`
	Premium   bool     `json:"premium" yaml:"premium"`
}

// StudentInput is the registration payload for a student.
type StudentInput struct {
	Name           string `json:"name" yaml:"name" binding:"required"`
	AreaOfInterest string `json:"area_of_interest" yaml:"area_of_interest" binding:"required"`
}

// DeleteSummary reports how many rows a bulk delete removed.
type DeleteSummary struct {
	Deleted int64 `json:"deleted"`
}
