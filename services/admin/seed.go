package admin

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"mentorly/models"
)

// SeedFile is the YAML document accepted by `mentorly seed`.
//
//	mentors:
//	  - name: Rosalind
//	    expertise: [biology, chemistry]
//	students:
//	  - name: Sam
//	    area_of_interest: biology
type SeedFile struct {
	Mentors  []models.MentorInput  `yaml:"mentors"`
	Students []models.StudentInput `yaml:"students"`
}

// SeedReport lists the records a seed run created.
type SeedReport struct {
	Mentors  []models.Mentor  `json:"mentors"`
	Students []models.Student `json:"students"`
}

// LoadSeedFile reads and decodes a seed document from disk.
func LoadSeedFile(path string) (SeedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return SeedFile{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return DecodeSeed(f)
}

// DecodeSeed rejects unknown keys so a typo never silently drops data.
func DecodeSeed(r io.Reader) (SeedFile, error) {
	var seed SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && err != io.EOF {
		return SeedFile{}, fmt.Errorf("decode seed file: %w", err)
	}
	return seed, nil
}

// Seed registers every mentor and student in seed, stopping at the first failure.
func (a *DefaultAdminService) Seed(ctx context.Context, seed SeedFile) (*SeedReport, error) {
	report := &SeedReport{}
	for i, in := range seed.Mentors {
		m, err := a.RegisterMentor(ctx, in)
		if err != nil {
			return report, fmt.Errorf("seed mentor %d (%s): %w", i, in.Name, err)
		}
		report.Mentors = append(report.Mentors, *m)
	}
	for i, in := range seed.Students {
		s, err := a.RegisterStudent(ctx, in)
		if err != nil {
			return report, fmt.Errorf("seed student %d (%s): %w", i, in.Name, err)
		}
		report.Students = append(report.Students, *s)
	}
	return report, nil
}
