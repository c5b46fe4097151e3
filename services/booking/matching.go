package booking

import (
	"fmt"

	"mentorly/models"
)

// IsEligible reports whether a mentor with the given expertise may take a
// student interested in interest.
func IsEligible(expertise models.ExpertiseSet, interest string) bool {
	return expertise.Contains(interest)
}

// CheckEligibility matches mentor against student. Expertise that is not a
// valid set is a data-integrity fault, never a plain rejection.
func CheckEligibility(mentor *models.Mentor, student *models.Student) error {
	if err := mentor.Expertise.Validate(); err != nil {
		return dataIntegrity(fmt.Sprintf("mentor %s has malformed expertise", mentor.ID), err)
	}
	if !IsEligible(mentor.Expertise, student.AreaOfInterest) {
		return &BookingError{
			Kind:    KindIneligible,
			Message: fmt.Sprintf("mentor %s does not have expertise in %q", mentor.ID, student.AreaOfInterest),
		}
	}
	return nil
}
