package booking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorly/models"
)

func TestIsEligible(t *testing.T) {
	expertise, err := models.NewExpertiseSet("math", "physics")
	require.NoError(t, err)

	assert.True(t, IsEligible(expertise, "math"))
	assert.True(t, IsEligible(expertise, " Physics "))
	assert.False(t, IsEligible(expertise, "art"))
	assert.False(t, IsEligible(nil, "math"))
}

func TestCheckEligibility(t *testing.T) {
	expertise, err := models.NewExpertiseSet("biology")
	require.NoError(t, err)
	mentor := &models.Mentor{ID: "m1", Expertise: expertise}

	require.NoError(t, CheckEligibility(mentor, &models.Student{ID: "s1", AreaOfInterest: "biology"}))

	err = CheckEligibility(mentor, &models.Student{ID: "s2", AreaOfInterest: "art"})
	assert.True(t, errors.Is(err, ErrIneligible))

	corrupt := &models.Mentor{ID: "m2", Expertise: models.ExpertiseSet{"zoology", "Biology"}}
	err = CheckEligibility(corrupt, &models.Student{ID: "s1", AreaOfInterest: "biology"})
	assert.Equal(t, KindDataIntegrity, KindOf(err))
}
