package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageSetsOnlyMatchingParent(t *testing.T) {
	spotImg := NewImage("https://img/a.png", SpotTarget{SpotID: 4})
	assert.Equal(t, ImageKindSpot, spotImg.ImageType)
	require.NotNil(t, spotImg.SpotID)
	assert.Equal(t, uint(4), *spotImg.SpotID)
	assert.Nil(t, spotImg.ReviewID)

	reviewImg := NewImage("https://img/b.png", ReviewTarget{ReviewID: 9})
	assert.Equal(t, ImageKindReview, reviewImg.ImageType)
	require.NotNil(t, reviewImg.ReviewID)
	assert.Nil(t, reviewImg.SpotID)
}

func TestImageTargetRoundTrip(t *testing.T) {
	target, err := NewImage("u", ReviewTarget{ReviewID: 3}).Target()
	require.NoError(t, err)
	assert.Equal(t, ReviewTarget{ReviewID: 3}, target)
}

func TestImageTargetRejectsInconsistentColumns(t *testing.T) {
	id := uint(1)
	img := &Image{ImageType: ImageKindSpot, ReviewID: &id}
	_, err := img.Target()
	assert.Error(t, err)
	assert.Error(t, img.BeforeSave(nil))
}

func TestImageOwnerID(t *testing.T) {
	img := NewImage("u", SpotTarget{SpotID: 2})
	img.Spot = &Spot{ID: 2, OwnerID: 7}
	owner, err := img.OwnerID()
	require.NoError(t, err)
	assert.Equal(t, uint(7), owner)

	img = NewImage("u", ReviewTarget{ReviewID: 5})
	_, err = img.OwnerID()
	assert.Error(t, err, "review relation not loaded")

	img.Review = &Review{ID: 5, UserID: 11}
	owner, err = img.OwnerID()
	require.NoError(t, err)
	assert.Equal(t, uint(11), owner)
}
