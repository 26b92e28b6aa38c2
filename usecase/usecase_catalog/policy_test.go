package usecase_catalog

import (
	"testing"
	"time"

	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/stretchr/testify/assert"
)

func TestRefreshPolicy(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	policy := DefaultRefreshPolicy().WithClock(func() time.Time { return now })
	days := func(n int) time.Time { return now.Add(-time.Duration(n) * 24 * time.Hour) }

	cases := []struct {
		name    string
		updated time.Time
		status  catalog_models.BandStatus
		want    Freshness
	}{
		{"active 20 days", days(20), catalog_models.BandStatusActive, Stale},
		{"active 5 days", days(5), catalog_models.BandStatusActive, Fresh},
		{"exactly at threshold", days(15), catalog_models.BandStatusActive, Fresh},
		{"on hold lower case", days(20), "on hold", Stale},
		{"unknown", days(40), catalog_models.BandStatusUnknown, Stale},
		{"split-up never refreshes", days(400), catalog_models.BandStatusSplitUp, Fresh},
		{"changed name never refreshes", days(400), catalog_models.BandStatusChangedName, Fresh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.ClassifyBand(tc.updated, tc.status))
		})
	}

	assert.Equal(t, Stale, policy.Classify(days(16)))
	assert.Equal(t, Fresh, policy.Classify(days(1)))
}

func TestNewRefreshPolicy_Defaults(t *testing.T) {
	policy := NewRefreshPolicy(0, nil)
	assert.Equal(t, DefaultStaleAfter, policy.StaleAfter)
	assert.True(t, policy.Eligible(catalog_models.BandStatusOnHold))
	assert.False(t, policy.Eligible(catalog_models.BandStatusSplitUp))
}
