package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleFixture(t *testing.T) {
	fixture, err := DecodeFixture(bytes.NewReader(sampleFixture))
	require.NoError(t, err)

	seed, err := fixture.Catalog()
	require.NoError(t, err)

	assert.Len(t, seed.Vendors, 3)
	assert.Len(t, seed.Classes, 3)
	assert.Len(t, seed.SKUs, 6)
	assert.Len(t, seed.Levels, 7)

	var kit bool
	for _, s := range seed.SKUs {
		if s.Code == "SAMPLE-KIT" {
			kit = true
			assert.False(t, s.HasVendor())
		}
	}
	assert.True(t, kit)
}

func TestFixture_DeterministicIDs(t *testing.T) {
	first, err := DecodeFixture(bytes.NewReader(sampleFixture))
	require.NoError(t, err)
	second, err := DecodeFixture(bytes.NewReader(sampleFixture))
	require.NoError(t, err)

	a, err := first.Catalog()
	require.NoError(t, err)
	b, err := second.Catalog()
	require.NoError(t, err)

	for i := range a.SKUs {
		assert.Equal(t, a.SKUs[i].ID, b.SKUs[i].ID)
		assert.Equal(t, a.SKUs[i].ClassID, b.SKUs[i].ClassID)
	}
	assert.Equal(t, vendorID("ACME"), *a.SKUs[0].PreferredVendorID)
	assert.NotEqual(t, vendorID("ACME"), skuID("ACME"), "kinds do not collide")
}

func TestFixture_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
		wantErr string
	}{
		{
			name:    "unknown_field",
			fixture: `{"vendors":[],"classes":[],"skus":[],"extra":1}`,
			wantErr: "failed to decode",
		},
		{
			name:    "missing_vendor_name",
			fixture: `{"vendors":[{"code":"A"}],"classes":[],"skus":[]}`,
			wantErr: "invalid fixture",
		},
		{
			name:    "negative_inventory",
			fixture: `{"vendors":[],"classes":[{"name":"c","thresholds":{"mode":"overall"}}],"skus":[{"code":"S","name":"s","class":"c","inventory":{"main":-1}}]}`,
			wantErr: "invalid fixture",
		},
		{
			name:    "unknown_class",
			fixture: `{"vendors":[],"classes":[],"skus":[{"code":"S","name":"s","class":"nope"}]}`,
			wantErr: "unknown class",
		},
		{
			name:    "unknown_vendor",
			fixture: `{"vendors":[],"classes":[{"name":"c","thresholds":{"mode":"overall"}}],"skus":[{"code":"S","name":"s","class":"c","vendor":"X"}]}`,
			wantErr: "unknown vendor",
		},
		{
			name:    "bad_month",
			fixture: `{"vendors":[],"classes":[{"name":"c","thresholds":{"mode":"monthly","monthly":[{"month":13,"min_stock":1,"optimal_stock":2}]}}],"skus":[]}`,
			wantErr: "month must be between 1 and 12",
		},
		{
			name:    "duplicate_sku",
			fixture: `{"vendors":[],"classes":[{"name":"c","thresholds":{"mode":"overall"}}],"skus":[{"code":"S","name":"s","class":"c"},{"code":"S","name":"t","class":"c"}]}`,
			wantErr: "duplicate sku",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture, err := DecodeFixture(strings.NewReader(tt.fixture))
			if err == nil {
				_, err = fixture.Catalog()
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
