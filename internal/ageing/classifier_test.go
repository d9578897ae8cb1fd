package ageing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textilehub/textilehub/internal/invoice"
)

func inv(buyer, mfg string, amount float64, ageingDays int) invoice.Invoice {
	return invoice.Invoice{
		Buyer:  buyer,
		Mfg:    mfg,
		Amount: amount,
		Ageing: ageingDays,
		Status: invoice.StatusUnpaid,
	}
}

func TestBucketForBoundaries(t *testing.T) {
	cases := []struct {
		days   int
		bucket Bucket
		ok     bool
	}{
		{-5, BucketNotDue, true},
		{0, BucketNotDue, true},
		{1, Bucket0To7, true},
		{7, Bucket0To7, true},
		{8, Bucket8To30, true},
		{30, Bucket8To30, true},
		{31, Bucket30To200, true},
		{200, Bucket30To200, true},
		{201, "", false},
		{500, "", false},
	}
	for _, tc := range cases {
		bucket, ok := BucketFor(tc.days)
		assert.Equal(t, tc.ok, ok, "days=%d", tc.days)
		if tc.ok {
			assert.Equal(t, tc.bucket, bucket, "days=%d", tc.days)
		}
	}
}

func TestBucketsArePartition(t *testing.T) {
	// Every bucketed ageing value lands in exactly one bucket.
	for days := -400; days <= 200; days++ {
		matches := 0
		for _, b := range []Bucket{BucketNotDue, Bucket0To7, Bucket8To30, Bucket30To200} {
			if InBucket(invoice.Invoice{Ageing: days}, b) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "days=%d", days)
	}
	for _, days := range []int{201, 250, 1000} {
		for _, b := range []Bucket{BucketNotDue, Bucket0To7, Bucket8To30, Bucket30To200} {
			assert.False(t, InBucket(invoice.Invoice{Ageing: days}, b), "days=%d bucket=%s", days, b)
		}
	}
}

func TestClassifyAccumulatesBothSides(t *testing.T) {
	result := Classify([]invoice.Invoice{
		inv("Shree Textiles", "Kamal Fabrics", 1000, -3),
		inv("Shree Textiles", "Kamal Fabrics", 500, 5),
		inv("Shree Textiles", "Radha Mills", 250, 15),
		inv("Mehta & Sons", "Kamal Fabrics", 900, 45),
	})

	require.Len(t, result.BuyerAgeing, 2)
	require.Len(t, result.MfgAgeing, 2)

	shree := result.BuyerAgeing[0]
	assert.Equal(t, "Shree Textiles", shree.Firm)
	assert.Equal(t, 1750.0, shree.Total)
	assert.Equal(t, 1000.0, shree.NotDue)
	assert.Equal(t, 500.0, shree.Days0To7)
	assert.Equal(t, 250.0, shree.Days8To30)
	assert.Equal(t, 0.0, shree.Days30To200)

	kamal := result.MfgAgeing[0]
	assert.Equal(t, "Kamal Fabrics", kamal.Firm)
	assert.Equal(t, 2400.0, kamal.Total)
	assert.Equal(t, 900.0, kamal.Days30To200)
}

func TestClassifyKeepsInsertionOrder(t *testing.T) {
	result := Classify([]invoice.Invoice{
		inv("Zeta", "M1", 10, 1),
		inv("Alpha", "M2", 20, 1),
		inv("Zeta", "M1", 30, 1),
	})
	require.Len(t, result.BuyerAgeing, 2)
	assert.Equal(t, "Zeta", result.BuyerAgeing[0].Firm)
	assert.Equal(t, "Alpha", result.BuyerAgeing[1].Firm)
}

func TestClassifyPast200DaysCountsTotalOnly(t *testing.T) {
	result := Classify([]invoice.Invoice{
		inv("Shree Textiles", "Kamal Fabrics", 5000, 217),
		inv("Shree Textiles", "Kamal Fabrics", 100, 3),
	})

	rec := result.BuyerAgeing[0]
	assert.Equal(t, 5100.0, rec.Total)
	assert.Equal(t, 100.0, rec.BucketSum())
	assert.Equal(t, 5000.0, rec.Discrepancy())
	assert.True(t, rec.HasDiscrepancy())
}

func TestHasDiscrepancyToleratesRounding(t *testing.T) {
	rec := Record{Firm: "X", Total: 100.8, NotDue: 100}
	assert.False(t, rec.HasDiscrepancy())

	rec.Total = 101.2
	assert.True(t, rec.HasDiscrepancy())
}

func TestClassifyEmptyFirmGroupsTogether(t *testing.T) {
	result := Classify([]invoice.Invoice{
		inv("", "M1", 10, 1),
		inv("", "M2", 20, 1),
	})
	require.Len(t, result.BuyerAgeing, 1)
	assert.Equal(t, "", result.BuyerAgeing[0].Firm)
	assert.Equal(t, 30.0, result.BuyerAgeing[0].Total)
}

func TestParseBucket(t *testing.T) {
	for _, raw := range []string{"notDue", "days0_7", "days8_30", "days30_200"} {
		b, ok := ParseBucket(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, Bucket(raw), b)
	}
	_, ok := ParseBucket("days200plus")
	assert.False(t, ok)
}
