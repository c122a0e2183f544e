package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AssetCategory is the user-facing asset classification.
type AssetCategory string

const (
	CategoryLiquid     AssetCategory = "Liquid"
	CategoryDebt       AssetCategory = "Debt"
	CategoryEquity     AssetCategory = "Equity"
	CategoryRealEstate AssetCategory = "Real Estate"
	CategoryGoldSilver AssetCategory = "Gold/Silver"
	CategoryPersonal   AssetCategory = "Personal"
)

// Bucket is the closed set of liquidity buckets the simulator tracks.
// BucketNetSavings is the floating, un-earmarked corpus.
type Bucket int

const (
	BucketSavings Bucket = iota
	BucketDirectEquity
	BucketMutualFunds
	BucketGold
	BucketRealEstate
	BucketNetSavings
)

// AllBuckets lists every bucket in declaration order.
var AllBuckets = [...]Bucket{
	BucketSavings,
	BucketDirectEquity,
	BucketMutualFunds,
	BucketGold,
	BucketRealEstate,
	BucketNetSavings,
}

var bucketNames = map[Bucket]string{
	BucketSavings:      "savings",
	BucketDirectEquity: "directEquity",
	BucketMutualFunds:  "mutualFunds",
	BucketGold:         "gold",
	BucketRealEstate:   "realEstate",
	BucketNetSavings:   "netSavings",
}

func (b Bucket) String() string {
	if name, ok := bucketNames[b]; ok {
		return name
	}
	return fmt.Sprintf("bucket(%d)", int(b))
}

// MarshalText lets buckets serve as YAML/JSON map keys and values.
func (b Bucket) MarshalText() ([]byte, error) {
	name, ok := bucketNames[b]
	if !ok {
		return nil, fmt.Errorf("unknown bucket %d", int(b))
	}
	return []byte(name), nil
}

// UnmarshalText parses a bucket from its canonical name.
func (b *Bucket) UnmarshalText(text []byte) error {
	for bucket, name := range bucketNames {
		if name == string(text) {
			*b = bucket
			return nil
		}
	}
	return fmt.Errorf("unknown bucket %q", string(text))
}

// BucketAmounts maps every bucket to a monetary amount.
type BucketAmounts map[Bucket]decimal.Decimal

// NewBucketAmounts returns a zeroed amount for every bucket.
func NewBucketAmounts() BucketAmounts {
	ba := make(BucketAmounts, len(AllBuckets))
	for _, b := range AllBuckets {
		ba[b] = decimal.Zero
	}
	return ba
}

// Clone returns an independent copy.
func (ba BucketAmounts) Clone() BucketAmounts {
	out := make(BucketAmounts, len(ba))
	for b, v := range ba {
		out[b] = v
	}
	return out
}

// Total sums all buckets.
func (ba BucketAmounts) Total() decimal.Decimal {
	total := decimal.Zero
	for _, b := range AllBuckets {
		total = total.Add(ba[b])
	}
	return total
}

// Asset is a single holding. Recurring contribution fields are optional;
// MonthlyContribution of zero means no contribution schedule.
type Asset struct {
	ID                    string          `yaml:"id" json:"id"`
	Name                  string          `yaml:"name" json:"name"`
	Category              AssetCategory   `yaml:"category" json:"category"`
	SubCategory           string          `yaml:"subCategory" json:"subCategory"`
	CurrentValue          decimal.Decimal `yaml:"currentValue" json:"currentValue"`
	PurchaseYear          int             `yaml:"purchaseYear" json:"purchaseYear"`
	GrowthRate            decimal.Decimal `yaml:"growthRate" json:"growthRate"`
	Owner                 string          `yaml:"owner" json:"owner"`
	AvailableForGoals     bool            `yaml:"availableForGoals" json:"availableForGoals"`
	AvailableFrom         int             `yaml:"availableFrom" json:"availableFrom"`
	MonthlyContribution   decimal.Decimal `yaml:"monthlyContribution" json:"monthlyContribution"`
	ContributionFrequency Frequency       `yaml:"contributionFrequency" json:"contributionFrequency"`
	ContributionStepUp    decimal.Decimal `yaml:"contributionStepUp" json:"contributionStepUp"`
	ContributionStartYear int             `yaml:"contributionStartYear" json:"contributionStartYear"`
	ContributionEndYear   int             `yaml:"contributionEndYear" json:"contributionEndYear"`
}
