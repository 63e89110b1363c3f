package models

import "time"

// NumberType is the line-type classification of a phone number
type NumberType string

const (
	NumberTypeMobile            NumberType = "Mobile"
	NumberTypeFixedLine         NumberType = "Fixed Line"
	NumberTypeFixedLineOrMobile NumberType = "Fixed Line or Mobile"
	NumberTypeTollFree          NumberType = "Toll-Free"
	NumberTypePremiumRate       NumberType = "Premium Rate"
	NumberTypeSharedCost        NumberType = "Shared Cost"
	NumberTypeVoIP              NumberType = "VoIP"
	NumberTypePersonalNumber    NumberType = "Personal Number"
	NumberTypePager             NumberType = "Pager"
	NumberTypeUAN               NumberType = "UAN"
	NumberTypeVoicemail         NumberType = "Voicemail"
	NumberTypeUnknown           NumberType = "Unknown"
)

// String returns the display label
func (t NumberType) String() string {
	if t == "" {
		return string(NumberTypeUnknown)
	}
	return string(t)
}

// Record sources
const (
	SourceLookup       = "lookup"
	SourceContribution = "contribution"
	SourceSeed         = "seed"
)

// Placeholder values used when a field has no better value
const (
	UnknownValue      = "Unknown"
	UnknownLookupName = "Unknown (Contribute to add name)"
)

// PhoneRecord is the last-known metadata for a phone number, keyed by the raw input
type PhoneRecord struct {
	PhoneNumber         string     `json:"phoneNumber"` // Raw input, used as the store key
	Name                string     `json:"name"`
	Carrier             string     `json:"carrier"`
	City                string     `json:"city"`
	Country             string     `json:"country"`
	Timezone            string     `json:"timezone"`
	NumberType          NumberType `json:"numberType"`
	NationalFormat      string     `json:"nationalFormat"`
	InternationalFormat string     `json:"internationalFormat"`
	SpamScore           float64    `json:"spamScore"`
	Source              string     `json:"-"` // "lookup", "contribution", "seed"
	UpdatedAt           time.Time  `json:"-"`
}

// HistoryEntry is an immutable snapshot of a record taken at lookup time
type HistoryEntry struct {
	ID         string
	Seq        int64 // 1-based position in the session log
	Record     PhoneRecord
	SearchedAt time.Time
}

// Metadata holds everything the numbering-plan resolver knows about a number
type Metadata struct {
	E164                string
	RegionCode          string // ISO 3166-1 alpha-2, e.g. "IN"
	NationalNumber      string // National significant number, digits only
	Country             string
	City                string
	Carrier             string
	Timezone            string
	NumberType          NumberType
	NationalFormat      string
	InternationalFormat string
}

// Contribution is user-submitted data for a phone number
type Contribution struct {
	PhoneNumber string `validate:"required"`
	Name        string
	City        string
	Carrier     string `validate:"required"`
}
