// Package phone validates raw phone-number input and resolves numbering-plan metadata
// (country, locality, carrier, timezone, line type, formats) for it.
package phone

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nyaruka/phonenumbers"
	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	"github.com/thesavant42/phonefinder/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	// DefaultLanguage is used for geocoding and carrier names
	DefaultLanguage = "en"

	// DefaultCacheTTL is how long resolved metadata is kept per number
	DefaultCacheTTL = 10 * time.Minute

	unknownTimezone = "Etc/Unknown"
)

var typeLabels = map[phonenumbers.PhoneNumberType]models.NumberType{
	phonenumbers.MOBILE:               models.NumberTypeMobile,
	phonenumbers.FIXED_LINE:           models.NumberTypeFixedLine,
	phonenumbers.FIXED_LINE_OR_MOBILE: models.NumberTypeFixedLineOrMobile,
	phonenumbers.TOLL_FREE:            models.NumberTypeTollFree,
	phonenumbers.PREMIUM_RATE:         models.NumberTypePremiumRate,
	phonenumbers.SHARED_COST:          models.NumberTypeSharedCost,
	phonenumbers.VOIP:                 models.NumberTypeVoIP,
	phonenumbers.PERSONAL_NUMBER:      models.NumberTypePersonalNumber,
	phonenumbers.PAGER:                models.NumberTypePager,
	phonenumbers.UAN:                  models.NumberTypeUAN,
	phonenumbers.VOICEMAIL:            models.NumberTypeVoicemail,
	phonenumbers.UNKNOWN:              models.NumberTypeUnknown,
}

// Resolver validates numbers and looks up their metadata.
// Metadata is memoised per E.164 number; validation always runs.
type Resolver struct {
	lang    string
	regions display.Namer
	cache   *cache.Cache
	logger  *log.Logger
}

// NewResolver creates a Resolver for the given language. A zero ttl uses DefaultCacheTTL.
func NewResolver(lang string, ttl time.Duration, logger *log.Logger) *Resolver {
	if lang == "" {
		lang = DefaultLanguage
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	tag, err := language.Parse(lang)
	if err != nil {
		logger.Warn("unknown language, falling back to English", "lang", lang, "err", err)
		lang, tag = DefaultLanguage, language.English
	}

	return &Resolver{
		lang:    lang,
		regions: display.Regions(tag),
		cache:   cache.New(ttl, 2*ttl),
		logger:  logger,
	}
}

// Sanitize removes control characters and surrounding whitespace from input
func Sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') || r == 127 {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// Parse parses and validates raw input. The input must carry its own
// country calling code ("+" prefix); no default region is assumed.
func Parse(raw string) (*phonenumbers.PhoneNumber, error) {
	input := Sanitize(raw)

	num, err := phonenumbers.Parse(input, "")
	if err != nil {
		return nil, &ParseError{Input: raw, Err: err}
	}

	if phonenumbers.IsValidNumber(num) {
		return num, nil
	}

	var reasons []Reason
	if !phonenumbers.IsPossibleNumber(num) {
		reasons = append(reasons, ReasonNotPossible)
	}
	region := phonenumbers.GetRegionCodeForNumber(num)
	if !phonenumbers.IsValidNumberForRegion(num, region) || len(reasons) == 0 {
		reasons = append(reasons, ReasonInvalidForRegion)
	}
	return nil, &ValidationError{Input: raw, Reasons: reasons}
}

// Resolve validates raw input and returns its metadata
func (r *Resolver) Resolve(raw string) (models.Metadata, error) {
	num, err := Parse(raw)
	if err != nil {
		return models.Metadata{}, err
	}

	key := phonenumbers.Format(num, phonenumbers.E164)
	if cached, ok := r.cache.Get(key); ok {
		r.logger.Debug("metadata cache hit", "number", key)
		return cached.(models.Metadata), nil
	}

	md := r.describe(num, key)
	r.cache.SetDefault(key, md)
	r.logger.Debug("resolved metadata", "number", key, "region", md.RegionCode, "type", md.NumberType, "cached", r.cachedCount())
	return md, nil
}

// cachedCount returns the number of memoised entries
func (r *Resolver) cachedCount() int {
	return r.cache.ItemCount()
}

func (r *Resolver) describe(num *phonenumbers.PhoneNumber, e164 string) models.Metadata {
	region := phonenumbers.GetRegionCodeForNumber(num)
	country := r.countryName(region)

	city, err := phonenumbers.GetGeocodingForNumber(num, r.lang)
	if err != nil {
		r.logger.Debug("geocoding lookup failed", "number", e164, "err", err)
	}
	if city == "" || strings.EqualFold(city, country) {
		city = models.UnknownValue
	}

	carrier, err := phonenumbers.GetCarrierForNumber(num, r.lang)
	if err != nil {
		r.logger.Debug("carrier lookup failed", "number", e164, "err", err)
	}

	tz := models.UnknownValue
	zones, err := phonenumbers.GetTimezonesForNumber(num)
	if err != nil {
		r.logger.Debug("timezone lookup failed", "number", e164, "err", err)
	}
	if len(zones) > 0 && zones[0] != unknownTimezone {
		tz = zones[0]
	}

	return models.Metadata{
		E164:                e164,
		RegionCode:          region,
		NationalNumber:      phonenumbers.GetNationalSignificantNumber(num),
		Country:             country,
		City:                city,
		Carrier:             lo.Ternary(carrier != "", carrier, models.UnknownValue),
		Timezone:            tz,
		NumberType:          classify(num),
		NationalFormat:      phonenumbers.Format(num, phonenumbers.NATIONAL),
		InternationalFormat: phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
	}
}

func (r *Resolver) countryName(region string) string {
	if region == "" {
		return models.UnknownValue
	}
	reg, err := language.ParseRegion(region)
	if err != nil {
		return models.UnknownValue
	}
	if name := r.regions.Name(reg); name != "" {
		return name
	}
	return models.UnknownValue
}

func classify(num *phonenumbers.PhoneNumber) models.NumberType {
	if t, ok := typeLabels[phonenumbers.GetNumberType(num)]; ok {
		return t
	}
	return models.NumberTypeUnknown
}
