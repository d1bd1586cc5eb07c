package fraud

import (
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/garyjia/claims-pipeline/internal/models"
)

// weightedPhrase is a literal phrase matched case-insensitively against the
// incident details, contributing its weight to the text risk score.
type weightedPhrase struct {
	phrase string
	weight float64
}

// minorDamagePhrases describe low-severity incidents. High claim amounts
// combined with these phrases escalate the score separately.
var minorDamagePhrases = []weightedPhrase{
	{"minor", 0.2}, {"slight", 0.2}, {"small", 0.2}, {"tap", 0.3},
	{"bump", 0.3}, {"fender bender", 0.4}, {"fender-bender", 0.4},
	{"low speed", 0.3}, {"low-speed", 0.3}, {"scrape", 0.2},
	{"scratch", 0.2}, {"small dent", 0.3}, {"cosmetic", 0.2},
	{"superficial", 0.2}, {"minor damage", 0.3}, {"slight damage", 0.3},
}

// suspiciousPattern is a regex matched against the lower-cased incident
// details. The tag is the normalized indicator name reported on a match.
type suspiciousPattern struct {
	pattern *regexp.Regexp
	tag     string
	weight  float64
}

var suspiciousPatterns = []suspiciousPattern{
	{regexp.MustCompile(`hit[ -]?and[ -]?run`), "suspicious_phrase_hit_and_run", 0.4},
	{regexp.MustCompile(`stolen`), "suspicious_phrase_stolen", 0.5},
	{regexp.MustCompile(`vandalized`), "suspicious_phrase_vandalized", 0.4},
	{regexp.MustCompile(`arson`), "suspicious_phrase_arson", 0.7},
	{regexp.MustCompile(`theft`), "suspicious_phrase_theft", 0.4},
	{regexp.MustCompile(`broken into`), "suspicious_phrase_broken_into", 0.3},
	{regexp.MustCompile(`forced entry`), "suspicious_phrase_forced_entry", 0.5},
	{regexp.MustCompile(`no witnesses`), "suspicious_phrase_no_witnesses", 0.4},
	{regexp.MustCompile(`no police report`), "suspicious_phrase_no_police_report", 0.5},
	{regexp.MustCompile(`lost`), "suspicious_phrase_lost", 0.3},
	{regexp.MustCompile(`mystery`), "suspicious_phrase_mystery", 0.4},
	{regexp.MustCompile(`unknown`), "suspicious_phrase_unknown", 0.3},
	{regexp.MustCompile(`can't remember`), "suspicious_phrase_cant_remember", 0.4},
	{regexp.MustCompile(`not sure`), "suspicious_phrase_not_sure", 0.3},
	{regexp.MustCompile(`maybe`), "suspicious_phrase_maybe", 0.2},
	{regexp.MustCompile(`i think`), "suspicious_phrase_i_think", 0.2},
	{regexp.MustCompile(`i believe`), "suspicious_phrase_i_believe", 0.2},
	{regexp.MustCompile(`suspicious`), "suspicious_phrase_suspicious", 0.4},
	{regexp.MustCompile(`strange`), "suspicious_phrase_strange", 0.3},
}

var allCapsWord = regexp.MustCompile(`[A-Z]{4,}`)

// checkIncidentDetails scans the free-text incident description for minor
// damage and suspicious phrasing, escalating with the claim amount.
func (s *Scorer) checkIncidentDetails(claim *models.CanonicalClaim) ([]string, float64) {
	var indicators []string
	riskScore := 0.0

	if claim.IncidentDetails == "" {
		return indicators, riskScore
	}

	incidentLower := strings.ToLower(claim.IncidentDetails)

	foundMinorDamage := false
	for _, wp := range minorDamagePhrases {
		if strings.Contains(incidentLower, wp.phrase) {
			indicators = append(indicators, "minor_damage_"+strings.ReplaceAll(wp.phrase, " ", "_"))
			riskScore = math.Min(1.0, riskScore+wp.weight)
			foundMinorDamage = true
		}
	}

	if foundMinorDamage {
		indicators = append(indicators, "minor_damage_indicated")

		// Minor damage with a large claim amount is a strong signal
		if claim.ClaimAmount > s.cfg.MinorDamageAmount {
			riskIncrease := math.Min(0.6, (claim.ClaimAmount/10000)*0.3)
			riskScore = math.Min(1.0, riskScore+riskIncrease)
			indicators = append(indicators, "high_claim_for_minor_damage")

			if claim.ClaimAmount > 10000 {
				riskScore = math.Min(1.0, riskScore+0.3)
				indicators = append(indicators, "very_high_claim_for_minor_damage")
			}
		}
	}

	if strings.Contains(incidentLower, "parking lot") || strings.Contains(incidentLower, "parking-lot") {
		indicators = append(indicators, "parking_lot_incident")

		if claim.ClaimAmount > s.cfg.ParkingLotAmount {
			riskScore = math.Min(1.0, riskScore+0.3)
			indicators = append(indicators, "high_claim_for_parking_lot_incident")

			if claim.ClaimAmount > 15000 {
				riskScore = math.Min(1.0, riskScore+0.2)
				indicators = append(indicators, "very_high_parking_lot_claim")
			}
		}
	}

	for _, sp := range suspiciousPatterns {
		if sp.pattern.MatchString(incidentLower) {
			indicators = append(indicators, sp.tag)
			riskScore = math.Min(1.0, riskScore+sp.weight)
		}
	}

	// Excessive capitalization in the original text reads as agitation
	if len(allCapsWord.FindAllString(claim.IncidentDetails, -1)) > 2 {
		indicators = append(indicators, "excessive_capitalization")
		riskScore = math.Min(1.0, riskScore+0.2)
	}

	s.logger.Debug("Incident details check completed",
		zap.String("claim_id", claim.ClaimID),
		zap.Float64("risk", riskScore),
		zap.Strings("indicators", indicators))

	return indicators, riskScore
}
