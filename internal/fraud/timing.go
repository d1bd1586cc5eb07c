package fraud

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/claims-pipeline/internal/models"
)

const dateLayout = "2006-01-02"

// seasonalWindow is a recurring calendar span with elevated claim fraud
// rates. Windows where the start month is after the end month wrap around
// the year boundary.
type seasonalWindow struct {
	startMonth, startDay int
	endMonth, endDay     int
	tag                  string
}

var seasonalWindows = []seasonalWindow{
	{12, 15, 1, 5, "holiday_season_incident_12_1"},  // winter holidays, wraps the year
	{6, 1, 9, 1, "holiday_season_incident_6_9"},     // summer
	{10, 15, 11, 15, "holiday_season_incident_10_11"}, // fall
}

// contains reports whether the date falls inside the window, with
// wraparound handling when the window spans the year boundary.
func (w seasonalWindow) contains(date time.Time) bool {
	if w.startMonth > w.endMonth {
		return int(date.Month()) >= w.startMonth || int(date.Month()) <= w.endMonth
	}
	start := time.Date(date.Year(), time.Month(w.startMonth), w.startDay, 0, 0, 0, 0, date.Location())
	end := time.Date(date.Year(), time.Month(w.endMonth), w.endDay, 0, 0, 0, 0, date.Location())
	return !date.Before(start) && !date.After(end)
}

// checkClaimTiming flags suspicious timing patterns: future dates, incidents
// predating the policy, very new policies, seasonal spikes, and claims just
// before the assumed one-year policy term runs out.
func (s *Scorer) checkClaimTiming(claim *models.CanonicalClaim, now time.Time) ([]string, float64) {
	var indicators []string
	riskScore := 0.0

	if claim.PolicyStartDate == "" || claim.IncidentDate == "" {
		return indicators, riskScore
	}

	start, err := time.Parse(dateLayout, claim.PolicyStartDate)
	if err != nil {
		s.logger.Warn("Unparseable policy start date",
			zap.String("claim_id", claim.ClaimID),
			zap.String("policy_start_date", claim.PolicyStartDate))
		return append(indicators, "date_processing_error"), riskScore
	}
	incident, err := time.Parse(dateLayout, claim.IncidentDate)
	if err != nil {
		s.logger.Warn("Unparseable incident date",
			zap.String("claim_id", claim.ClaimID),
			zap.String("incident_date", claim.IncidentDate))
		return append(indicators, "date_processing_error"), riskScore
	}

	if start.After(now) {
		indicators = append(indicators, "future_policy_start_date")
		riskScore = math.Max(riskScore, 0.8)
	}
	if incident.After(now) {
		indicators = append(indicators, "future_incident_date")
		riskScore = math.Max(riskScore, 0.9)
	}

	// An incident before the policy existed is disqualifying on its own;
	// no further timing penalties are evaluated.
	if incident.Before(start) {
		indicators = append(indicators, "incident_before_policy_start")
		riskScore = math.Max(riskScore, 0.95)
		return indicators, riskScore
	}

	daysSinceStart := int(incident.Sub(start).Hours() / 24)

	if incident.Weekday() == time.Saturday || incident.Weekday() == time.Sunday {
		indicators = append(indicators, "weekend_incident")
		riskScore = math.Min(1.0, riskScore+0.2)
	}

	// Independently evaluated; overlapping windows stack
	for _, w := range seasonalWindows {
		if w.contains(incident) {
			indicators = append(indicators, w.tag)
			riskScore = math.Min(1.0, riskScore+0.3)
		}
	}

	if daysSinceStart <= s.cfg.NewPolicyWindow {
		indicators = append(indicators, "claim_within_30_days_of_policy_start")

		// Base risk 0.4-0.8 driven by amount, decayed by policy age
		baseRisk := math.Min(0.8, 0.4+claim.ClaimAmount/50000)
		dayMultiplier := 1.0 - float64(daysSinceStart)/float64(s.cfg.NewPolicyWindow)
		riskIncrease := baseRisk * dayMultiplier
		if claim.ClaimAmount > s.cfg.LargeClaimAmount {
			riskIncrease *= 1.5
		}
		riskScore = math.Min(1.0, riskScore+riskIncrease)

		if daysSinceStart <= s.cfg.FirstWeekWindow {
			indicators = append(indicators, "claim_within_7_days_of_policy_start")
			riskScore = math.Min(1.0, riskScore+0.3)

			if claim.ClaimAmount > s.cfg.LargeClaimAmount {
				indicators = append(indicators, "high_risk_new_policy_claim")
				riskScore = math.Max(riskScore, 0.95)
			}
		}
	}

	// Claims just before the assumed one-year term expires
	daysUntilExpiry := s.cfg.PolicyTermDays - daysSinceStart
	if daysUntilExpiry >= 0 && daysUntilExpiry <= s.cfg.ExpiryWindow {
		indicators = append(indicators, "claim_near_policy_expiry")
		riskScore = math.Min(1.0, riskScore+0.4)

		if claim.ClaimAmount > 10000 {
			riskScore = math.Min(1.0, riskScore+0.3)
			indicators = append(indicators, "high_value_claim_near_policy_end")
		}
	}

	s.logger.Debug("Claim timing check completed",
		zap.String("claim_id", claim.ClaimID),
		zap.Int("days_since_policy_start", daysSinceStart),
		zap.Float64("risk", riskScore),
		zap.Strings("indicators", indicators))

	return indicators, riskScore
}
