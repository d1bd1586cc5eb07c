package fraud

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/claims-pipeline/internal/models"
)

// basePrices holds stand-in vehicle base prices by make and model, used to
// sanity-check auto claim amounts. A real deployment would query a vehicle
// valuation service instead.
var basePrices = map[string]map[string]float64{
	"toyota": {
		"camry": 25000, "corolla": 22000, "rav4": 28000, "highlander": 35000, "tacoma": 32000,
	},
	"honda": {
		"civic": 23000, "accord": 28000, "crv": 30000, "pilot": 38000, "odyssey": 36000,
	},
	"bmw": {
		"3 series": 45000, "5 series": 55000, "x3": 48000, "x5": 60000, "x7": 75000,
	},
	"mercedes": {
		"c-class": 45000, "e-class": 55000, "s-class": 110000, "gle": 60000, "glc": 48000,
	},
	"ford": {
		"f-150": 40000, "explorer": 38000, "escape": 28000, "edge": 35000, "mustang": 45000,
	},
	"chevrolet": {
		"silverado": 38000, "equinox": 28000, "tahoe": 55000, "traverse": 35000, "malibu": 25000,
	},
	"nissan": {
		"altima": 26000, "rogue": 28000, "sentra": 21000, "murano": 35000, "pathfinder": 36000,
	},
}

const defaultBasePrice = 25000

// checkClaimAmount flags suspicious claim amounts. The per-type thresholds
// and the extreme-amount floor come from configuration.
func (s *Scorer) checkClaimAmount(claim *models.CanonicalClaim, now time.Time) ([]string, float64) {
	if claim.ClaimAmount <= 0 {
		return []string{"invalid_claim_amount"}, 0
	}

	var indicators []string
	riskScore := 0.0

	// Extremely high claims are disqualifying on their own
	if claim.ClaimAmount > s.cfg.ExtremeAmount {
		indicators = append(indicators, "extremely_high_claim_amount")
		riskScore = math.Max(riskScore, 0.9)
	}

	threshold, ok := s.cfg.AmountThresholds[claim.ClaimType]
	if !ok {
		threshold = s.cfg.DefaultThreshold
	}

	// Scale with how far over the type threshold the claim is, capped at 0.7
	if claim.ClaimAmount > threshold {
		indicators = append(indicators, fmt.Sprintf("high_claim_amount_for_%s", claim.ClaimType))
		overRisk := math.Min(0.7, 0.3+(claim.ClaimAmount/threshold-1)*0.1)
		riskScore = math.Max(riskScore, overRisk)
	}

	// Round numbers are often a sign of made-up amounts
	if claim.ClaimAmount > 1000 && math.Mod(claim.ClaimAmount, 1000) == 0 {
		indicators = append(indicators, "suspicious_round_number")
		riskScore = math.Min(1.0, riskScore+s.cfg.RoundNumberWeight)
	}

	if claim.Vehicle != nil && claim.ClaimType == "auto" {
		vehicleIndicators, vehicleRisk := s.checkVehicleValue(claim.Vehicle, claim.ClaimAmount, now)
		indicators = append(indicators, vehicleIndicators...)
		riskScore = math.Max(riskScore, vehicleRisk)
	}

	s.logger.Debug("Claim amount check completed",
		zap.String("claim_id", claim.ClaimID),
		zap.Float64("risk", riskScore),
		zap.Strings("indicators", indicators))

	return indicators, riskScore
}

// checkVehicleValue compares the claim amount against a depreciated base
// price for the vehicle: 2% depreciation per year, capped at 50%. Claims
// above 80% of the estimated value force the score floor upward.
func (s *Scorer) checkVehicleValue(vehicle *models.Vehicle, claimAmount float64, now time.Time) ([]string, float64) {
	if vehicle.Year <= 0 || vehicle.Year > now.Year()+1 {
		return []string{"vehicle_value_calculation_error"}, 0
	}

	baseValue := defaultBasePrice
	if makeModels, ok := basePrices[normalizeKey(vehicle.Make)]; ok {
		if v, ok := makeModels[normalizeKey(vehicle.Model)]; ok {
			baseValue = int(v)
		}
	}

	age := now.Year() - vehicle.Year
	if age < 0 {
		age = 0
	}
	depreciation := math.Min(0.5, float64(age)*0.02)
	currentValue := float64(baseValue) * (1 - depreciation)

	if claimAmount > currentValue*0.8 {
		risk := math.Min(1.0, 0.5+(claimAmount/currentValue-0.8)*2.5)
		s.logger.Warn("Claim amount exceeds 80% of estimated vehicle value",
			zap.Float64("claim_amount", claimAmount),
			zap.Float64("vehicle_value", currentValue))
		return []string{"claim_exceeds_vehicle_value"}, risk
	}

	return nil, 0
}
