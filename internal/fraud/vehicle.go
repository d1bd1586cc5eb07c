package fraud

import (
	"math"
	"strings"
	"time"

	"github.com/garyjia/claims-pipeline/internal/models"
)

// marketValues holds stand-in market value estimates by make and model,
// used for the reported vehicle value and claim-to-value ratio. The "default"
// model entry covers unknown models of a known make.
var marketValues = map[string]map[string]float64{
	"toyota": {
		"camry": 25000, "corolla": 22000, "rav4": 28000, "highlander": 36000, "default": 25000,
	},
	"honda": {
		"accord": 27000, "civic": 24000, "cr-v": 30000, "pilot": 38000, "default": 28000,
	},
	"ford": {
		"f-150": 38000, "explorer": 35000, "escape": 28000, "mustang": 32000, "default": 30000,
	},
	"default": {
		"default": 30000,
	},
}

// estimateVehicleValue estimates the market value of a vehicle from the
// stand-in table: 15% depreciation in the first year, 10% per year after,
// floored at 1000. Returns 0 when the vehicle record is absent or
// incomplete.
func estimateVehicleValue(vehicle *models.Vehicle, now time.Time) float64 {
	if vehicle == nil || vehicle.Make == "" || vehicle.Model == "" || vehicle.Year <= 0 {
		return 0
	}

	makeModels, ok := marketValues[normalizeKey(vehicle.Make)]
	if !ok {
		makeModels = marketValues["default"]
	}
	baseValue, ok := makeModels[normalizeKey(vehicle.Model)]
	if !ok {
		baseValue = makeModels["default"]
	}

	age := now.Year() - vehicle.Year
	if age < 0 {
		age = 0
	}

	var value float64
	if age == 0 {
		value = baseValue * 0.85
	} else {
		value = baseValue * 0.85 * math.Pow(0.9, float64(age-1))
	}

	return math.Max(1000, value)
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
