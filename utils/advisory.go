package utils

import "agridata/models"

// Static thresholds for the advisory rules. The dashboard may apply its own;
// these mirror the ranges it uses.
const (
	lowMoisture  = 12.0
	highMoisture = 40.0
	lowPH        = 5.5
	highPH       = 7.8
	highTemp     = 32.0
)

// Advisories evaluates the static threshold rules against one reading and
// returns human-readable advisories. Fields that are absent are skipped.
func Advisories(r models.Reading) []string {
	advisories := []string{}
	if r.SoilMoisture != nil {
		if *r.SoilMoisture < lowMoisture {
			advisories = append(advisories, "Low soil moisture — consider irrigating.")
		}
		if *r.SoilMoisture > highMoisture {
			advisories = append(advisories, "High soil moisture — check drainage.")
		}
	}
	if r.PH != nil {
		if *r.PH < lowPH {
			advisories = append(advisories, "Soil is acidic (low pH) — consider liming.")
		}
		if *r.PH > highPH {
			advisories = append(advisories, "Soil is alkaline (high pH) — check fertilizer choices.")
		}
	}
	if r.Temperature != nil && *r.Temperature > highTemp {
		advisories = append(advisories, "High temperature — heat stress risk for crops.")
	}
	return advisories
}
