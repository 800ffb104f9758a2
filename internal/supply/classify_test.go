package supply

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := map[string]Category{
		"WIND":          CategoryWind,
		" pvgr ":        CategorySolar,
		"SCGT90":        CategoryGasTurbine,
		"CCLE90":        CategoryCombinedCycle,
		"GSREH":         CategorySteam,
		"NUC":           CategoryNuclear,
		"CLLIG":         CategoryCoal,
		"PWRSTR":        CategoryStorage,
		"WIND_OFFSHORE": CategoryWind,
		"UTILITY_PV":    CategorySolar,
		"CCGT":          CategoryCombinedCycle,
		"GTX":           CategoryGasTurbine,
		"BATTERY1":      CategoryStorage,
		"STEAMX":        CategorySteam,
		"DSL":           CategoryOther,
		"UNKNOWN":       CategoryOther,
		"unknown":       CategoryOther,
		"":              CategoryOther,
		"XYZ":           CategoryOther,
	}
	for code, want := range tests {
		assert.Equal(t, want, Classify(code), code)
	}
}

func TestClassifyRulePrecedence(t *testing.T) {
	// Both "GAS" and "CC" appear; the gas rule is evaluated first.
	assert.Equal(t, CategoryGas, Classify("GAS_CC"))
	// "BIOGAS" contains GAS, which outranks BIO.
	assert.Equal(t, CategoryGas, Classify("BIOGAS"))
	assert.Equal(t, CategoryBiomass, Classify("BIOMASS_2"))
}
