package supply

import "strings"

// Category is a coarse fuel/technology bucket for a resource type code.
type Category string

const (
	CategoryWind          Category = "WIND"
	CategorySolar         Category = "SOLAR"
	CategoryHydro         Category = "HYDRO"
	CategoryNuclear       Category = "NUCLEAR"
	CategoryCoal          Category = "COAL"
	CategoryGas           Category = "GAS"
	CategoryCombinedCycle Category = "COMBINED_CYCLE"
	CategoryGasTurbine    Category = "GAS_TURBINE"
	CategorySteam         Category = "STEAM"
	CategoryBiomass       Category = "BIOMASS"
	CategoryLandfill      Category = "LANDFILL"
	CategoryStorage       Category = "STORAGE"
	CategoryDCTie         Category = "DC_TIE"
	CategorySyncCondenser Category = "SYNC_COND"
	CategoryOther         Category = "OTHER"
)

// ERCOT resource type codes with a known category.
var exactCategories = map[string]Category{
	"WIND":      CategoryWind,
	"PVGR":      CategorySolar,
	"SOLAR":     CategorySolar,
	"HYDRO":     CategoryHydro,
	"NUCLEAR":   CategoryNuclear,
	"NUC":       CategoryNuclear,
	"COAL":      CategoryCoal,
	"CLLIG":     CategoryCoal,
	"GAS":       CategoryGas,
	"CC":        CategoryCombinedCycle,
	"CCGT90":    CategoryCombinedCycle,
	"CCLE90":    CategoryCombinedCycle,
	"GT":        CategoryGasTurbine,
	"SCGT90":    CategoryGasTurbine,
	"SCLE90":    CategoryGasTurbine,
	"STEAM":     CategorySteam,
	"GSREH":     CategorySteam,
	"GSNONR":    CategorySteam,
	"GSSUP":     CategorySteam,
	"BIOMASS":   CategoryBiomass,
	"LANDFILL":  CategoryLandfill,
	"PWRSTR":    CategoryStorage,
	"ESR":       CategoryStorage,
	"DC":        CategoryDCTie,
	"SYNC_COND": CategorySyncCondenser,
	"DSL":       CategoryOther,
	"UNKNOWN":   CategoryOther,
}

type categoryRule struct {
	match    func(code string) bool
	category Category
}

func containsAny(words ...string) func(string) bool {
	return func(code string) bool {
		for _, w := range words {
			if strings.Contains(code, w) {
				return true
			}
		}
		return false
	}
}

// Evaluated top to bottom; the first match wins. A code containing both
// "GAS" and "CC" is GAS because the gas rule comes first.
var categoryRules = []categoryRule{
	{containsAny("WIND"), CategoryWind},
	{containsAny("SOLAR", "PV"), CategorySolar},
	{containsAny("HYDRO"), CategoryHydro},
	{containsAny("NUCLEAR"), CategoryNuclear},
	{containsAny("COAL"), CategoryCoal},
	{containsAny("GAS", "NG"), CategoryGas},
	{containsAny("CC", "COMBINED"), CategoryCombinedCycle},
	{containsAny("GT", "TURBINE"), CategoryGasTurbine},
	{containsAny("STEAM"), CategorySteam},
	{containsAny("BIOMASS", "BIO"), CategoryBiomass},
	{containsAny("BESS", "BATTERY", "STORAGE"), CategoryStorage},
}

// Classify maps a resource type code to a Category: exact code first, then
// the ordered containment rules, then CategoryOther.
func Classify(resourceType string) Category {
	code := strings.ToUpper(strings.TrimSpace(resourceType))
	if c, ok := exactCategories[code]; ok {
		return c
	}
	for _, r := range categoryRules {
		if r.match(code) {
			return r.category
		}
	}
	return CategoryOther
}
