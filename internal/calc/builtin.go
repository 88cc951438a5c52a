package calc

// The five built-in calculators. Field order matters: validation applies
// in declared order, required fields before optional ones.

func init() {
	Register(Definition{
		Key: "fertilizer-requirement",
		Fields: []FieldSpec{
			{Name: "areaHa", Description: "area (ha)"},
			{Name: "doseKgPerHa", Description: "dose per hectare"},
		},
		Unit: "kg",
		Compute: func(v map[string]float64) Output {
			return Output{ResultValue: v["areaHa"] * v["doseKgPerHa"], UnitLabel: "kg"}
		},
	})

	Register(Definition{
		Key: "chicken-feed-daily",
		Fields: []FieldSpec{
			{Name: "chickenCount", Description: "chicken count", Integer: true},
			{Name: "feedKgPerChickenPerDay", Description: "feed per chicken per day"},
		},
		Unit: "kg/day",
		Compute: func(v map[string]float64) Output {
			return Output{ResultValue: v["chickenCount"] * v["feedKgPerChickenPerDay"], UnitLabel: "kg/day"}
		},
	})

	Register(Definition{
		Key: "livestock-medicine-dosage",
		Fields: []FieldSpec{
			{Name: "weightKg", Description: "weight (kg)"},
			{Name: "doseMgPerKg", Description: "dose per kg"},
			{Name: "concentrationMgPerMl", Description: "concentration (mg/ml)", Optional: true},
		},
		Unit: "mg",
		Compute: func(v map[string]float64) Output {
			out := Output{ResultValue: v["weightKg"] * v["doseMgPerKg"], UnitLabel: "mg"}
			if c, ok := v["concentrationMgPerMl"]; ok {
				out.AdditionalResults = map[string]float64{"volumeMl": out.ResultValue / c}
			}
			return out
		},
	})

	Register(Definition{
		Key: "harvest-estimation",
		Fields: []FieldSpec{
			{Name: "areaHa", Description: "area (ha)"},
			{Name: "yieldTonPerHa", Description: "yield per hectare"},
		},
		Unit: "ton",
		Compute: func(v map[string]float64) Output {
			return Output{ResultValue: v["areaHa"] * v["yieldTonPerHa"], UnitLabel: "ton"}
		},
	})

	Register(Definition{
		Key: "planting-cost",
		Fields: []FieldSpec{
			{Name: "areaHa", Description: "area (ha)"},
			{Name: "costRpPerHa", Description: "cost per hectare"},
		},
		Unit: "Rp",
		Compute: func(v map[string]float64) Output {
			return Output{ResultValue: v["areaHa"] * v["costRpPerHa"], UnitLabel: "Rp"}
		},
	})
}
