package entity

import "starforge/internal/dice"

// Tables lists every fixed roll table in the package for coverage checks
func Tables() []dice.Checker {
	checkers := []dice.Checker{
		starTable, companionTable, anomalousStrengthTable, featureTable, starfarerSpeciesTable,
		zoneSizeTable,
		bodyTable, moonBodyTable, gravityTable, atmosphereTable, compositionTable,
		climateTable, habitabilityTable, planetOrbitTable,
		gasGiantClassTable, gasGiantOrbitTable,
		inhabitantSpeciesTable, developmentTable,
		fleetCompositionTable,
		techLevelTable, societyTable, dispositionTable,
		treasureTypeTable, craftsmanshipTable,
	}
	for _, kind := range ZoneKinds() {
		checkers = append(checkers, zoneElementTables[kind])
	}
	return checkers
}
