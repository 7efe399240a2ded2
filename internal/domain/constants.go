package domain

// Garden layout and starting balance
const (
	PlotCount     = 30
	StartingCoins = 1000
)

// Growth bounds, expressed as a percentage of the seed's grow duration
const (
	GrowthEmpty  = 0.0
	GrowthMature = 100.0
)

// FruitSuffix is appended to a seed name to form its fruit item name when
// the catalog does not name the fruit explicitly.
const FruitSuffix = " Fruit"

// Profile genders accepted at onboarding
const (
	GenderBoy  = "boy"
	GenderGirl = "girl"
)
