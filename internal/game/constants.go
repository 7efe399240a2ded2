package game

import "time"

// Defaults applied when Config leaves a field zero
const (
	DefaultTickInterval = time.Second
	DefaultWorkers      = 1
	DefaultQueueSize    = 4
)

// Operation names used in logs and save-failure events
const (
	OpPlant           = "plant"
	OpHarvest         = "harvest"
	OpApplyGear       = "apply_gear"
	OpBuySeed         = "buy_seed"
	OpBuyGear         = "buy_gear"
	OpSellOne         = "sell_one"
	OpSellAll         = "sell_all"
	OpRedeem          = "redeem"
	OpTick            = "tick"
	OpActivateEvent   = "activate_event"
	OpDeactivateEvent = "deactivate_event"
	OpCompleteProfile = "complete_profile"
	OpResetEvents     = "reset_events"
)

// Log Messages
const (
	LogMsgServiceStarted      = "Garden service started"
	LogMsgServiceStopped      = "Garden service stopped"
	LogMsgStaleEventsKept     = "Saved game has active boosts, boost cycle not started"
	LogMsgStaleEventsCleared  = "Cleared stale boosts from saved game"
	LogMsgProfileMissing      = "No profile yet, boost cycle waits for onboarding"
	LogMsgProfileCompleted    = "Profile completed"
	LogMsgPlanted             = "Seed planted"
	LogMsgHarvested           = "Plot harvested"
	LogMsgGearApplied         = "Gear applied"
	LogMsgSeedBought          = "Seed bought"
	LogMsgGearBought          = "Gear bought"
	LogMsgFruitSold           = "Fruit sold"
	LogMsgCodeRedeemed        = "Code redeemed"
	LogMsgBoostActivated      = "Boost activated"
	LogMsgBoostDeactivated    = "Boost ended"
	LogMsgPlotsMatured        = "Plots matured"
	LogMsgServiceAlreadyStart = "Garden service already started"
)
