package main

import "time"

// Shell vocabulary
const (
	gearWateringCan = "Watering Can"
	gearSprinkler   = "Sprinkler"

	promptText        = "garden> "
	defaultQuoteCount = 1
)

// Process lifecycle
const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Log messages
const (
	LogMsgConfigFailed     = "Configuration failed"
	LogMsgStartupFailed    = "Startup failed"
	LogMsgMetricsListening = "Metrics server listening"
	LogMsgMetricsFailed    = "Metrics server failed"
	LogMsgSignalReceived   = "Shutdown signal received"
	LogMsgShellExited      = "Shell exited"
)

// Shell messages
const (
	msgHelp = `Commands:
  profile <first> <last> <age> <boy|girl>   complete your profile
  status                                    show coins, inventory and plots
  plant <plot> <seed>                       plant a seed (plots are numbered from 0)
  harvest <plot>                            harvest a grown plot
  water <plot>                              use the Watering Can on a plot
  sprinkle <plot>                           use the Sprinkler on a plot
  buy seed <name> | buy gear <name>         buy from the shop
  sell <fruit> | sell all                   sell fruit
  worth <fruit> [quantity]                  check what fruit is worth now
  redeem <code>                             redeem a promotional code
  help                                      show this help
  quit                                      save and exit`

	msgWelcome          = "Welcome to the garden! Type 'help' for commands."
	msgProfileNeeded    = "Complete your profile first: profile <first> <last> <age> <boy|girl>"
	msgProfileDone      = "Welcome, %s! Your garden is ready."
	msgPlanted          = "Planted %s in plot %d."
	msgPlantedInstant   = "Planted %s in plot %d and it grew instantly!"
	msgHarvested        = "Harvested %s from plot %d."
	msgGearApplied      = "Used %s on plot %d (growth %.0f%%, value %d)."
	msgBought           = "Bought %s for %s coins. Balance: %s."
	msgWorth            = "%d x %s is worth %s coins (%s each, gear x%.1f, events x%.0f)."
	msgUnknownCommand   = "Unknown command %q. Type 'help' for commands."
	msgUsage            = "Usage: %s"
	msgError            = "Error: %v"
	msgGoodbye          = "Goodbye!"
	msgStatusHeader     = "%s | Coins: %s"
	msgStatusEvents     = "Active events: %s"
	msgStatusGear       = "Gear: %s"
	msgStatusInventory  = "Inventory: %s"
	msgStatusPlot       = "  [%d] %s %s %3.0f%%"
	msgStatusPlotsEmpty = "All plots are empty."
	msgNone             = "none"
)
