package postgres

// DefaultSlot is the save slot used when none is configured
const DefaultSlot = "default"

// Error Messages
const (
	ErrMsgFailedToLoadSnapshot   = "failed to load snapshot"
	ErrMsgFailedToSaveSnapshot   = "failed to save snapshot"
	ErrMsgFailedToEncodeColumn   = "failed to encode column"
	ErrMsgFailedToDecodeColumn   = "failed to decode column"
	ErrMsgFailedToBeginSave      = "failed to begin transaction"
	ErrMsgFailedToCommitSnapshot = "failed to commit snapshot"
)

const (
	querySelectProfile = `
SELECT first_name, last_name, age, gender, money, inventory, garden, gear, used_codes, active_events
FROM game_profiles
WHERE slot = $1`

	queryUpsertProfile = `
INSERT INTO game_profiles (slot, first_name, last_name, age, gender, money, inventory, garden, gear, used_codes, active_events, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
ON CONFLICT (slot) DO UPDATE SET
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    age = EXCLUDED.age,
    gender = EXCLUDED.gender,
    money = EXCLUDED.money,
    inventory = EXCLUDED.inventory,
    garden = EXCLUDED.garden,
    gear = EXCLUDED.gear,
    used_codes = EXCLUDED.used_codes,
    active_events = EXCLUDED.active_events,
    updated_at = NOW()`
)
