package economy

// Formatted error details
const (
	ErrMsgNotEnoughCoinsFmt  = "%s costs %d, balance is %d"
	ErrMsgGearOwnedFmt       = "%s is already owned"
	ErrMsgCodeUsedFmt        = "code '%s' was already redeemed"
	ErrMsgCodeUnknownFmt     = "code '%s' does not exist"
	ErrMsgQuantityFmt        = "quantity must be at least 1, got %d"
	ErrMsgNoFruitFmt         = "%s (%s)"
	ErrMsgUnknownItemFmt     = "%s '%s'"
	ErrMsgUnknownItemHintFmt = "%s '%s' (did you mean '%s'?)"
)

// Messages shown to the player, formatted with utils.FormatCoins amounts
const (
	MsgSoldFmt          = "Sold %d fruits for %s coins!"
	MsgRedeemedCoinsFmt = "Redeemed %s coins!"
	MsgRedeemedSeedsFmt = "Redeemed %d %s seed(s)!"
)
