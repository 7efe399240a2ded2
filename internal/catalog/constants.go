package catalog

// Schema registration name for the catalog document
const CatalogSchemaName = "catalog.schema.json"

// Error messages
const (
	ErrMsgReadCatalogFailed  = "failed to read catalog file: %w"
	ErrMsgParseCatalogFailed = "failed to parse catalog: %w"
	ErrMsgNoSeedsDefined     = "no seeds defined"

	ErrFmtDuplicateName     = "%w: duplicate %s '%s'"
	ErrFmtDuplicateFruit    = "%w: fruit '%s' is produced by more than one seed"
	ErrFmtCodeUnknownSeed   = "%w: code '%s' rewards unknown seed '%s'"
	ErrFmtCodeMissingSeed   = "%w: seed code '%s' has no seedName"
	ErrFmtCoinCodeWithSeed  = "%w: coins code '%s' must not name a seed"
	ErrFmtEffectNoParameter = "%w: gear '%s' effect %s is missing its parameter"
)

// Entity labels used in duplicate-name errors
const (
	labelSeed  = "seed"
	labelGear  = "gear"
	labelEvent = "event"
	labelCode  = "redeem code"
)
