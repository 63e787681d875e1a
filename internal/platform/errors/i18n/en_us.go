package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeTemplateNotFound      = "TEMPLATE_NOT_FOUND"
	CodeActionNotFound        = "ACTION_NOT_FOUND"
	CodeActionHandlerNotFound = "ACTION_HANDLER_NOT_FOUND"
	CodeTemplateIDConflict    = "TEMPLATE_ID_CONFLICT"
	CodeRegistryFrozen        = "REGISTRY_FROZEN"
	CodeFeatureSetInvalid     = "FEATURE_SET_INVALID"
	CodePlayerNotFound        = "PLAYER_NOT_FOUND"
	CodePlayerEmptyUserID     = "PLAYER_EMPTY_USER_ID"
	CodePlayerTitleEmpty      = "PLAYER_TITLE_EMPTY"
	CodeXPAmountInvalid       = "XP_AMOUNT_INVALID"
	CodeNoInventory           = "NO_INVENTORY"
	CodeGearNotFound          = "GEAR_NOT_FOUND"
	CodeNoGearEquipped        = "NO_GEAR_EQUIPPED"
	CodeGearSlotInvalid       = "GEAR_SLOT_INVALID"
	CodeRewardAmountInvalid   = "REWARD_AMOUNT_INVALID"
	CodeGameLevelInvalid      = "GAME_LEVEL_INVALID"
	CodeNotFound              = "NOT_FOUND"
)

var enUSCatalog = NewCatalog(BaseLocale, map[Code]string{
	// Template engine errors
	CodeTemplateNotFound:      "Encounter screen {{.TemplateID}} was not found",
	CodeActionNotFound:        "Action {{.ActionID}} is not available on {{.TemplateID}}",
	CodeActionHandlerNotFound: "This action is not wired up yet",
	CodeTemplateIDConflict:    "Encounter screen {{.TemplateID}} is already registered",
	CodeRegistryFrozen:        "Encounter registration is closed",
	CodeFeatureSetInvalid:     "The encounter definition is invalid",

	// Player errors
	CodePlayerNotFound:    "Adventurer profile was not found",
	CodePlayerEmptyUserID: "A player identifier is required",
	CodePlayerTitleEmpty:  "A title name is required",
	CodeXPAmountInvalid:   "Experience amount must be greater than zero",

	// Inventory errors
	CodeNoInventory:     "You have no inventory yet",
	CodeGearNotFound:    "That gear is not in your inventory",
	CodeNoGearEquipped:  "Nothing is equipped in the {{.Slot}} slot",
	CodeGearSlotInvalid: "Unknown gear slot: {{.Slot}}",

	// Reward errors
	CodeRewardAmountInvalid: "Reward amounts must be greater than zero",

	// Game level errors
	CodeGameLevelInvalid: "Game level must be at least 1",

	// Storage errors
	CodeNotFound: "The requested resource was not found",
})
