// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Template engine errors
	CodeTemplateNotFound      Code = "TEMPLATE_NOT_FOUND"
	CodeActionNotFound        Code = "ACTION_NOT_FOUND"
	CodeActionHandlerNotFound Code = "ACTION_HANDLER_NOT_FOUND"
	CodeTemplateIDConflict    Code = "TEMPLATE_ID_CONFLICT"
	CodeRegistryFrozen        Code = "REGISTRY_FROZEN"
	CodeFeatureSetInvalid     Code = "FEATURE_SET_INVALID"

	// Player errors
	CodePlayerNotFound    Code = "PLAYER_NOT_FOUND"
	CodePlayerEmptyUserID Code = "PLAYER_EMPTY_USER_ID"
	CodePlayerTitleEmpty  Code = "PLAYER_TITLE_EMPTY"
	CodeXPAmountInvalid   Code = "XP_AMOUNT_INVALID"

	// Inventory errors
	CodeNoInventory     Code = "NO_INVENTORY"
	CodeGearNotFound    Code = "GEAR_NOT_FOUND"
	CodeNoGearEquipped  Code = "NO_GEAR_EQUIPPED"
	CodeGearSlotInvalid Code = "GEAR_SLOT_INVALID"

	// Reward errors
	CodeRewardAmountInvalid Code = "REWARD_AMOUNT_INVALID"

	// Game level errors
	CodeGameLevelInvalid Code = "GAME_LEVEL_INVALID"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodePlayerEmptyUserID,
		CodePlayerTitleEmpty,
		CodeXPAmountInvalid,
		CodeGearSlotInvalid,
		CodeRewardAmountInvalid,
		CodeGameLevelInvalid,
		CodeFeatureSetInvalid:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeNoGearEquipped,
		CodeTemplateIDConflict,
		CodeRegistryFrozen:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeTemplateNotFound,
		CodeActionNotFound,
		CodePlayerNotFound,
		CodeGearNotFound,
		CodeNoInventory:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
