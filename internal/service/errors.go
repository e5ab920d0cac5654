package service

import "errors"

// Local validation failures. These never reach the network.
var (
	ErrEmptyProductName = errors.New("product name is required")
	ErrEmptyIdea        = errors.New("idea text is required")
	ErrEmptyName        = errors.New("name must not be empty")
	ErrEmptyContent     = errors.New("update content must not be empty")
	ErrEmptyQuery       = errors.New("search query too short")
	ErrInvalidStatus    = errors.New("invalid status value")
	ErrInvalidType      = errors.New("invalid update type")
	ErrInvalidProgress  = errors.New("progress must be between 0 and 100")
	ErrInvalidField     = errors.New("unknown editable field")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
)

// State guards.
var (
	ErrNoScope              = errors.New("no scope loaded")
	ErrNoMilestone          = errors.New("no milestone loaded")
	ErrScopeTerminal        = errors.New("scope is converted or archived")
	ErrGenerating           = errors.New("generation already in progress")
	ErrConfirmationRequired = errors.New("deletion requires confirmation")
	ErrUnknownEpic          = errors.New("epic not found in scope")
	ErrUnknownStory         = errors.New("user story not found in milestone")
)
