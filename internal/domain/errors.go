package domain

import "errors"

// Domain errors
var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrAlreadyDead       = errors.New("player is already dead")
	ErrNotDead           = errors.New("player is not dead")
	ErrUnknownEffectType = errors.New("unknown effect type")
	ErrUnknownRole       = errors.New("unknown role")
	ErrInvalidTransition = errors.New("invalid phase transition")
	ErrGameOver          = errors.New("game is already over")
	ErrInfoNotFound      = errors.New("information record not found")
	ErrNotEnoughPlayers  = errors.New("not enough players to start")
	ErrDuplicateName     = errors.New("duplicate player name")
)
