package arena

import "errors"

// ErrInvalidConfig is returned when configuration is rejected at construction
// time: AI difficulty outside the table, bad paddle or ball geometry, an
// empty field. Nothing is applied when it is returned.
var ErrInvalidConfig = errors.New("arena: invalid configuration")

// ErrContractViolation marks a caller bug: a non-positive time delta, an item
// applied to an entity that lacks the property it modifies, an unknown player.
var ErrContractViolation = errors.New("arena: contract violation")
