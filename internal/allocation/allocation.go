// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package allocation computes the simulated airdrop allocation for a
// submission. The score is four deterministic additions plus one random draw
// taken from an injectable RandomSource.
package allocation

import (
	"strings"

	"github.com/pdiddy/airdrop-checker/pkg/types"
)

const (
	// BaseValue is awarded to every wallet.
	BaseValue = 500

	// LongWalletBonus is added when the wallet address is longer than
	// LongWalletThreshold characters.
	LongWalletBonus     = 500
	LongWalletThreshold = 10

	// SocialBonus is added for any non-blank social handle.
	SocialBonus = 750

	// RoleBonus is added per non-blank community role.
	RoleBonus = 250

	// RandomSpan is the exclusive upper bound of the random offset.
	RandomSpan = 500
)

// Calculate returns the full breakdown for sub. The wallet precondition
// (non-empty) is the caller's job; Calculate is total over its input.
func Calculate(sub types.Submission, src RandomSource) types.Breakdown {
	b := types.Breakdown{Base: BaseValue}

	if len(sub.WalletAddress) > LongWalletThreshold {
		b.WalletBonus = LongWalletBonus
	}
	if strings.TrimSpace(sub.TwitterHandle) != "" {
		b.SocialBonus = SocialBonus
	}

	b.Roles = ParseRoles(sub.DiscordRoles)
	b.RoleBonus = RoleBonus * len(b.Roles)

	b.RandomOffset = offset(src)
	return b
}

// Value returns the allocation value for sub.
func Value(sub types.Submission, src RandomSource) int {
	return Calculate(sub, src).Total()
}

// ParseRoles splits raw on commas and returns the trimmed, non-empty entries
// in their original order.
func ParseRoles(raw string) []string {
	var roles []string
	for _, part := range strings.Split(raw, ",") {
		if role := strings.TrimSpace(part); role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}

// offset draws from src and clamps into [0, RandomSpan) so a misbehaving
// source can never push the total below BaseValue.
func offset(src RandomSource) int {
	if src == nil {
		src = NewRandomSource()
	}
	n := src.IntN(RandomSpan)
	switch {
	case n < 0:
		return 0
	case n >= RandomSpan:
		return RandomSpan - 1
	}
	return n
}
