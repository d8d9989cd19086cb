// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the airdrop checker:
// the form submission, the computed allocation, and configuration.
package types

// Submission is the raw form input for one eligibility check.
// Only WalletAddress is required; no format checking is applied to any field.
type Submission struct {
	// WalletAddress identifies the wallet being checked (e.g. "0x...").
	WalletAddress string `json:"walletAddress" yaml:"wallet_address"`

	// TwitterHandle is the optional social handle (e.g. "@your_handle").
	TwitterHandle string `json:"twitterHandle,omitempty" yaml:"twitter_handle,omitempty"`

	// DiscordRoles is free text listing community roles, comma-separated.
	DiscordRoles string `json:"discordRoles,omitempty" yaml:"discord_roles,omitempty"`
}

// IsZero reports whether every field is empty.
func (s Submission) IsZero() bool {
	return s.WalletAddress == "" && s.TwitterHandle == "" && s.DiscordRoles == ""
}

// Breakdown lists the components that add up to an allocation value.
type Breakdown struct {
	Base         int      `json:"base" yaml:"base"`
	WalletBonus  int      `json:"walletBonus" yaml:"wallet_bonus"`
	SocialBonus  int      `json:"socialBonus" yaml:"social_bonus"`
	RoleBonus    int      `json:"roleBonus" yaml:"role_bonus"`
	RandomOffset int      `json:"randomOffset" yaml:"random_offset"`
	Roles        []string `json:"roles,omitempty" yaml:"roles,omitempty"`
}

// Deterministic returns the total without the random offset.
func (b Breakdown) Deterministic() int {
	return b.Base + b.WalletBonus + b.SocialBonus + b.RoleBonus
}

// Total returns the allocation value.
func (b Breakdown) Total() int {
	return b.Deterministic() + b.RandomOffset
}

// AllocationResult is what the user sees after a successful check.
// It is created fresh per submission and never stored.
type AllocationResult struct {
	// Value is the simulated token amount.
	Value int `json:"value" yaml:"value"`

	// Message is the generated celebratory text, or the fallback message.
	Message string `json:"message" yaml:"message"`

	// Fallback is true when Message is the fixed fallback text.
	Fallback bool `json:"fallback" yaml:"fallback"`

	// Breakdown shows how Value was reached.
	Breakdown Breakdown `json:"breakdown" yaml:"breakdown"`
}
