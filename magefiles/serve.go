//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Serve builds the binary and runs the web form on :8080.
func Serve() error {
	mg.Deps(Build)
	return sh.RunV("./bin/airdrop-checker", "serve")
}

// Demo runs one offline check with a fixed seed and no text-generation call.
func Demo() error {
	mg.Deps(Build)
	return sh.RunV("./bin/airdrop-checker", "check",
		"--wallet", "0x71C7656EC7ab88b098defB751B7401B5f6d8976F",
		"--twitter", "@irys_xyz",
		"--roles", "OG, Contributor, Moderator",
		"--seed", "1",
		"--no-ai",
	)
}
