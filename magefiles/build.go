//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Packs the game textures into assets/textures.pack.
func (Build) Pack() error {
	_, err := executeCmd("go", withArgs(
		"run", "./cmd/strafe-pack",
		"-assets", "assets",
		"-out", "assets/textures.pack",
		"textures/ship.png", "textures/enemy.png", "textures/bullet.png",
	), withStream())
	return err
}

// Builds the game binary.
func (Build) Binary() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/strafe", "."), withStream())
	return err
}
