/*
strafe-pack bundles loose textures into a single pack file the engine can
load without touching the filesystem per texture.

	strafe-pack -assets assets -out assets/textures.pack textures/ship.png textures/enemy.png
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mirafall/strafe/engine/assets/loaders"
	"github.com/mirafall/strafe/engine/core"
)

func main() {
	assetsDir := flag.String("assets", "assets", "asset base directory")
	out := flag.String("out", "assets/textures.pack", "output pack path")
	flag.Parse()

	keys := flag.Args()
	if len(keys) == 0 {
		fmt.Fprintln(os.Stderr, "usage: strafe-pack [-assets DIR] [-out FILE] KEY...")
		os.Exit(2)
	}

	entries := make(map[string]*loaders.TextureData, len(keys))
	for _, key := range keys {
		td, err := loaders.ResolveTexture(*assetsDir, key)
		if err != nil {
			core.LogFatal("cannot read texture %s: %s", key, err)
		}
		entries[key] = td
	}

	f, err := os.Create(*out)
	if err != nil {
		core.LogFatal("cannot create %s: %s", *out, err)
	}
	defer f.Close()

	if err := loaders.WritePack(f, entries); err != nil {
		core.LogFatal("writing pack: %s", err)
	}
	core.LogInfo("packed %d textures into %s", len(entries), *out)
}
