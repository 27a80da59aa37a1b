/*
Strafe is a 2D arcade shooter built on its own small engine. This entry
point wires the shooter game into the engine and runs it until the window
closes or the player goes down.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mirafall/strafe/engine"
	"github.com/mirafall/strafe/game"
)

func main() {
	g := game.NewShooterGame()

	eng, err := engine.New(g)
	if err != nil {
		panic(err)
	}

	if err := eng.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		_ = eng.Shutdown()
	}()

	if err := eng.Run(); err != nil {
		panic(err)
	}
}
