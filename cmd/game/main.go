package main

import (
	"flag"
	"log"

	"github.com/Garsondee/Stack-Sense/internal/game"
	"github.com/Garsondee/Stack-Sense/internal/sfx"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := game.DefaultConfig()
	var mute bool
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "pile layout seed")
	flag.IntVar(&cfg.Rows, "rows", cfg.Rows, "rows in the pile")
	flag.BoolVar(&mute, "mute", false, "start without sound")
	flag.Parse()

	var player *sfx.Player
	if !mute {
		player = sfx.NewPlayer(0.6)
		if err := player.Init(); err != nil {
			log.Printf("audio disabled: %v", err)
			player = nil
		} else {
			defer player.Close()
		}
	}

	g, err := game.New(cfg, player)
	if err != nil {
		log.Fatal(err)
	}
	w, h := g.WindowSize()
	ebiten.SetWindowTitle("Stack Sense")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
