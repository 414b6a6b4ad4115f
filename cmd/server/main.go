package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/gopairs/gopairs/internal/server"
)

var (
	flagAddr       = flag.String("addr", "", "Address to listen on (default: auto-port on localhost)")
	flagResetDelay = flag.Duration("reset-delay", server.DefaultResetDelay,
		"How long a mismatched pair stays visible before flipping back")
)

func main() {
	flag.Parse()

	started := make(chan *server.ServerState, 1)
	ctx := context.Background()

	go func() {
		state := <-started
		fmt.Printf("GoPairs server listening on http://%s\n", state.Address)
	}()

	if err := server.Run(ctx, *flagAddr, *flagResetDelay, started); err != nil {
		log.Fatal(err)
	}
}
