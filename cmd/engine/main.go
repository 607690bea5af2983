// Command engine is the UCI entry point: it wires the logger and starts
// the protocol loop against stdin/stdout. Grounded on CounterGo's
// main.go bootstrap shape.
package main

import (
	"os"

	"github.com/halfkomma/gochess/internal/log"
	"github.com/halfkomma/gochess/uci"
)

func main() {
	log.Logger.Info().Msg("gochess starting")
	defer func() {
		if r := recover(); r != nil {
			log.Logger.Fatal().Interface("panic", r).Msg("engine initialization failed")
		}
	}()
	protocol := uci.NewProtocol(os.Stdout)
	protocol.Run(os.Stdin)
}
