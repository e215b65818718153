// Command scpigpiod serves the GPIO instrument described by the instrument
// package over a raw TCP socket.
//
// Grounded on original_source/SCPI_Server/pi_server.py's module-level
// bootstrap (bind a socket, build one PiGPIO, loop accepting clients), with
// the boot-message style carried over from cmd/pico-hal-main's println
// banter, translated to the standard log package for a hosted process.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"scpigpio/gpio"
	"scpigpio/instrument"
	"scpigpio/server"
)

func main() {
	port := flag.Int("port", 4000, "TCP port to listen on")
	tunes := flag.String("tunes", "", "directory holding intro.csv for the power-on buzzer tune (logged only; playback is out of scope)")
	flag.Parse()

	if *tunes != "" {
		log.Printf("scpigpiod: -tunes=%s noted, buzzer playback is not implemented", *tunes)
	}

	hw := gpio.NewSimulated()
	ins := instrument.New(hw)
	srv := server.New(ins)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	addr := ":" + strconv.Itoa(*port)
	log.Printf("scpigpiod: starting on %s", addr)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		log.Fatalf("scpigpiod: %v", err)
	}
	log.Println("scpigpiod: shut down")
}
