package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	goconfig "github.com/plasne/go-config"
	gothrottler "github.com/plasne/go-throttler"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var flagMaxRequests, flagWindow int

func init() {

	// startup config
	err := goconfig.Startup()
	if err != nil {
		panic(err)
	}

	// start config block
	fmt.Println("CONFIGURATION:")

	// configure logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logLevels := map[string]int{
		"trace":    int(zerolog.TraceLevel),
		"debug":    int(zerolog.DebugLevel),
		"info":     int(zerolog.InfoLevel),
		"warn":     int(zerolog.WarnLevel),
		"error":    int(zerolog.ErrorLevel),
		"fatal":    int(zerolog.FatalLevel),
		"panic":    int(zerolog.PanicLevel),
		"nolevel":  int(zerolog.NoLevel),
		"disabled": int(zerolog.Disabled),
	}
	logLevel := goconfig.AsInt().TrySetByEnv("LOG_LEVEL").Lookup(logLevels).Clamp(-1, 7).DefaultTo(int(zerolog.InfoLevel)).PrintLookup(logLevels).Value()
	zerolog.SetGlobalLevel(zerolog.Level(logLevel))

	// allow for flags to override env
	flag.IntVar(&flagMaxRequests, "max-requests", 0, "Determines how many dispatches are allowed per window. This overrides MAX_REQUESTS.")
	flag.IntVar(&flagWindow, "window-ms", 0, "Determines the window length in milliseconds. This overrides WINDOW_MS.")

}

func main() {
	ctx := context.Background()

	// complete configuration
	flag.Parse()
	MAX_REQUESTS := goconfig.AsInt().TrySetValue(flagMaxRequests).TrySetByEnv("MAX_REQUESTS").DefaultTo(5).Print().Value()
	WINDOW_MS := goconfig.AsInt().TrySetValue(flagWindow).TrySetByEnv("WINDOW_MS").DefaultTo(1000).Print().Value()

	// configure the throttler
	throttler := gothrottler.NewThrottler(uint32(MAX_REQUESTS), time.Duration(WINDOW_MS)*time.Millisecond)
	listener := throttler.AddListener(func(event string, val int, msg string, metadata interface{}) {
		switch event {
		case gothrottler.DispatchedEvent:
			if op, ok := metadata.(*gothrottler.Operation); ok {
				log.Info().Msgf("request to %v completed with status %v.", op.Resource(), val)
			}
		case gothrottler.FailedEvent:
			if op, ok := metadata.(*gothrottler.Operation); ok {
				log.Error().Msgf("error fetching %v: %v", op.Resource(), msg)
			}
		case gothrottler.ThrottledEvent:
			log.Debug().Msgf("throttled for %v ms.", val)
		case gothrottler.DrainingEvent:
			log.Debug().Msgf("stopping request processing; %v operations left to drain.", val)
		case gothrottler.ShutdownEvent:
			log.Debug().Msgf("throttler shutdown.")
		}
	})
	defer throttler.RemoveListener(listener)

	// start the processing loop
	if err := throttler.Start(ctx); err != nil {
		panic(err)
	}

	// dynamically add requests
	urls := []string{
		"https://httpbin.org/get",
		"https://httpbin.org/delay/1",
		"https://httpbin.org/uuid",
		"https://httpbin.org/ip",
		"https://httpbin.org/headers",
	}
	for _, url := range urls {
		op := gothrottler.NewOperation(url, func(payload []byte, status int) {
			snippet := string(payload)
			if len(snippet) > 50 {
				snippet = snippet[:50]
			}
			log.Info().Msgf("callback received data: %v...", snippet)
		})
		if err := throttler.Enqueue(op); err != nil {
			panic(err)
		}
		// simulate requests coming in at irregular intervals
		time.Sleep(100 * time.Millisecond)
	}

	// signal the stop and wait for the drain
	throttler.Stop()
}
