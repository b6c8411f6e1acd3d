package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aosmith-community/aosmith-go/pkg/aosmith"
	"github.com/aosmith-community/aosmith-go/pkg/config"
	"github.com/aosmith-community/aosmith-go/pkg/debug"
	"github.com/aosmith-community/aosmith-go/pkg/health"
	"github.com/aosmith-community/aosmith-go/pkg/utils"
)

const debugServerPort = 6060

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	config, err := config.ReadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error found when reading the config.")
	}

	if config.LogLevel == "TRACE" {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	} else if config.LogLevel == "DEBUG" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else if config.LogLevel == "INFO" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else if config.LogLevel == "WARN" {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	} else if config.LogLevel == "ERROR" {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}

	log.Info().Msg("Starting aosmith-go!")

	// Add profiling server for live profile of the program.
	debugServerExitDone := &sync.WaitGroup{}
	debugServerExitDone.Add(1)
	srv, isReady := debug.StartDebugServer(debugServerPort, debugServerExitDone)

	options := aosmith.NewClientOptions().
		SetCredentials(config.AOSmith.Email, config.AOSmith.Password)
	client := aosmith.NewClient(options)

	ctx := context.Background()

	okay, err := client.IsEverythingOkay(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Error probing the A. O. Smith API")
	}
	log.Info().Bool("isEverythingOkay", okay).Msg("A. O. Smith API status")

	devices, err := client.GetDevices(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Error listing devices")
	}
	for _, device := range devices {
		log.Info().
			Str("junctionId", device.JunctionID).
			Str("name", device.Name).
			Str("model", device.Model).
			Bool("isOnline", device.Status.IsOnline).
			Int("setpoint", device.Status.TemperatureSetpoint).
			Str("mode", string(device.Status.CurrentMode)).
			Msg("Device found")

		energyUse, err := client.GetEnergyUseData(ctx, device.JunctionID)
		if err != nil {
			log.Warn().Err(err).Str("junctionId", device.JunctionID).Msg("Unable to fetch energy usage")
			continue
		}
		log.Info().
			Str("junctionId", device.JunctionID).
			Float64("lifetimeKwh", energyUse.LifetimeKwh).
			Str("history", utils.PrettyPrint(energyUse.History)).
			Msg("Energy usage")
	}
	isReady.Store(true)

	var healthServer health.Health
	if config.HealthCheck.Enabled {
		healthServer = health.NewHealth(config.HealthCheck, client)
		if healthServer == nil {
			log.Fatal().Msg("Error creating the health check server")
		}
		if err := healthServer.Start(); err != nil {
			log.Fatal().Err(err).Msg("Error starting the health check server")
		}

		// Keep serving health until interrupted.
		exitSignal := make(chan os.Signal, 2)
		signal.Notify(exitSignal, os.Interrupt, syscall.SIGTERM)
		<-exitSignal

		log.Info().Msg("Shutting down health check server...")
		if err := healthServer.Stop(); err != nil {
			log.Fatal().Err(err).Msg("Error when stopping the health check server")
		}
	}

	if err := client.Close(); err != nil {
		log.Fatal().Err(err).Msg("Error when closing the client")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info().Msg("Shutting down debug server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		panic(err) // failure/timeout shutting down the server gracefully.
	}

	debugServerExitDone.Wait()
	log.Info().Msg("Done exiting.")
}
