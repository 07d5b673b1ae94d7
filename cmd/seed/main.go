package main

import (
	"flag"
	"fmt"
	"os"
	"topic-archive/fixtures"
	"topic-archive/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
)

type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" required:"true"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"INFO"`
	// SEED_COLOURS enables colorized output
	Colours bool `envconfig:"SEED_COLOURS" default:"true"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fixturePath := flag.String("fixture", "fixtures/example.json", "JSON fixture to import")
	flag.Parse()

	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	file, err := os.Open(*fixturePath)
	if err != nil {
		return err
	}
	defer file.Close()

	fixture, err := fixtures.Load(file)
	if err != nil {
		return err
	}

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	summary, err := fixtures.Import(fixture,
		repositories.NewStreamRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewMessageRepository(db, log),
	)
	if err != nil {
		return err
	}

	line := fmt.Sprintf("Imported %d streams, %d users, %d messages from %s",
		summary.Streams, summary.Users, summary.Messages, *fixturePath)
	if config.Colours {
		line = color.New(color.FgGreen, color.OpBold).Render(line)
	}
	fmt.Println(line)
	return nil
}
