package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"

	"telegram-guard-bot/bot"
	"telegram-guard-bot/storage"

	"github.com/joho/godotenv"
)

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging (LevelInfo)")
	veryVerbose := flag.Bool("vv", false, "Enable very verbose logging (LevelDebug)")
	flag.Parse()

	setLogLevel(*verbose, *veryVerbose)

	if err := godotenv.Load(); err != nil {
		slog.Warn("main: Failed to load .env file", "error", err)
	}

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		slog.Error("main: TELEGRAM_BOT_TOKEN environment variable is required")
		os.Exit(1)
	}

	// The owner is the only operator; identity checks beyond this id are
	// external to the bot.
	ownerID, err := strconv.ParseInt(os.Getenv("OWNER_ID"), 10, 64)
	if err != nil || ownerID <= 0 {
		slog.Error("main: OWNER_ID environment variable must be a valid user id")
		os.Exit(1)
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "guard.sqlite"
		slog.Debug("main: Using default database path", "path", dbPath)
	}

	store, err := storage.New(dbPath)
	if err != nil {
		slog.Error("main: Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	guardBot, err := bot.New(token, store, ownerID)
	if err != nil {
		slog.Error("main: Failed to initialize bot", "error", err)
		os.Exit(1)
	}

	slog.Info("main: Starting bot...")
	if err := guardBot.Run(); err != nil {
		slog.Error("main: Bot stopped with error", "error", err)
		os.Exit(1)
	}
}

// setLogLevel configures the logging level based on the provided flags
func setLogLevel(verbose, veryVerbose bool) {
	logLevel := slog.LevelWarn
	if veryVerbose {
		logLevel = slog.LevelDebug
	} else if verbose {
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}
