package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/expense-ledger/cmd/add"
	"fjacquet/expense-ledger/cmd/categories"
	"fjacquet/expense-ledger/cmd/classify"
	"fjacquet/expense-ledger/cmd/history"
	"fjacquet/expense-ledger/cmd/root"
	"fjacquet/expense-ledger/cmd/serve"
	"fjacquet/expense-ledger/cmd/summary"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure global log level before any logger is used
	root.Log.SetLevel(configureLogLevelDirectly())

	// 3. Initialize root command
	root.Init()

	// 4. Add all subcommands
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(history.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global logrus level from LOG_LEVEL
// and returns it
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
