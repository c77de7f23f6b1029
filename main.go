package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/clearledgr/clearledgr-ap/cmd/process"
	"github.com/clearledgr/clearledgr-ap/cmd/root"
)

func init() {
	loadEnvSilently()

	root.Init()
	root.Cmd.AddCommand(process.Cmd)
}

// loadEnvSilently loads a .env file from the working directory or its parent
// before any configuration is read. Missing files are fine.
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

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
