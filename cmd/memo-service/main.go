package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/t-cool/naturalist/memoservice"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}
	if err := memoservice.Run(); err != nil {
		os.Exit(1)
	}
}
