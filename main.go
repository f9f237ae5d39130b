package main

import (
	"os"

	"heartmatch-backend/cmd"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("heartmatch failed")
		os.Exit(1)
	}
}
