package main

import (
	cfg "galleryserv/src/configuration"
	server "galleryserv/src/server"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	config := cfg.ReadProperties()
	server.RunServer(config)
}
