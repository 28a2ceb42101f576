// cmd/server is the plain server entry point for deployments that do
// not need the full CLI. It boots the same way as `washly serve`.
package main

import (
	"log"

	"github.com/shashiranjanraj/washly/internal/server"

	_ "github.com/shashiranjanraj/washly/database/migrations"
	_ "github.com/shashiranjanraj/washly/database/seeders"
)

func main() {
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}
