// Command wirehttpd serves the wirehttp placeholder dispatcher: /echo
// mirrors the request body, everything else answers with a fixed body.
// Configuration comes from WIREHTTP_* environment variables, optionally
// loaded from a local .env file.
package main

import (
	"github.com/joho/godotenv"
	"github.com/wirehttp/wirehttp/wired"
)

func main() {
	// local development convenience, absence is fine
	_ = godotenv.Load()

	wired.NewApp().Run()
}
