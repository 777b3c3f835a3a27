// Command qa serves the question and answer API.
package main

import "github.com/content-platform-api/internal/server"

func main() {
	server.Run(server.QA)
}
