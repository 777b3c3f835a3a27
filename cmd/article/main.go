// Command article serves the article API.
package main

import "github.com/content-platform-api/internal/server"

func main() {
	server.Run(server.Article)
}
