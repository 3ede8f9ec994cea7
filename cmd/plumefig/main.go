// cmd/plumefig/main.go
package main

import (
	"plumeflux/internal/app"
	"plumeflux/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
