// cmd/plumetab/main.go
package main

import (
	"plumeflux/internal/appshell"
	"plumeflux/internal/tabapp"
)

func main() {
	appshell.Main(tabapp.RunContext)
}
