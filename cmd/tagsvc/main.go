// Command tagsvc runs the store tag API.
//
// @title Store Tags API
// @version 1.0
// @description Tag management for items of a multi-store inventory.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"fmt"
	"os"

	"storetags/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
