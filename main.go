package main

import "muroom/internal/app"

// @title                      Muroom API
// @version                    1.0
// @description                Registration, login, password reset and profile endpoints.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	app.Run()
}
