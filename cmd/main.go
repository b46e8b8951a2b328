package main

import (
	"github.com/corray333/backend-labs/shop/internal/app"
	"github.com/corray333/backend-labs/shop/internal/config"
)

//	@title		Shop order service
//	@version	1.0
//	@BasePath	/api/v1
func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
