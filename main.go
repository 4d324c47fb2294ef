package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/crimechain/report-api/api/handlers"

	"go.uber.org/zap"

	"github.com/crimechain/report-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil {
		log.Fatal(err)
	}

	a.Jobs.Start()
	defer a.Jobs.Stop()

	port := os.Getenv("PORT")
	baseURL := os.Getenv("BASE_URL")
	zap.S().Infow("report-api is up and running",
		"port", port,
		"url", baseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), a.Router))
}
