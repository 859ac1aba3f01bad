package main

import (
	"log"
	"net/http"
	"os"

	"github.com/oguzk/eticaret/app/cmd"
	"github.com/oguzk/eticaret/app/configs"
	"github.com/oguzk/eticaret/app/routes"
	"github.com/oguzk/eticaret/app/services"
)

func main() {

	env := configs.LoadENV
	if err := env.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	configs.InitMidtransClient()

	iyzicoClient, err := services.NewIyzicoClient(services.IyzicoConfig{
		APIKey:    env.IYZI_API_KEY,
		SecretKey: env.IYZI_SECRET_KEY,
		BaseURL:   env.IYZI_BASE_URL,
	})
	if err != nil {
		log.Fatalf("❌ Iyzico client init failed: %v", err)
	}
	log.Println("✅ Iyzico client initialized.")

	router := routes.NewRouter(db, iyzicoClient)

	server := http.Server{
		Addr:    env.Port,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Println("failed to connecting to the server")
	}
}
