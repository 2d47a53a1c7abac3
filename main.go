package main

import (
	"log"
	"net/http"
	"os"

	"github.com/sinashm/go-shop/app/cmd"
	"github.com/sinashm/go-shop/app/configs"
	"github.com/sinashm/go-shop/app/routes"
)

func main() {

	env := configs.LoadEnv()
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	if env.ZARINPAL_MERCHANT_ID == "" {
		log.Fatal("ZARINPAL_MERCHANT_ID is empty! Please check your .env file.")
	}

	sessionKeys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatal("Session keys failed to load:", err)
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	router := routes.NewRouter(db, sessionKeys)

	server := http.Server{
		Addr:    env.Port,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Println("failed to connecting to the server")
	}

}
