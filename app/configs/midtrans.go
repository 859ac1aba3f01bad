package configs

import (
	"log"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

var midtransCoreAPIClient coreapi.Client

func InitMidtransClient() {
	env := midtrans.Sandbox
	if LoadENV.APP_ENV == "production" {
		env = midtrans.Production
	}
	midtransCoreAPIClient.New(LoadENV.MIDTRANS_SERVER_KEY, env)
	midtrans.ClientKey = LoadENV.MIDTRANS_CLIENT_KEY
	midtrans.ServerKey = LoadENV.MIDTRANS_SERVER_KEY
	log.Println("✅ Midtrans Core API Client initialized.")
}

func GetMidtransCoreAPIClient() coreapi.Client {
	return midtransCoreAPIClient
}
