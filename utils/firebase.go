// utils/firebase.go
package utils

import (
	"context"
	"log"

	"gkmslots/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

var RealtimeDB *db.Client

// FirebaseInit initializes the Firebase App and Realtime Database client.
func FirebaseInit() {
	ctx := context.Background()
	opts := []option.ClientOption{}
	if path := config.AppConfig.FirebaseCredentialsFile; path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		DatabaseURL: config.AppConfig.FirebaseDatabaseURL,
	}, opts...)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Database client: %v", err)
	}

	RealtimeDB = client
}
