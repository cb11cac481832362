package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"themisai-backend/config"
	"themisai-backend/logger"
	"themisai-backend/models"
	"themisai-backend/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "YAML configuration file")
	email := flag.String("email", "test@example.com", "email of the test user")
	password := flag.String("password", "testpassword123", "password of the test user")
	name := flag.String("name", "Test User", "full name of the test user")
	line1 := flag.String("line1", "Jl. Jenderal Sudirman No. 1", "street address")
	city := flag.String("city", "Jakarta Selatan", "city; leave empty to test the incomplete-address path")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON})

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	person := &models.Person{
		FullName: *name,
		Email:    email,
		Address:  &models.Address{Line1: optional(*line1), City: optional(*city)},
	}

	repo := repository.NewProfileRepository(pool)
	err = repo.CreateProfile(ctx, person, *password)
	if errors.Is(err, repository.ErrProfileExists) {
		log.Info("test user already exists", "id", person.ID, "email", *email)
		return
	}
	if err != nil {
		log.Error("failed to create test user", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Test user created\n")
	fmt.Printf("   ID: %s\n", person.ID)
	fmt.Printf("   Email: %s\n", *email)
	fmt.Printf("   Password: %s\n", *password)
	fmt.Printf("   Address: %s, %s\n", *line1, *city)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
