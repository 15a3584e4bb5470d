// Seed provisions the admin credential. Logins are created here and only
// here; the API surface never writes to the credential store.
//
// The password is stored verbatim (the login check compares plaintext),
// so treat the seeded database accordingly.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"emp-portal/internal/auth"
	"emp-portal/internal/shared/connection"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	username := flag.String("username", "", "admin username (required)")
	password := flag.String("password", "", "admin password (required)")
	fullName := flag.String("fullname", "", "display name (optional, falls back to username at login)")
	flag.Parse()

	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	if err := gormDB.AutoMigrate(&auth.Credential{}); err != nil {
		log.Fatalf("migrate credentials: %v", err)
	}

	repo := auth.NewRepository(gormDB)
	ctx := context.Background()

	if _, err := repo.FindByUsername(ctx, *username); err == nil {
		log.Printf("credential for %q already exists, nothing to do", *username)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("lookup credential: %v", err)
	}

	maxSno, err := repo.MaxSequenceID(ctx)
	if err != nil {
		log.Fatalf("read max sequence id: %v", err)
	}

	cred := &auth.Credential{
		SequenceID: maxSno + 1,
		Username:   *username,
		Password:   *password,
		FullName:   *fullName,
	}
	if err := repo.Create(ctx, cred); err != nil {
		log.Fatalf("create credential: %v", err)
	}

	log.Printf("credential for %q created (sequence id %d)", *username, cred.SequenceID)
}
