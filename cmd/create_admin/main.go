package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
	"wonderchain/internal/config"
	c "wonderchain/internal/core/domain/common"
	"wonderchain/internal/core/domain/user"
	dbuser "wonderchain/internal/db/user"
	passwordhasher "wonderchain/internal/implementations/password_hasher"

	"github.com/jackc/pgx/v4/pgxpool"
)

// The password is read from ADMIN_PASSWORD so that it does not end up in the shell history.
func main() {
	email := flag.String("email", "", "email of the admin user")
	flag.Parse()

	password := user.RawPassword(os.Getenv("ADMIN_PASSWORD"))
	if *email == "" {
		exit(errors.New("-email is required"))
	}
	if err := user.ValidateNewPassword(password); err != nil {
		exit(fmt.Errorf("ADMIN_PASSWORD: %w", err))
	}

	cfg, err := config.Load()
	if err != nil {
		exit(err)
	}

	ctx := context.Background()
	pool, err := pgxpool.Connect(ctx, cfg.PostgresqlURL)
	if err != nil {
		exit(err)
	}
	defer pool.Close()

	hash, err := passwordhasher.NewBcrypt(cfg.Secret, cfg.BcryptHasherCost).HashPassword(password)
	if err != nil {
		exit(err)
	}

	u, err := dbuser.NewPgxRepository(pool).Create(ctx, user.CreateUserInput{
		Email:        c.NewEmail(*email),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		exit(err)
	}

	fmt.Printf("Admin user %d has been created.\n", u.ID)
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
