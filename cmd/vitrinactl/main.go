// Package main is the operator CLI for the access allow-list. It talks to the
// same database as the server, so grants take effect on the next gate check.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	accessmodels "vitrina/internal/access/models"
	accessstore "vitrina/internal/access/store"
	"vitrina/internal/platform/config"
	"vitrina/internal/platform/database"
	"vitrina/internal/sentinel"
	"vitrina/pkg/secrets"
)

const usage = `vitrinactl - showcase admin maintenance

Usage:
  vitrinactl add-user    <telegram-id>   grant access
  vitrinactl remove-user <telegram-id>   revoke access
  vitrinactl list-users                  print the allow-list
  vitrinactl hash-token  [token]         bcrypt-hash an admin token (generates one if omitted)

DATABASE_URL must point at the server's database.
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	switch args[0] {
	case "add-user":
		err = addUser(ctx, args[1:])
	case "remove-user":
		err = removeUser(ctx, args[1:])
	case "list-users":
		err = listUsers(ctx)
	case "hash-token":
		err = hashToken(args[1:])
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func openStore() (*accessstore.PostgresStore, func(), error) {
	cfg := config.FromEnv()
	if cfg.Database.URL == "" {
		return nil, nil, errors.New("DATABASE_URL is not set")
	}

	pool, err := database.New(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = pool.Close() }
	return accessstore.NewPostgres(pool.DB()), closeFn, nil
}

func parseTelegramID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("exactly one telegram id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q is not a valid telegram id", args[0])
	}
	return id, nil
}

func addUser(ctx context.Context, args []string) error {
	telegramID, err := parseTelegramID(args)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	record := &accessmodels.AccessRecord{
		ID:         uuid.New(),
		TelegramID: telegramID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := store.Create(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return fmt.Errorf("telegram id %d already has access", telegramID)
		}
		return err
	}

	fmt.Printf("access granted to %d (record %s)\n", telegramID, record.ID)
	return nil
}

func removeUser(ctx context.Context, args []string) error {
	telegramID, err := parseTelegramID(args)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Delete(ctx, telegramID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return fmt.Errorf("telegram id %d has no access record", telegramID)
		}
		return err
	}

	fmt.Printf("access revoked for %d\n", telegramID)
	return nil
}

func listUsers(ctx context.Context) error {
	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	records, err := store.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("allow-list is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TELEGRAM ID\tGRANTED AT\tRECORD")
	for _, record := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\n",
			record.TelegramID,
			record.CreatedAt.Format(time.RFC3339),
			record.ID,
		)
	}
	return w.Flush()
}

func hashToken(args []string) error {
	var token string
	switch len(args) {
	case 0:
		generated, err := secrets.Generate()
		if err != nil {
			return err
		}
		token = generated
		fmt.Println("token (store it securely, it is not recoverable):", token)
	case 1:
		token = args[0]
	default:
		return errors.New("at most one token argument is allowed")
	}

	hash, err := secrets.Hash(token)
	if err != nil {
		return err
	}
	fmt.Println("ADMIN_TOKEN_HASH=" + hash)
	return nil
}
