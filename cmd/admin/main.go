// Command admin provisions admin accounts for the API.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/sirupsen/logrus"
	"github.com/synergy-india/admin-api/internal/app"
	"github.com/synergy-india/admin-api/internal/auth"
	"github.com/synergy-india/admin-api/internal/config"
	"github.com/synergy-india/admin-api/internal/repository"
)

type cli struct {
	app *kingpin.Application

	create         *kingpin.CmdClause
	createUsername *string
	createPassword *string
	createBcrypt   *bool

	hash         *kingpin.CmdClause
	hashPassword *string
	hashBcrypt   *bool
}

func newCLI() *cli {
	c := &cli{app: kingpin.New("admin", "Provision admin accounts for the SYNERGY INDIA API.")}

	c.create = c.app.Command("create-user", "Create an admin user in the configured database.")
	c.createUsername = c.create.Flag("username", "Login name.").Required().String()
	c.createPassword = c.create.Flag("password", "Plaintext password.").Required().Envar("ADMIN_PASSWORD").String()
	c.createBcrypt = c.create.Flag("bcrypt", "Store a bcrypt digest instead of SHA-256.").Bool()

	c.hash = c.app.Command("hash", "Print the digest of a password.")
	c.hashPassword = c.hash.Flag("password", "Plaintext password.").Required().Envar("ADMIN_PASSWORD").String()
	c.hashBcrypt = c.hash.Flag("bcrypt", "Print a bcrypt digest instead of SHA-256.").Bool()

	return c
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "admin:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	c := newCLI()
	cmd, err := c.app.Parse(args)
	if err != nil {
		return err
	}

	switch cmd {
	case c.hash.FullCommand():
		digest, err := digestFor(*c.hashPassword, *c.hashBcrypt)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, digest)
		return nil

	case c.create.FullCommand():
		return createUser(*c.createUsername, *c.createPassword, *c.createBcrypt, out)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func digestFor(password string, useBcrypt bool) (string, error) {
	if useBcrypt {
		return auth.HashPasswordBcrypt(password)
	}
	return auth.HashPassword(password), nil
}

func createUser(username, password string, useBcrypt bool, out io.Writer) error {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}
	if err := cfg.ValidateDatabase(); err != nil {
		return err
	}

	logger, err := app.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	logger.SetLevel(logrus.WarnLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repos, err := repository.Open(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer repos.Close(ctx)

	digest, err := digestFor(password, useBcrypt)
	if err != nil {
		return err
	}

	svc := auth.NewService(logger, repos.AdminUsers, repos.LoginHistory, nil)
	user, err := svc.CreateUser(ctx, username, digest)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created admin %s (%s)\n", user.Username, user.ID)
	return nil
}
