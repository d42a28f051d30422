package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"secure-petstore/internal/client"
	"secure-petstore/internal/platform/httpclient"
)

const defaultAPI = "http://localhost:8080"

var errUsage = errors.New("usage: petctl [-api URL] [-token T] register|login|me|logout|list|get|create|update|delete [flags]")

// readPassword se reemplaza en tests para no tocar la terminal.
var readPassword = func(w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return "", err
	}
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("petctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	api := global.String("api", envOr("PETCTL_API", defaultAPI), "API base URL")
	token := global.String("token", os.Getenv("PETCTL_TOKEN"), "bearer token")
	timeout := global.Duration("timeout", 10*time.Second, "request timeout")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		return errUsage
	}

	c, err := client.New(*api, *timeout)
	if err != nil {
		return err
	}
	c.SetToken(*token)

	cmd, rest := global.Arg(0), global.Args()[1:]
	out, err := dispatch(ctx, c, cmd, rest, stderr)
	if err != nil {
		return describe(err)
	}
	if out == nil {
		return nil
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func dispatch(ctx context.Context, c *client.Client, cmd string, args []string, stderr io.Writer) (any, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)

	switch cmd {
	case "register":
		username := fs.String("username", "", "username")
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password (prompted if empty)")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		pw, err := passwordOrPrompt(*password, stderr)
		if err != nil {
			return nil, err
		}
		return c.Register(ctx, *username, *email, pw)

	case "login":
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password (prompted if empty)")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		pw, err := passwordOrPrompt(*password, stderr)
		if err != nil {
			return nil, err
		}
		return c.Login(ctx, *email, pw)

	case "me":
		return c.Me(ctx)

	case "logout":
		return nil, c.Logout(ctx)

	case "list":
		return c.ListPets(ctx)

	case "get", "delete":
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() != 1 {
			return nil, fmt.Errorf("%s: expected a pet id", cmd)
		}
		if cmd == "delete" {
			return nil, c.DeletePet(ctx, fs.Arg(0))
		}
		return c.GetPet(ctx, fs.Arg(0))

	case "create":
		var in client.NewPet
		fs.StringVar(&in.Name, "name", "", "name")
		fs.StringVar(&in.Species, "species", "", "species")
		fs.IntVar(&in.Age, "age", 0, "age in years")
		fs.StringVar(&in.Breed, "breed", "", "breed")
		fs.StringVar(&in.Description, "description", "", "description")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return c.CreatePet(ctx, in)

	case "update":
		fs.String("name", "", "name")
		fs.String("species", "", "species")
		fs.Int("age", 0, "age in years")
		fs.String("breed", "", "breed")
		fs.String("description", "", "description")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() != 1 {
			return nil, errors.New("update: expected a pet id after the flags")
		}
		return c.UpdatePet(ctx, fs.Arg(0), changesFrom(fs))

	default:
		return nil, errUsage
	}
}

// changesFrom arma el patch solo con los flags que el usuario pasó.
func changesFrom(fs *flag.FlagSet) client.PetChanges {
	var ch client.PetChanges
	fs.Visit(func(f *flag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case "name":
			ch.Name = &v
		case "species":
			ch.Species = &v
		case "breed":
			ch.Breed = &v
		case "description":
			ch.Description = &v
		case "age":
			if g, ok := f.Value.(flag.Getter); ok {
				age := g.Get().(int)
				ch.Age = &age
			}
		}
	})
	return ch
}

func passwordOrPrompt(pw string, w io.Writer) (string, error) {
	if pw != "" {
		return pw, nil
	}
	return readPassword(w)
}

// describe agrega al error los detalles de validación del server.
func describe(err error) error {
	var he *httpclient.HTTPError
	if !errors.As(err, &he) || len(he.Errors) == 0 {
		return err
	}
	parts := make([]string, 0, len(he.Errors))
	for _, fe := range he.Errors {
		parts = append(parts, fe.Message)
	}
	return fmt.Errorf("%s: %s", he.Message, strings.Join(parts, "; "))
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
