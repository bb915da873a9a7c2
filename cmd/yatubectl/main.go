// Command yatubectl performs administrative tasks against the Yatube
// database: applying migrations, managing groups, creating users and
// reporting row counts.
//
// Usage:
//
//	yatubectl [-config file.json] migrate
//	yatubectl [-config file.json] stats
//	yatubectl [-config file.json] group create -title T -slug S [-description D]
//	yatubectl [-config file.json] group list
//	yatubectl [-config file.json] user create -username U -email E [-first-name F] [-last-name L]
//
// Database settings come from the same sources as the server. JWT_SECRET is
// not needed because yatubectl never issues session tokens.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/msomdec/yatube/internal/config"
	"github.com/msomdec/yatube/internal/domain"
	"github.com/msomdec/yatube/internal/form"
	"github.com/msomdec/yatube/internal/repository"
	"github.com/msomdec/yatube/internal/service"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

var errUsage = errors.New("usage: yatubectl [-config file] migrate | stats | group create|list | user create")

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Getenv, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "yatubectl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, getenv func(string) string, out io.Writer) error {
	global := flag.NewFlagSet("yatubectl", flag.ContinueOnError)
	configFile := global.String("config", "", "path to a JSON config file")
	if err := global.Parse(args); err != nil {
		return err
	}
	rest := global.Args()
	if len(rest) == 0 {
		return errUsage
	}

	var loadArgs []string
	if *configFile != "" {
		loadArgs = []string{"-config", *configFile}
	}
	cfg, err := config.LoadTooling(loadArgs, getenv)
	if err != nil {
		return err
	}

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	switch {
	case rest[0] == "migrate":
		version, err := store.SchemaVersion(ctx)
		if err != nil {
			return fmt.Errorf("schema version: %w", err)
		}
		fmt.Fprintf(out, "migrations applied, schema version %d\n", version)
		return nil
	case rest[0] == "stats":
		return printStats(ctx, store, out)
	case len(rest) >= 2 && rest[0] == "group" && rest[1] == "create":
		return createGroup(ctx, service.NewGroupService(store.Groups()), rest[2:], out)
	case len(rest) >= 2 && rest[0] == "group" && rest[1] == "list":
		return listGroups(ctx, service.NewGroupService(store.Groups()), out)
	case len(rest) >= 2 && rest[0] == "user" && rest[1] == "create":
		auth := service.NewAuthService(store.Users(), cfg.JWTSecret, cfg.BcryptCost, cfg.TokenTTL)
		return createUser(ctx, auth, rest[2:], out)
	}
	return errUsage
}

func createGroup(ctx context.Context, groups *service.GroupService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("group create", flag.ContinueOnError)
	title := fs.String("title", "", "group title")
	slug := fs.String("slug", "", "unique slug used in /group/{slug}/")
	description := fs.String("description", "", "group description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	g, err := groups.Create(ctx, *title, *slug, *description)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created group %d %s\n", g.ID, g.Slug)
	return nil
}

func listGroups(ctx context.Context, groups *service.GroupService, out io.Writer) error {
	list, err := groups.List(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSLUG\tTITLE")
	for _, g := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", g.ID, g.Slug, g.Title)
	}
	return tw.Flush()
}

func printStats(ctx context.Context, store domain.Store, out io.Writer) error {
	users, err := store.Users().Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	groups, err := store.Groups().List(ctx)
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}
	posts, err := store.Posts().CountAll(ctx)
	if err != nil {
		return fmt.Errorf("count posts: %w", err)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "users\t%d\n", users)
	fmt.Fprintf(tw, "groups\t%d\n", len(groups))
	fmt.Fprintf(tw, "posts\t%d\n", posts)
	return tw.Flush()
}

func createUser(ctx context.Context, auth *service.AuthService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("user create", flag.ContinueOnError)
	username := fs.String("username", "", "login name")
	email := fs.String("email", "", "e-mail address")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprint(out, "Password: ")
	pw1, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(out, "Password (again): ")
	pw2, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	f := form.ParseSignupForm(url.Values{
		"username":   {*username},
		"email":      {*email},
		"first_name": {*firstName},
		"last_name":  {*lastName},
		"password1":  {string(pw1)},
		"password2":  {string(pw2)},
	})
	user, err := auth.Register(ctx, f)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			for field, msgs := range f.Errors {
				for _, m := range msgs {
					fmt.Fprintf(out, "%s: %s\n", field, m)
				}
			}
		}
		return err
	}
	fmt.Fprintf(out, "created user %d %s\n", user.ID, user.Username)
	return nil
}
