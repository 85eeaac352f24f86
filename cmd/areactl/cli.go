package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/polkiloo/areacheck/internal/adapter/areaclient"
	domainErrors "github.com/polkiloo/areacheck/internal/domain/errors"
)

// readPassword is replaced in tests.
var readPassword = term.ReadPassword

type settings struct {
	Server    string        `env:"AREACHECK_SERVER" envDefault:"localhost:8080"`
	TokenFile string        `env:"AREACHECK_TOKEN_FILE"`
	Password  string        `env:"AREACHECK_PASSWORD"`
	Timeout   time.Duration `env:"AREACHECK_TIMEOUT" envDefault:"10s"`
}

const usage = `usage: areactl [-server addr] [-token-file path] <command> [args]

commands:
  register <username>      create an account
  login <username>         log in and remember the session token
  check [-key k] <x> <y> <r>  check a point
  list                     list your points
  stats                    show point statistics
  logout                   end the session
`

func run(ctx context.Context, args []string, environ map[string]string, stdout, stderr io.Writer) int {
	var s settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: environ}); err != nil {
		fmt.Fprintf(stderr, "parse environment: %v\n", err)
		return 2
	}

	fs := flag.NewFlagSet("areactl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	fs.StringVar(&s.Server, "server", s.Server, "areacheck server address")
	fs.StringVar(&s.TokenFile, "token-file", s.TokenFile, "where the session token is kept")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	if s.TokenFile == "" {
		s.TokenFile = defaultTokenFile(environ)
	}

	client, err := areaclient.New(s.Server, s.Timeout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	if cmd != "register" && cmd != "login" {
		token, err := os.ReadFile(s.TokenFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(stderr, "read token: %v\n", err)
			return 1
		}
		client.SetToken(string(token))
	}

	c := &cli{client: client, settings: s, stdout: stdout, stderr: stderr}
	switch cmd {
	case "register":
		err = c.register(ctx, rest)
	case "login":
		err = c.login(ctx, rest)
	case "check":
		err = c.check(ctx, rest)
	case "list":
		err = c.list(ctx)
	case "stats":
		err = c.stats(ctx)
	case "logout":
		err = c.logout(ctx)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}

	var argErr usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &argErr):
		fmt.Fprintln(stderr, argErr)
		return 2
	case errors.Is(err, domainErrors.ErrUnauthenticated):
		fmt.Fprintln(stderr, "not logged in or session expired; run: areactl login <username>")
		return 1
	default:
		fmt.Fprintln(stderr, err)
		return 1
	}
}

type usageError string

func (e usageError) Error() string { return string(e) }

func defaultTokenFile(environ map[string]string) string {
	if home := environ["HOME"]; home != "" {
		return filepath.Join(home, ".areactl_token")
	}
	return ".areactl_token"
}

type cli struct {
	client   *areaclient.Client
	settings settings
	stdout   io.Writer
	stderr   io.Writer
}

func (c *cli) password() (string, error) {
	if c.settings.Password != "" {
		return c.settings.Password, nil
	}
	fmt.Fprint(c.stderr, "Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(c.stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

func (c *cli) credentials(args []string, cmd string) (string, string, error) {
	if len(args) != 1 {
		return "", "", usageError("usage: areactl " + cmd + " <username>")
	}
	pw, err := c.password()
	if err != nil {
		return "", "", err
	}
	return args[0], pw, nil
}

func (c *cli) register(ctx context.Context, args []string) error {
	username, pw, err := c.credentials(args, "register")
	if err != nil {
		return err
	}
	if err := c.client.Register(ctx, username, pw); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "registered %s\n", username)
	return nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	username, pw, err := c.credentials(args, "login")
	if err != nil {
		return err
	}
	token, err := c.client.Login(ctx, username, pw)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.settings.TokenFile, []byte(token), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	fmt.Fprintf(c.stdout, "logged in as %s\n", username)
	return nil
}

func (c *cli) check(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	key := fs.String("key", "", "idempotency key; \"auto\" generates one")
	if err := fs.Parse(args); err != nil {
		return usageError("usage: areactl check [-key k] <x> <y> <r>")
	}
	if fs.NArg() != 3 {
		return usageError("usage: areactl check [-key k] <x> <y> <r>")
	}

	var coords [3]float64
	for i, raw := range fs.Args() {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return usageError(fmt.Sprintf("invalid number %q", raw))
		}
		coords[i] = v
	}
	if *key == "auto" {
		*key = uuid.NewString()
	}

	point, err := c.client.Submit(ctx, coords[0], coords[1], coords[2], *key)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "(%g, %g) r=%g: %s\n", point.X, point.Y, point.R, verdict(point.Hit))
	return nil
}

func (c *cli) list(ctx context.Context) error {
	points, err := c.client.Points(ctx)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		fmt.Fprintln(c.stdout, "no points yet")
		return nil
	}
	for i, p := range points {
		fmt.Fprintf(c.stdout, "%d\t%g\t%g\t%g\t%s\n", i+1, p.X, p.Y, p.R, verdict(p.Hit))
	}
	return nil
}

func (c *cli) stats(ctx context.Context) error {
	s, err := c.client.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "total=%d misses=%d out_of_display=%d area=%.4f\n", s.Total, s.Misses, s.OutOfDisplay, s.Area)
	return nil
}

func (c *cli) logout(ctx context.Context) error {
	if err := c.client.Logout(ctx); err != nil {
		return err
	}
	if err := os.Remove(c.settings.TokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	fmt.Fprintln(c.stdout, "logged out")
	return nil
}

func verdict(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
