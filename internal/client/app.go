package client

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/service"
	"github.com/MKhiriev/lockbox/internal/tui"
)

const usage = `usage: lockbox <command> [flags]

commands:
  register   create an account
  login      log in and list vault titles
  show       print one decrypted item
  add        add a password or note
  delete     delete an item
  passwd     change the master password
  generate   generate a random password locally
`

type App struct {
	services *service.ClientServices
	prompter Prompter
	out      io.Writer

	copyToClipboard func(string) error

	logger *logger.Logger
}

func NewApp(services *service.ClientServices, prompter Prompter, out io.Writer, logger *logger.Logger) *App {
	return &App{
		services:        services,
		prompter:        prompter,
		out:             out,
		copyToClipboard: clipboard.WriteAll,
		logger:          logger,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrUnknownCommand
	}

	cmd, rest := args[0], args[1:]
	a.logger.Debug().Str("command", cmd).Msg("running client command")

	var err error
	switch cmd {
	case "register":
		err = a.register(ctx, rest)
	case "login", "list":
		err = a.list(ctx, rest)
	case "show":
		err = a.show(ctx, rest)
	case "add":
		err = a.add(ctx, rest)
	case "delete":
		err = a.delete(ctx, rest)
	case "passwd":
		err = a.passwd(ctx, rest)
	case "generate":
		err = a.generate(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}

	if err != nil {
		a.logger.Err(err).Str("command", cmd).Msg("client command failed")
	}
	return err
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// email returns the flag value or asks for it.
func (a *App) email(fromFlag string) (string, error) {
	if e := strings.TrimSpace(fromFlag); e != "" {
		return e, nil
	}
	return a.prompter.Prompt("Email", true)
}

// withSession logs in, runs fn with the key unlocked and logs out again.
func (a *App) withSession(ctx context.Context, emailFlag string, fn func(ctx context.Context) error) error {
	email, err := a.email(emailFlag)
	if err != nil {
		return err
	}
	password, err := a.prompter.PromptSecret("Master password")
	if err != nil {
		return err
	}

	if _, err = a.services.AuthService.Login(ctx, loginRequest(email, password)); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	defer func() {
		if lerr := a.services.AuthService.Logout(ctx); lerr != nil {
			a.logger.Warn().Err(lerr).Msg("logout failed")
		}
	}()

	return fn(ctx)
}

func (a *App) print(s string) {
	fmt.Fprint(a.out, s)
}

var _ Client = (*App)(nil)
var _ Prompter = (*tui.TUI)(nil)
