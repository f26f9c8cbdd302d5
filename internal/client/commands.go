package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lockbox/internal/tui"
	"github.com/MKhiriev/lockbox/models"
)

func loginRequest(email, password string) models.LoginRequest {
	return models.LoginRequest{Email: email, MasterPassword: password}
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.newFlagSet("register")
	emailFlag := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	email, err := a.email(*emailFlag)
	if err != nil {
		return err
	}
	password, confirm, err := a.newPassword("Master password")
	if err != nil {
		return err
	}

	user, err := a.services.AuthService.Register(ctx, models.RegisterRequest{
		Email:           email,
		MasterPassword:  password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	defer func() { _ = a.services.AuthService.Logout(ctx) }()

	a.print(fmt.Sprintf("registered %s\n", user.Email))
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := a.newFlagSet("list")
	emailFlag := fs.String("email", "", "account email")
	itemType := fs.String("type", "", "only items of this type (password, note, card, identity)")
	favorites := fs.Bool("favorites", false, "only favorite items")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := models.VaultItemFilter{FavoritesOnly: *favorites}
	if *itemType != "" {
		t := models.ItemType(*itemType)
		filter.Type = &t
	}

	return a.withSession(ctx, *emailFlag, func(ctx context.Context) error {
		items, err := a.services.VaultService.List(ctx, filter)
		if err != nil {
			return err
		}
		a.print(tui.RenderItems(items))
		return nil
	})
}

func (a *App) show(ctx context.Context, args []string) error {
	fs := a.newFlagSet("show")
	emailFlag := fs.String("email", "", "account email")
	id := fs.String("id", "", "item id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return ErrMissingItemID
	}

	return a.withSession(ctx, *emailFlag, func(ctx context.Context) error {
		item, err := a.services.VaultService.Get(ctx, *id)
		if err != nil {
			return err
		}
		a.print(tui.RenderItem(item))
		return nil
	})
}

func (a *App) add(ctx context.Context, args []string) error {
	fs := a.newFlagSet("add")
	emailFlag := fs.String("email", "", "account email")
	itemType := fs.String("type", string(models.ItemPassword), "item type: password or note")
	title := fs.String("title", "", "item title")
	username := fs.String("username", "", "login of a password item")
	url := fs.String("url", "", "site address, stored unencrypted")
	notes := fs.String("notes", "", "free text notes")
	favorite := fs.Bool("favorite", false, "mark as favorite")
	generate := fs.Bool("generate", false, "generate the password instead of prompting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *title == "" {
		t, err := a.prompter.Prompt("Title", true)
		if err != nil {
			return err
		}
		*title = t
	}

	item := models.NewItem{Title: *title, URL: *url, Notes: *notes, IsFavorite: *favorite}
	switch models.ItemType(*itemType) {
	case models.ItemPassword:
		secret, err := a.itemPassword(ctx, *generate)
		if err != nil {
			return err
		}
		item.Payload = models.PasswordData{Username: *username, Password: secret}
	case models.ItemNote:
		content, err := a.prompter.PromptSecret("Note")
		if err != nil {
			return err
		}
		item.Payload = models.NoteData{Content: content}
	default:
		return fmt.Errorf("%w: %q", models.ErrUnknownItemType, *itemType)
	}

	return a.withSession(ctx, *emailFlag, func(ctx context.Context) error {
		created, err := a.services.VaultService.Add(ctx, item)
		if err != nil {
			return err
		}
		a.print(fmt.Sprintf("added %s\n", created.ID))
		return nil
	})
}

func (a *App) itemPassword(ctx context.Context, generate bool) (string, error) {
	if !generate {
		return a.prompter.PromptSecret("Item password")
	}
	resp, err := a.services.GeneratorService.Generate(ctx, models.GeneratePasswordRequest{})
	if err != nil {
		return "", err
	}
	return resp.Password, nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	fs := a.newFlagSet("delete")
	emailFlag := fs.String("email", "", "account email")
	id := fs.String("id", "", "item id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return ErrMissingItemID
	}

	return a.withSession(ctx, *emailFlag, func(ctx context.Context) error {
		if err := a.services.VaultService.Delete(ctx, *id); err != nil {
			return err
		}
		a.print(fmt.Sprintf("deleted %s\n", *id))
		return nil
	})
}

func (a *App) passwd(ctx context.Context, args []string) error {
	fs := a.newFlagSet("passwd")
	emailFlag := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	email, err := a.email(*emailFlag)
	if err != nil {
		return err
	}
	current, err := a.prompter.PromptSecret("Current master password")
	if err != nil {
		return err
	}

	if _, err = a.services.AuthService.Login(ctx, loginRequest(email, current)); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	newPassword, confirm, err := a.newPassword("New master password")
	if err != nil {
		_ = a.services.AuthService.Logout(ctx)
		return err
	}

	// a successful change revokes every session and scrubs the key
	err = a.services.AuthService.ChangePassword(ctx, models.ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     newPassword,
		ConfirmPassword: confirm,
	})
	if err != nil {
		_ = a.services.AuthService.Logout(ctx)
		return fmt.Errorf("password change failed: %w", err)
	}

	a.print("master password changed, all sessions were logged out\n")
	return nil
}

func (a *App) generate(ctx context.Context, args []string) error {
	fs := a.newFlagSet("generate")
	length := fs.Int("length", 0, "password length (default 16)")
	noUpper := fs.Bool("no-upper", false, "exclude uppercase letters")
	noLower := fs.Bool("no-lower", false, "exclude lowercase letters")
	noDigits := fs.Bool("no-digits", false, "exclude digits")
	noSymbols := fs.Bool("no-symbols", false, "exclude symbols")
	copyOut := fs.Bool("copy", false, "copy the password to the clipboard instead of printing it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	enabled := func(exclude bool) *bool { v := !exclude; return &v }
	resp, err := a.services.GeneratorService.Generate(ctx, models.GeneratePasswordRequest{
		Length:    *length,
		Uppercase: enabled(*noUpper),
		Lowercase: enabled(*noLower),
		Numbers:   enabled(*noDigits),
		Symbols:   enabled(*noSymbols),
	})
	if err != nil {
		return err
	}

	if *copyOut {
		if err = a.copyToClipboard(resp.Password); err != nil {
			return fmt.Errorf("error copying to clipboard: %w", err)
		}
		a.print(fmt.Sprintf("copied to clipboard, strength %d/100\n", resp.Strength.Score))
		return nil
	}

	a.print(tui.RenderGenerated(resp))
	return nil
}

// newPassword asks for a password and its confirmation.
func (a *App) newPassword(label string) (string, string, error) {
	password, err := a.prompter.PromptSecret(label)
	if err != nil {
		return "", "", err
	}
	confirm, err := a.prompter.PromptSecret("Confirm " + label)
	if err != nil {
		return "", "", err
	}
	if password != confirm {
		return "", "", ErrPasswordsMismatch
	}
	return password, confirm, nil
}
