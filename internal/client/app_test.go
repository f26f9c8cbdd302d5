package client

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/lockbox/internal/adapter"
	"github.com/MKhiriev/lockbox/internal/config"
	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/mock"
	"github.com/MKhiriev/lockbox/internal/service"
	"github.com/MKhiriev/lockbox/internal/tui"
	"github.com/MKhiriev/lockbox/models"
)

const (
	testEmail    = "alice@example.com"
	testPassword = "CorrectHorse123!"
)

type fakePrompter struct {
	answers []string
	asked   []string
}

func (p *fakePrompter) next(label string) (string, error) {
	p.asked = append(p.asked, label)
	if len(p.answers) == 0 {
		return "", tui.ErrUserQuit
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *fakePrompter) Prompt(label string, _ bool) (string, error) { return p.next(label) }
func (p *fakePrompter) PromptSecret(label string) (string, error)   { return p.next(label) }

func testDEK() []byte {
	return bytes.Repeat([]byte{0x42}, 32)
}

func testAuthResponse() models.AuthResponse {
	return models.AuthResponse{
		User:          models.UserInfo{ID: "user-1", Email: testEmail},
		Token:         "token",
		EncryptionKey: hex.EncodeToString(testDEK()),
	}
}

func newTestApp(t *testing.T, answers ...string) (*App, *mock.MockServerAdapter, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	services := service.NewClientServices(mockAdapter, config.ClientApp{SessionTTL: time.Minute}, logger.Nop())

	var out bytes.Buffer
	app := NewApp(services, &fakePrompter{answers: answers}, &out, logger.Nop())
	return app, mockAdapter, &out
}

// encryptedItem builds the server view of an item encrypted under testDEK.
func encryptedItem(t *testing.T, id string, item models.NewItem) models.VaultItem {
	t.Helper()
	c := service.NewClientCryptoService()
	c.Open(testDEK(), 0)
	defer c.Close()

	req, err := c.EncryptItem(item)
	require.NoError(t, err)
	return models.VaultItem{ID: id, Type: req.Type, Title: req.Title, Data: req.Data, Notes: req.Notes, URL: req.URL}
}

func TestRun_Usage(t *testing.T) {
	app, _, out := newTestApp(t)

	err := app.Run(context.Background(), nil)
	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, out.String(), "usage: lockbox")

	err = app.Run(context.Background(), []string{"sync"})
	require.ErrorIs(t, err, ErrUnknownCommand)

	require.NoError(t, app.Run(context.Background(), []string{"help"}))
}

func TestGenerate_DigitsOnly(t *testing.T) {
	app, _, out := newTestApp(t)

	err := app.Run(context.Background(), []string{"generate", "-length", "20", "-no-upper", "-no-lower", "-no-symbols"})

	require.NoError(t, err)
	assert.Regexp(t, `[0-9]{20}`, out.String())
	assert.Contains(t, out.String(), "/100")
}

func TestGenerate_Copy(t *testing.T) {
	app, _, out := newTestApp(t)
	var copied string
	app.copyToClipboard = func(s string) error { copied = s; return nil }

	err := app.Run(context.Background(), []string{"generate", "-copy"})

	require.NoError(t, err)
	assert.Len(t, copied, 16)
	assert.NotContains(t, out.String(), copied)
	assert.Contains(t, out.String(), "copied to clipboard")
}

func TestGenerate_CopyFails(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.copyToClipboard = func(string) error { return errors.New("no clipboard") }

	err := app.Run(context.Background(), []string{"generate", "-copy"})

	assert.ErrorContains(t, err, "no clipboard")
}

func TestRegister(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		app, mockAdapter, out := newTestApp(t, testPassword, testPassword)
		mockAdapter.EXPECT().Register(gomock.Any(), models.RegisterRequest{
			Email: testEmail, MasterPassword: testPassword, ConfirmPassword: testPassword,
		}).Return(testAuthResponse(), nil)
		mockAdapter.EXPECT().Logout(gomock.Any()).Return(nil)

		err := app.Run(context.Background(), []string{"register", "-email", testEmail})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "registered "+testEmail)
		assert.False(t, app.services.CryptoService.Active())
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		app, _, _ := newTestApp(t, testPassword, "different")

		err := app.Run(context.Background(), []string{"register", "-email", testEmail})

		require.ErrorIs(t, err, ErrPasswordsMismatch)
	})

	t.Run("prompts for email", func(t *testing.T) {
		p := &fakePrompter{}
		app, _, _ := newTestApp(t)
		app.prompter = p

		err := app.Run(context.Background(), []string{"register"})

		require.ErrorIs(t, err, tui.ErrUserQuit)
		assert.Equal(t, []string{"Email"}, p.asked)
	})
}

func TestList_ShowsTitles(t *testing.T) {
	app, mockAdapter, out := newTestApp(t, testPassword)
	items := []models.VaultItem{
		encryptedItem(t, "id-1", models.NewItem{Title: "GitHub", Payload: models.PasswordData{Username: "alice", Password: "gh-secret"}}),
		encryptedItem(t, "id-2", models.NewItem{Title: "Recovery codes", Payload: models.NoteData{Content: "1234"}}),
	}

	gomock.InOrder(
		mockAdapter.EXPECT().Login(gomock.Any(), models.LoginRequest{Email: testEmail, MasterPassword: testPassword}).Return(testAuthResponse(), nil),
		mockAdapter.EXPECT().ListItems(gomock.Any(), gomock.Any()).Return(items, nil),
		mockAdapter.EXPECT().Logout(gomock.Any()).Return(nil),
	)

	err := app.Run(context.Background(), []string{"login", "-email", testEmail})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "GitHub")
	assert.Contains(t, out.String(), "Recovery codes")
	assert.NotContains(t, out.String(), "gh-secret")
	assert.False(t, app.services.CryptoService.Active())
}

func TestList_WrongPassword(t *testing.T) {
	app, mockAdapter, _ := newTestApp(t, "wrong")
	mockAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.AuthResponse{}, fmt.Errorf("%w: invalid email or password", adapter.ErrUnauthorized))

	err := app.Run(context.Background(), []string{"login", "-email", testEmail})

	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestList_BadFlagNamesCommand(t *testing.T) {
	app, _, out := newTestApp(t)

	err := app.Run(context.Background(), []string{"list", "-bogus"})

	require.Error(t, err)
	assert.Contains(t, out.String(), "Usage of list:")
	assert.NotContains(t, out.String(), "Usage of login:")
}

func TestShow(t *testing.T) {
	t.Run("requires id", func(t *testing.T) {
		app, _, _ := newTestApp(t)
		require.ErrorIs(t, app.Run(context.Background(), []string{"show", "-email", testEmail}), ErrMissingItemID)
	})

	t.Run("prints secret", func(t *testing.T) {
		app, mockAdapter, out := newTestApp(t, testPassword)
		item := encryptedItem(t, "id-1", models.NewItem{Title: "GitHub", Payload: models.PasswordData{Username: "alice", Password: "gh-secret"}})

		mockAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(testAuthResponse(), nil)
		mockAdapter.EXPECT().GetItem(gomock.Any(), "id-1").Return(item, nil)
		mockAdapter.EXPECT().Logout(gomock.Any()).Return(nil)

		err := app.Run(context.Background(), []string{"show", "-email", testEmail, "-id", "id-1"})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "gh-secret")
	})
}

func TestAdd_Password(t *testing.T) {
	app, mockAdapter, out := newTestApp(t, "item-secret", testPassword)

	mockAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(testAuthResponse(), nil)
	mockAdapter.EXPECT().CreateItem(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.VaultItemRequest) (models.VaultItem, error) {
			assert.Equal(t, models.ItemPassword, req.Type)
			assert.NotContains(t, string(req.Data), "item-secret")
			require.NotNil(t, req.URL)
			assert.Equal(t, "https://github.com", *req.URL)
			return models.VaultItem{ID: "id-9"}, nil
		})
	mockAdapter.EXPECT().Logout(gomock.Any()).Return(nil)

	err := app.Run(context.Background(), []string{"add", "-email", testEmail, "-title", "GitHub", "-username", "alice", "-url", "https://github.com"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "added id-9")
}

func TestAdd_UnknownType(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Run(context.Background(), []string{"add", "-type", "binary", "-title", "x"})

	require.ErrorIs(t, err, models.ErrUnknownItemType)
}

func TestDelete(t *testing.T) {
	app, mockAdapter, out := newTestApp(t, testPassword)

	mockAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(testAuthResponse(), nil)
	mockAdapter.EXPECT().DeleteItem(gomock.Any(), "id-1").Return(nil)
	mockAdapter.EXPECT().Logout(gomock.Any()).Return(nil)

	err := app.Run(context.Background(), []string{"delete", "-email", testEmail, "-id", "id-1"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "deleted id-1")
}

func TestPasswd(t *testing.T) {
	newPassword := "BatteryStaple456?"
	app, mockAdapter, out := newTestApp(t, testPassword, newPassword, newPassword)

	mockAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(testAuthResponse(), nil)
	mockAdapter.EXPECT().ChangePassword(gomock.Any(), models.ChangePasswordRequest{
		CurrentPassword: testPassword, NewPassword: newPassword, ConfirmPassword: newPassword,
	}).Return(nil)

	err := app.Run(context.Background(), []string{"passwd", "-email", testEmail})

	require.NoError(t, err)
	assert.True(t, strings.Contains(out.String(), "master password changed"))
	assert.False(t, app.services.CryptoService.Active())
}
