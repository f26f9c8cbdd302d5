package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/MKhiriev/lockbox/internal/adapter"
	"github.com/MKhiriev/lockbox/internal/app"
	"github.com/MKhiriev/lockbox/internal/crypto"
	"github.com/MKhiriev/lockbox/internal/logger"
	"github.com/MKhiriev/lockbox/internal/mock"
	"github.com/MKhiriev/lockbox/internal/store"
	"github.com/MKhiriev/lockbox/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestClientVaultSvc(t *testing.T, unlocked bool) (ClientVaultService, *mock.MockServerAdapter, ClientCryptoService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	cryptoSvc := NewClientCryptoService()
	if unlocked {
		cryptoSvc.Open(testDEK(), 0)
	}
	return NewClientVaultService(mockAdapter, cryptoSvc, logger.Nop()), mockAdapter, cryptoSvc
}

func TestClientVaultService_AddSendsCiphertextOnly(t *testing.T) {
	svc, mockAdapter, _ := newTestClientVaultSvc(t, true)

	mockAdapter.EXPECT().CreateItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.VaultItemRequest) (models.VaultItem, error) {
			assert.Equal(t, models.ItemPassword, req.Type)
			assert.True(t, crypto.IsEnvelope(string(req.Title)))
			assert.NotContains(t, string(req.Data), "hunter2")
			return models.VaultItem{ID: testItemID, Type: req.Type, Title: req.Title, Data: req.Data}, nil
		})

	item, err := svc.Add(context.Background(), models.NewItem{
		Title:   "Bank",
		Payload: models.PasswordData{Username: "alice", Password: "hunter2"},
	})
	require.NoError(t, err)
	assert.Equal(t, testItemID, item.ID)
}

func TestClientVaultService_ListDecrypts(t *testing.T) {
	svc, mockAdapter, cryptoSvc := newTestClientVaultSvc(t, true)

	req, err := cryptoSvc.EncryptItem(models.NewItem{Title: "memo", Payload: models.NoteData{Content: "secret"}})
	require.NoError(t, err)

	mockAdapter.EXPECT().ListItems(gomock.Any(), models.VaultItemFilter{}).Return([]models.VaultItem{
		{ID: "1", Type: req.Type, Title: req.Title, Data: req.Data},
		{ID: "2", Type: models.ItemNote, Title: testTitleEnv, Data: testDataEnv},
	}, nil)

	items, err := svc.List(context.Background(), models.VaultItemFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "memo", items[0].Title)
	assert.Equal(t, models.NoteData{Content: "secret"}, items[0].Payload)
	assert.True(t, items[1].Failed())
}

func TestClientVaultService_Get(t *testing.T) {
	svc, mockAdapter, _ := newTestClientVaultSvc(t, true)

	mockAdapter.EXPECT().GetItem(gomock.Any(), testItemID).
		Return(models.VaultItem{}, fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgItemNotFound))

	_, err := svc.Get(context.Background(), testItemID)
	require.ErrorIs(t, err, store.ErrVaultItemNotFound)
}

func TestClientVaultService_Locked(t *testing.T) {
	svc, _, _ := newTestClientVaultSvc(t, false)
	ctx := context.Background()

	_, err := svc.List(ctx, models.VaultItemFilter{})
	require.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = svc.Get(ctx, testItemID)
	require.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = svc.Add(ctx, models.NewItem{Payload: models.NoteData{}})
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestClientVaultService_Delete(t *testing.T) {
	svc, mockAdapter, _ := newTestClientVaultSvc(t, true)

	mockAdapter.EXPECT().DeleteItem(gomock.Any(), testItemID).Return(nil)
	require.NoError(t, svc.Delete(context.Background(), testItemID))

	mockAdapter.EXPECT().DeleteItem(gomock.Any(), testItemID).Return(adapter.ErrNotLoggedIn)
	require.ErrorIs(t, svc.Delete(context.Background(), testItemID), ErrNotLoggedIn)
}
