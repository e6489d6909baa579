package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-login-service/internal/config"
	"github.com/MKhiriev/go-login-service/internal/logger"
	"github.com/MKhiriev/go-login-service/internal/mock"
	"github.com/MKhiriev/go-login-service/internal/store"
	"github.com/MKhiriev/go-login-service/internal/utils"
	"github.com/MKhiriev/go-login-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestResetSvc builds a passwordResetService around mocked collaborators
// and a fixed clock.
func newTestResetSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*passwordResetService,
	*mock.MockUserRepository,
	*mock.MockResetTokenRepository,
	*mock.MockTxRunner,
	*mock.MockNotifier,
) {
	t.Helper()
	mockUsers := mock.NewMockUserRepository(ctrl)
	mockTokens := mock.NewMockResetTokenRepository(ctrl)
	mockTx := mock.NewMockTxRunner(ctrl)
	mockNotifier := mock.NewMockNotifier(ctrl)

	cfg := config.App{ResetTokenDuration: 30 * time.Minute}
	svc := NewPasswordResetService(mockUsers, mockTokens, mockTx, mockNotifier, cfg, logger.Nop()).(*passwordResetService)

	return svc, mockUsers, mockTokens, mockTx, mockNotifier
}

// passthroughTx makes the mocked runner execute the given function
// directly, standing in for a real transaction.
func passthroughTx(mockTx *mock.MockTxRunner) *gomock.Call {
	return mockTx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, store.DBTX) error) error {
			return fn(ctx, nil)
		},
	)
}

func TestResetService_Request_IssuesTokenAndNotifies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockTokens, _, mockNotifier := newTestResetSvc(t, ctrl)
	ctx := context.Background()

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	user := models.User{UserID: 5, Email: "kate@example.com", Enabled: true}

	var issued string
	gomock.InOrder(
		mockUsers.EXPECT().FindUserByEmail(ctx, user.Email).Return(user, nil),
		mockTokens.EXPECT().CreateToken(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, tok models.PasswordResetToken) (models.PasswordResetToken, error) {
				assert.Equal(t, user.UserID, tok.UserID)
				assert.NotEmpty(t, tok.Token, "token string must be generated")
				assert.Equal(t, fixed.Add(30*time.Minute), tok.ExpiresAt)
				issued = tok.Token
				tok.ID = 1
				return tok, nil
			},
		),
		mockNotifier.EXPECT().SendResetEmail(ctx, user.Email, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, token string) error {
				assert.Equal(t, issued, token, "the notified token must be the persisted one")
				return nil
			},
		),
	)

	require.NoError(t, svc.Request(ctx, user.Email))
}

func TestResetService_Request_UnknownEmailIsSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _, _, _ := newTestResetSvc(t, ctrl)
	ctx := context.Background()

	// No CreateToken, no SendResetEmail: zero observable difference
	// between known and unknown emails.
	mockUsers.EXPECT().FindUserByEmail(ctx, "ghost@example.com").
		Return(models.User{}, store.ErrNoUserWasFound)

	require.NoError(t, svc.Request(ctx, "ghost@example.com"))
}

func TestResetService_Request_IndependentTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockTokens, _, mockNotifier := newTestResetSvc(t, ctrl)
	ctx := context.Background()

	user := models.User{UserID: 5, Email: "kate@example.com"}

	var tokens []string
	mockUsers.EXPECT().FindUserByEmail(ctx, user.Email).Return(user, nil).Times(2)
	mockTokens.EXPECT().CreateToken(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, tok models.PasswordResetToken) (models.PasswordResetToken, error) {
			tokens = append(tokens, tok.Token)
			return tok, nil
		},
	).Times(2)
	mockNotifier.EXPECT().SendResetEmail(ctx, user.Email, gomock.Any()).Return(nil).Times(2)

	require.NoError(t, svc.Request(ctx, user.Email))
	require.NoError(t, svc.Request(ctx, user.Email))

	require.Len(t, tokens, 2)
	assert.NotEqual(t, tokens[0], tokens[1], "repeated requests must issue distinct tokens")
}

func TestResetService_Request_NotifierFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockTokens, _, mockNotifier := newTestResetSvc(t, ctrl)
	ctx := context.Background()

	user := models.User{UserID: 5, Email: "kate@example.com"}

	gomock.InOrder(
		mockUsers.EXPECT().FindUserByEmail(ctx, user.Email).Return(user, nil),
		mockTokens.EXPECT().CreateToken(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, tok models.PasswordResetToken) (models.PasswordResetToken, error) {
				return tok, nil
			},
		),
		mockNotifier.EXPECT().SendResetEmail(ctx, user.Email, gomock.Any()).
			Return(errors.New("smtp: connection refused")),
	)

	require.Error(t, svc.Request(ctx, user.Email))
}

func TestResetService_Reset_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockTokens, mockTx, _ := newTestResetSvc(t, ctrl)
	ctx := context.Background()

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	stored := models.PasswordResetToken{
		ID:        9,
		Token:     "valid-token",
		UserID:    5,
		ExpiresAt: fixed.Add(time.Minute),
	}

	passthroughTx(mockTx)
	gomock.InOrder(
		mockTokens.EXPECT().FindActiveByToken(gomock.Any(), gomock.Any(), "valid-token").Return(stored, nil),
		mockUsers.EXPECT().UpdatePassword(gomock.Any(), gomock.Any(), stored.UserID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ store.DBTX, _ int64, passwordHash string) error {
				assert.True(t, utils.CheckPassword("new-password", passwordHash),
					"the stored hash must verify against the new password")
				return nil
			},
		),
		mockTokens.EXPECT().MarkUsed(gomock.Any(), gomock.Any(), stored.ID).Return(nil),
	)

	require.NoError(t, svc.Reset(ctx, "valid-token", "new-password"))
}

func TestResetService_Reset_InvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockTokens, mockTx, _ := newTestResetSvc(t, ctrl)
	ctx := context.Background()

	passthroughTx(mockTx)
	mockTokens.EXPECT().FindActiveByToken(gomock.Any(), gomock.Any(), "unknown-or-used").
		Return(models.PasswordResetToken{}, store.ErrResetTokenNotFound)

	err := svc.Reset(ctx, "unknown-or-used", "new-password")
	require.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetService_Reset_ExpiredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockTokens, mockTx, _ := newTestResetSvc(t, ctrl)
	ctx := context.Background()

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	stale := models.PasswordResetToken{
		ID:        9,
		Token:     "stale-token",
		UserID:    5,
		ExpiresAt: fixed.Add(-time.Second),
	}

	// No UpdatePassword and no MarkUsed expectations: expiry short-circuits
	// before any write.
	passthroughTx(mockTx)
	mockTokens.EXPECT().FindActiveByToken(gomock.Any(), gomock.Any(), "stale-token").Return(stale, nil)

	err := svc.Reset(ctx, "stale-token", "new-password")
	require.ErrorIs(t, err, ErrResetTokenExpired)
}

func TestResetService_Reset_LostRaceOnMarkUsed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockTokens, mockTx, _ := newTestResetSvc(t, ctrl)
	ctx := context.Background()

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	stored := models.PasswordResetToken{
		ID:        9,
		Token:     "raced-token",
		UserID:    5,
		ExpiresAt: fixed.Add(time.Minute),
	}

	passthroughTx(mockTx)
	gomock.InOrder(
		mockTokens.EXPECT().FindActiveByToken(gomock.Any(), gomock.Any(), "raced-token").Return(stored, nil),
		mockUsers.EXPECT().UpdatePassword(gomock.Any(), gomock.Any(), stored.UserID, gomock.Any()).Return(nil),
		mockTokens.EXPECT().MarkUsed(gomock.Any(), gomock.Any(), stored.ID).
			Return(store.ErrResetTokenNotFound),
	)

	err := svc.Reset(ctx, "raced-token", "new-password")
	require.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetService_Reset_RollbackOnUpdateFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockTokens, mockTx, _ := newTestResetSvc(t, ctrl)
	ctx := context.Background()

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	stored := models.PasswordResetToken{
		ID:        9,
		Token:     "doomed-token",
		UserID:    5,
		ExpiresAt: fixed.Add(time.Minute),
	}

	// The runner surfaces the inner error; a real transaction rolls back,
	// leaving the token unconsumed. MarkUsed must never be reached.
	passthroughTx(mockTx)
	gomock.InOrder(
		mockTokens.EXPECT().FindActiveByToken(gomock.Any(), gomock.Any(), "doomed-token").Return(stored, nil),
		mockUsers.EXPECT().UpdatePassword(gomock.Any(), gomock.Any(), stored.UserID, gomock.Any()).
			Return(errors.New("disk full")),
	)

	err := svc.Reset(ctx, "doomed-token", "new-password")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrResetTokenInvalid)
	require.NotErrorIs(t, err, ErrResetTokenExpired)
}

func TestResetService_InvalidData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _ := newTestResetSvc(t, ctrl)
	ctx := context.Background()

	require.ErrorIs(t, svc.Request(ctx, ""), ErrInvalidDataProvided)
	require.ErrorIs(t, svc.Reset(ctx, "", "new-password"), ErrInvalidDataProvided)
	require.ErrorIs(t, svc.Reset(ctx, "token", ""), ErrInvalidDataProvided)
}
