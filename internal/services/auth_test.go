package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/classroom-backend/internal/platform/ctxutil"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

func TestAuthService_SetContextFromToken(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "s3cret", "classroom-idp")
	userID := uuid.New()

	token, err := SignAccessToken("s3cret", "classroom-idp", userID, "ada@example.com", time.Hour)
	require.NoError(t, err)

	ctx, err := svc.SetContextFromToken(context.Background(), token)
	require.NoError(t, err)
	rd := ctxutil.GetRequestData(ctx)
	require.NotNil(t, rd)
	assert.Equal(t, userID, rd.UserID)
	assert.Equal(t, "ada@example.com", rd.Email)
}

func TestAuthService_Rejects(t *testing.T) {
	svc := NewAuthService(logger.Nop(), "s3cret", "classroom-idp")
	userID := uuid.New()

	wrongSecret, err := SignAccessToken("other", "classroom-idp", userID, "", time.Hour)
	require.NoError(t, err)
	_, err = svc.SetContextFromToken(context.Background(), wrongSecret)
	assert.Error(t, err)

	wrongIssuer, err := SignAccessToken("s3cret", "someone-else", userID, "", time.Hour)
	require.NoError(t, err)
	_, err = svc.SetContextFromToken(context.Background(), wrongIssuer)
	assert.Error(t, err)

	expired, err := SignAccessToken("s3cret", "classroom-idp", userID, "", -time.Minute)
	require.NoError(t, err)
	_, err = svc.SetContextFromToken(context.Background(), expired)
	assert.Error(t, err)

	ctx, err := svc.SetContextFromToken(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, ctxutil.GetRequestData(ctx))
}
