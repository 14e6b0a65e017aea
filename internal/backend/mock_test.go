package backend

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-supa-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockAuthClient_MutatingCallsFail(t *testing.T) {
	c := NewMockAuthClient()
	ctx := context.Background()
	creds := models.Credentials{Email: "alice@example.com", Password: "secret"}

	_, err := c.SignUp(ctx, creds)
	assert.ErrorIs(t, err, ErrSetupIncomplete)

	_, err = c.SignInWithPassword(ctx, creds)
	assert.ErrorIs(t, err, ErrSetupIncomplete)

	assert.ErrorIs(t, c.SignOut(ctx), ErrSetupIncomplete)
	assert.Equal(t, "please complete Supabase setup", ErrSetupIncomplete.Error())
}

func TestMockAuthClient_GetSessionIsEmpty(t *testing.T) {
	session, err := NewMockAuthClient().GetSession(context.Background())

	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestMockAuthClient_SubscriptionIsInert(t *testing.T) {
	called := false
	sub := NewMockAuthClient().OnAuthStateChange(func(models.AuthChangeEvent, *models.Session) {
		called = true
	})

	require.NotNil(t, sub)
	assert.Empty(t, sub.ID())
	assert.NotPanics(t, sub.Unsubscribe)
	assert.NotPanics(t, sub.Unsubscribe)
	assert.False(t, called)
}
