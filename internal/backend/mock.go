package backend

import (
	"context"

	"github.com/MKhiriev/go-supa-client/models"
)

type mockAuthClient struct{}

// NewMockAuthClient returns the [AuthClient] handed out while the backend URL
// or key is missing. Mutating calls fail with [ErrSetupIncomplete], there is
// never a session and subscriptions are inert.
func NewMockAuthClient() AuthClient {
	return mockAuthClient{}
}

func (mockAuthClient) SignUp(context.Context, models.Credentials) (models.AuthResponse, error) {
	return models.AuthResponse{}, ErrSetupIncomplete
}

func (mockAuthClient) SignInWithPassword(context.Context, models.Credentials) (models.AuthResponse, error) {
	return models.AuthResponse{}, ErrSetupIncomplete
}

func (mockAuthClient) SignOut(context.Context) error {
	return ErrSetupIncomplete
}

func (mockAuthClient) GetSession(context.Context) (*models.Session, error) {
	return nil, nil
}

// OnAuthStateChange never invokes callback.
func (mockAuthClient) OnAuthStateChange(AuthStateCallback) Subscription {
	return noopSubscription{}
}

type noopSubscription struct{}

func (noopSubscription) ID() string { return "" }

func (noopSubscription) Unsubscribe() {}
