package backend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/MKhiriev/go-supa-client/internal/store"
	"github.com/MKhiriev/go-supa-client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type sessionResult struct {
	session *models.Session
	err     error
}

// blockingRefresh makes RefreshSession wait for release once it has been
// entered.
func blockingRefresh(entered chan<- struct{}, release <-chan struct{}, issued models.Session) func(context.Context, string) (models.Session, error) {
	return func(context.Context, string) (models.Session, error) {
		close(entered)
		<-release
		return issued, nil
	}
}

func refreshedSession() models.Session {
	s := validSession(testNow.Unix() + 3600)
	s.AccessToken = "access-2"
	s.RefreshToken = "refresh-2"
	return s
}

func TestLiveAuthClient_SignOutDuringRefresh_StaysSignedOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, mockAdapter, repo := newTestLiveClient(t, ctrl)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testStorageKey, validSession(testNow.Unix()+30)))

	entered, release := make(chan struct{}), make(chan struct{})
	mockAdapter.EXPECT().RefreshSession(gomock.Any(), "refresh-1").DoAndReturn(blockingRefresh(entered, release, refreshedSession()))
	mockAdapter.EXPECT().SignOut(gomock.Any(), "access-1").Return(nil)

	rec := &eventRecorder{}
	c.OnAuthStateChange(rec.record)

	done := make(chan sessionResult, 1)
	go func() {
		s, err := c.GetSession(ctx)
		done <- sessionResult{s, err}
	}()

	<-entered
	require.NoError(t, c.SignOut(ctx))
	close(release)

	res := <-done
	require.NoError(t, res.err)
	assert.Nil(t, res.session, "a grant for a signed-out session is discarded")

	current, err := c.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	_, err = repo.Load(ctx, testStorageKey)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)

	assert.Equal(t, []models.AuthChangeEvent{models.AuthEventInitialSession, models.AuthEventSignedOut}, rec.Events())
}

func TestLiveAuthClient_SignInDuringRefresh_KeepsNewSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, mockAdapter, repo := newTestLiveClient(t, ctrl)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testStorageKey, validSession(testNow.Unix()+30)))

	bob := validSession(testNow.Unix() + 3600)
	bob.AccessToken = "access-bob"
	bob.RefreshToken = "refresh-bob"
	bob.User = models.User{ID: "5f1d7c1e-3b1a-4b8e-9d0a-6a2c8e4f1b22", Email: "bob@example.com"}

	entered, release := make(chan struct{}), make(chan struct{})
	mockAdapter.EXPECT().RefreshSession(gomock.Any(), "refresh-1").DoAndReturn(blockingRefresh(entered, release, refreshedSession()))
	mockAdapter.EXPECT().SignInWithPassword(gomock.Any(), gomock.Any()).Return(bob, nil)

	done := make(chan error, 1)
	go func() { done <- c.RefreshIfExpiring(ctx) }()

	<-entered
	_, err := c.SignInWithPassword(ctx, models.Credentials{Email: "bob@example.com", Password: "secret"})
	require.NoError(t, err)
	close(release)
	require.NoError(t, <-done)

	current, err := c.GetSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "access-bob", current.AccessToken)

	stored, err := repo.Load(ctx, testStorageKey)
	require.NoError(t, err)
	assert.Equal(t, "refresh-bob", stored.RefreshToken)
}

func TestLiveAuthClient_SignOutDuringGetUser_StaysSignedOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, mockAdapter, repo := newTestLiveClient(t, ctrl)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testStorageKey, validSession(testNow.Unix()+3600)))

	entered, release := make(chan struct{}), make(chan struct{})
	mockAdapter.EXPECT().GetUser(gomock.Any(), "access-1").DoAndReturn(func(context.Context, string) (models.User, error) {
		close(entered)
		<-release
		return models.User{ID: testUserID, Email: "new@example.com"}, nil
	})
	mockAdapter.EXPECT().SignOut(gomock.Any(), "access-1").Return(nil)

	rec := &eventRecorder{}
	c.OnAuthStateChange(rec.record)

	done := make(chan error, 1)
	go func() {
		_, err := c.GetUser(ctx)
		done <- err
	}()

	<-entered
	require.NoError(t, c.SignOut(ctx))
	close(release)
	require.NoError(t, <-done)

	current, err := c.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	_, err = repo.Load(ctx, testStorageKey)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
	assert.Equal(t, []models.AuthChangeEvent{models.AuthEventInitialSession, models.AuthEventSignedOut}, rec.Events())
}

func TestLiveAuthClient_ConcurrentOperations(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, mockAdapter, repo := newTestLiveClient(t, ctrl)
	ctx := context.Background()

	// sessions always expire within the margin so every read races a refresh
	expiring := validSession(testNow.Unix() + 30)
	mockAdapter.EXPECT().SignInWithPassword(gomock.Any(), gomock.Any()).Return(expiring, nil).AnyTimes()
	mockAdapter.EXPECT().RefreshSession(gomock.Any(), gomock.Any()).Return(expiring, nil).AnyTimes()
	mockAdapter.EXPECT().SignOut(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockAdapter.EXPECT().GetUser(gomock.Any(), gomock.Any()).Return(expiring.User, nil).AnyTimes()

	creds := models.Credentials{Email: "alice@example.com", Password: "secret"}

	const rounds = 50
	var wg sync.WaitGroup
	for _, op := range []func() error{
		func() error { _, err := c.SignInWithPassword(ctx, creds); return err },
		func() error { return c.SignOut(ctx) },
		func() error { return c.RefreshIfExpiring(ctx) },
		func() error { _, err := c.GetSession(ctx); return err },
		func() error {
			if _, err := c.GetUser(ctx); err != nil && !errors.Is(err, ErrNoSession) {
				return err
			}
			return nil
		},
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range rounds {
				assert.NoError(t, op())
			}
		}()
	}

	recorders := make([]*eventRecorder, 10)
	for i := range recorders {
		recorders[i] = &eventRecorder{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.OnAuthStateChange(recorders[i].record).Unsubscribe()
		}()
	}

	wg.Wait()

	for i, rec := range recorders {
		events := rec.Events()
		require.NotEmpty(t, events, fmt.Sprintf("subscriber %d", i))
		assert.Equal(t, models.AuthEventInitialSession, events[0], fmt.Sprintf("subscriber %d", i))
	}

	require.NoError(t, c.SignOut(ctx))

	current, err := c.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	_, err = repo.Load(ctx, testStorageKey)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestLiveAuthClient_EventsRaisedByInitialCallbackFollowIt(t *testing.T) {
	ctrl := gomock.NewController(t)
	c, mockAdapter, repo := newTestLiveClient(t, ctrl)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testStorageKey, validSession(testNow.Unix()+3600)))
	mockAdapter.EXPECT().SignOut(gomock.Any(), "access-1").Return(nil)

	rec := &eventRecorder{}
	c.OnAuthStateChange(func(event models.AuthChangeEvent, session *models.Session) {
		rec.record(event, session)
		if event == models.AuthEventInitialSession {
			assert.NoError(t, c.SignOut(ctx))
		}
	})

	assert.Equal(t, []models.AuthChangeEvent{models.AuthEventInitialSession, models.AuthEventSignedOut}, rec.Events())
}
