package ui_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/mindful-ui/internal/domain/auth"
	"github.com/target/mindful-ui/internal/session"
	"github.com/target/mindful-ui/internal/ui"
)

func newLanding(t *testing.T, store *session.Store, sink ui.NotificationSink) *ui.LandingView {
	t.Helper()
	v, err := ui.NewLandingView(ui.LandingOptions{Session: store, Sink: sink})
	require.NoError(t, err)
	t.Cleanup(v.Destroy)
	return v
}

func TestLandingView_RenderPending(t *testing.T) {
	v := newLanding(t, newStore(t, domainauth.Pending(), nil), nil)

	m := v.Render()

	assert.True(t, m.Loading)
	assert.Nil(t, m.PrimaryAction)
	assert.Nil(t, m.User)
	assert.False(t, m.ShowSignOut)
	assert.False(t, m.ShowSignIn)
}

func TestLandingView_RenderPresent(t *testing.T) {
	v := newLanding(t, newStore(t, domainauth.Present(testSession()), nil), nil)

	m := v.Render()

	assert.False(t, m.Loading)
	require.NotNil(t, m.PrimaryAction)
	assert.Equal(t, ui.StartSessionPath, m.PrimaryAction.Href)
	require.NotNil(t, m.User)
	assert.Equal(t, "Ana Lima", m.User.Name)
	assert.Equal(t, "ana@example.com", m.User.Email)
	assert.True(t, m.ShowSignOut)
	assert.False(t, m.ShowSignIn)
}

func TestLandingView_RenderAbsent(t *testing.T) {
	v := newLanding(t, newStore(t, domainauth.Absent(), nil), nil)

	m := v.Render()

	require.NotNil(t, m.PrimaryAction)
	assert.Equal(t, ui.StartSessionPath, m.PrimaryAction.Href)
	assert.Nil(t, m.User)
	assert.False(t, m.ShowSignOut)
	assert.True(t, m.ShowSignIn)
}

func TestLandingView_AuthModal(t *testing.T) {
	store := newStore(t, domainauth.Pending(), nil)
	v := newLanding(t, store, nil)

	v.OpenAuthModal()
	assert.False(t, v.AuthModalOpen(), "ignored while pending")

	store.Publish(domainauth.Absent())
	v.OpenAuthModal()
	assert.True(t, v.AuthModalOpen())
	assert.True(t, v.Render().AuthModalOpen)

	v.CloseAuthModal()
	assert.False(t, v.AuthModalOpen())

	v.OpenAuthModal()
	store.Publish(domainauth.Present(testSession()))
	assert.False(t, v.AuthModalOpen())
}

func TestLandingView_ModalIndependentOfHeader(t *testing.T) {
	store := newStore(t, domainauth.Absent(), nil)
	v := newLanding(t, store, nil)
	h, err := ui.NewHeaderNav(ui.HeaderOptions{Session: store})
	require.NoError(t, err)
	t.Cleanup(h.Destroy)

	h.OpenAuthModal()
	assert.True(t, h.State().AuthModalOpen)
	assert.False(t, v.AuthModalOpen())

	v.OpenAuthModal()
	h.CloseAuthModal()
	assert.True(t, v.AuthModalOpen())
}

func TestLandingView_SignOut(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		backend := &signOutBackend{}
		store := newStore(t, domainauth.Present(testSession()), backend)
		outbox := &ui.Outbox{}
		v := newLanding(t, store, outbox)

		v.SignOut(context.Background())

		assert.Equal(t, 1, backend.Calls())
		assert.True(t, store.Snapshot().IsAbsent())
		toasts := outbox.Drain()
		require.Len(t, toasts, 1)
		assert.Equal(t, ui.KindInfo, toasts[0].Kind)

		m := v.Render()
		assert.False(t, m.ShowSignOut)
		assert.Nil(t, m.User)
	})

	t.Run("failure uses the shared policy", func(t *testing.T) {
		backend := &signOutBackend{err: errors.New("down")}
		store := newStore(t, domainauth.Present(testSession()), backend)
		outbox := &ui.Outbox{}
		obs := &recordingObserver{}
		v, err := ui.NewLandingView(ui.LandingOptions{Session: store, Sink: outbox, Observer: obs})
		require.NoError(t, err)
		t.Cleanup(v.Destroy)

		v.SignOut(context.Background())

		assert.True(t, store.Snapshot().IsPresent())
		toasts := outbox.Drain()
		require.Len(t, toasts, 1)
		assert.Equal(t, ui.KindError, toasts[0].Kind)
		assert.Equal(t, []string{"landing:failure"}, obs.signOuts)
	})

	t.Run("absent is a no-op", func(t *testing.T) {
		backend := &signOutBackend{}
		outbox := &ui.Outbox{}
		v := newLanding(t, newStore(t, domainauth.Absent(), backend), outbox)

		v.SignOut(context.Background())

		assert.Zero(t, backend.Calls())
		assert.Zero(t, outbox.Len())
	})
}

func TestLandingView_HeaderReflectsLandingSignOut(t *testing.T) {
	store := newStore(t, domainauth.Present(testSession()), &signOutBackend{})
	v := newLanding(t, store, nil)
	h, err := ui.NewHeaderNav(ui.HeaderOptions{Session: store})
	require.NoError(t, err)
	t.Cleanup(h.Destroy)

	v.SignOut(context.Background())

	m := h.Render()
	assert.True(t, m.ShowSignIn)
	assert.False(t, m.ShowAvatar)
}
