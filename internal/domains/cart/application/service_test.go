package application

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-checkout/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-checkout/internal/domains/cart/ports"
)

const (
	socks      = "e43638ce-6aa0-4b85-b27f-e1d07eb678c6"
	basketball = "15b6fc6f-327a-4ec4-896f-486349e85a3d"
	tshirt     = "83d4ca15-0f35-48f5-b7a3-1ea210004f2e"
)

type fakeSnapshots struct {
	cart    *domain.Cart
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeSnapshots) Load(_ context.Context) (domain.Cart, error) {
	if f.loadErr != nil {
		return domain.Cart{}, f.loadErr
	}
	if f.cart == nil {
		return domain.Cart{}, ports.ErrSnapshotNotFound
	}
	return f.cart.Clone(), nil
}

func (f *fakeSnapshots) Save(_ context.Context, cart domain.Cart) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	clone := cart.Clone()
	f.cart = &clone
	return nil
}

func openEmpty(t *testing.T) (*Store, *fakeSnapshots) {
	t.Helper()
	snapshots := &fakeSnapshots{cart: &domain.Cart{}}
	store, err := Open(context.Background(), snapshots)
	require.NoError(t, err)
	return store, snapshots
}

func TestOpen_SeedsDefaultWhenMissingOrCorrupt(t *testing.T) {
	for _, snapshots := range []*fakeSnapshots{{}, {loadErr: ports.ErrCorruptSnapshot}} {
		store, err := Open(context.Background(), snapshots)
		require.NoError(t, err)
		assert.Equal(t, SourceDefault, store.Source())
		assert.Equal(t, domain.DefaultCart(), store.Snapshot(context.Background()))
		assert.Zero(t, snapshots.saves)
	}
}

func TestOpen_RestoresSnapshot(t *testing.T) {
	saved := domain.Cart{Lines: []domain.CartLine{{ProductID: tshirt, Quantity: 4, DeliveryOptionID: "3"}}}
	store, err := Open(context.Background(), &fakeSnapshots{cart: &saved})
	require.NoError(t, err)
	assert.Equal(t, SourceSnapshot, store.Source())
	assert.Equal(t, saved, store.Snapshot(context.Background()))
}

func TestOpen_PropagatesBackendFailure(t *testing.T) {
	_, err := Open(context.Background(), &fakeSnapshots{loadErr: errors.New("connection refused")})
	require.ErrorContains(t, err, "connection refused")
}

func TestAddLine_OnEmptyCart(t *testing.T) {
	store, snapshots := openEmpty(t)
	ctx := context.Background()

	_, err := store.AddLine(ctx, socks, 1)
	require.NoError(t, err)

	want := []domain.CartLine{{ProductID: socks, Quantity: 1, DeliveryOptionID: "1"}}
	assert.Equal(t, want, store.Snapshot(ctx).Lines)
	assert.Equal(t, want, snapshots.cart.Lines)
	assert.Equal(t, 1, snapshots.saves)
}

func TestAddLine_TwiceIncrementsQuantity(t *testing.T) {
	store, snapshots := openEmpty(t)
	ctx := context.Background()

	_, err := store.AddLine(ctx, socks, 1)
	require.NoError(t, err)
	line, err := store.AddLine(ctx, socks, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, line.Quantity)
	require.Len(t, store.Snapshot(ctx).Lines, 1)
	assert.Equal(t, 2, snapshots.saves)
}

func TestAddLine_InvalidQuantity(t *testing.T) {
	store, snapshots := openEmpty(t)
	_, err := store.AddLine(context.Background(), socks, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Zero(t, snapshots.saves)
}

func TestAddLine_OverflowKeepsStoredQuantity(t *testing.T) {
	store, snapshots := openEmpty(t)
	ctx := context.Background()

	_, err := store.AddLine(ctx, socks, math.MaxInt)
	require.NoError(t, err)
	_, err = store.AddLine(ctx, socks, 1)
	require.ErrorIs(t, err, ErrInvalidInput)

	want := []domain.CartLine{{ProductID: socks, Quantity: math.MaxInt, DeliveryOptionID: "1"}}
	assert.Equal(t, want, store.Snapshot(ctx).Lines)
	assert.Equal(t, want, snapshots.cart.Lines)
	assert.Equal(t, 1, snapshots.saves)
}

func TestUpdateQuantity_NonPositiveRemoves(t *testing.T) {
	for _, q := range []int{0, -3} {
		snapshots := &fakeSnapshots{}
		store, err := Open(context.Background(), snapshots)
		require.NoError(t, err)

		result, err := store.UpdateQuantity(context.Background(), basketball, q)
		require.NoError(t, err)
		assert.Equal(t, domain.QuantityRemoved, result)
		_, found := store.Snapshot(context.Background()).Line(basketball)
		assert.False(t, found)
		assert.Equal(t, 1, snapshots.saves)
	}
}

func TestUpdateQuantity_SetsValue(t *testing.T) {
	store, snapshots := openEmpty(t)
	ctx := context.Background()
	_, err := store.AddLine(ctx, socks, 1)
	require.NoError(t, err)

	result, err := store.UpdateQuantity(ctx, socks, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.QuantityUpdated, result)
	assert.Equal(t, 7, snapshots.cart.Lines[0].Quantity)
}

func TestUpdateQuantity_UnknownLineDoesNotPersist(t *testing.T) {
	store, snapshots := openEmpty(t)
	result, err := store.UpdateQuantity(context.Background(), "missing", 3)
	require.NoError(t, err)
	assert.Equal(t, domain.QuantityUnchanged, result)
	assert.Zero(t, snapshots.saves)
}

func TestRemoveLine_AbsentDoesNotPersist(t *testing.T) {
	snapshots := &fakeSnapshots{}
	store, err := Open(context.Background(), snapshots)
	require.NoError(t, err)
	before := store.Snapshot(context.Background())

	removed, err := store.RemoveLine(context.Background(), tshirt)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, before, store.Snapshot(context.Background()))
	assert.Zero(t, snapshots.saves)
}

func TestRemoveLine_Persists(t *testing.T) {
	snapshots := &fakeSnapshots{}
	store, err := Open(context.Background(), snapshots)
	require.NoError(t, err)

	removed, err := store.RemoveLine(context.Background(), socks)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []domain.CartLine{{ProductID: basketball, Quantity: 1, DeliveryOptionID: "2"}}, snapshots.cart.Lines)
}

func TestSetDeliveryOption_ChangesOnlyTargetLine(t *testing.T) {
	snapshots := &fakeSnapshots{}
	store, err := Open(context.Background(), snapshots)
	require.NoError(t, err)

	changed, err := store.SetDeliveryOption(context.Background(), basketball, "3")
	require.NoError(t, err)
	assert.True(t, changed)

	lines := store.Snapshot(context.Background()).Lines
	assert.Equal(t, "1", lines[0].DeliveryOptionID)
	assert.Equal(t, "3", lines[1].DeliveryOptionID)
	assert.Equal(t, 1, snapshots.saves)

	changed, err = store.SetDeliveryOption(context.Background(), "missing", "3")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, snapshots.saves)
}

func TestSetDeliveryOption_DoesNotValidateOptionID(t *testing.T) {
	store, err := Open(context.Background(), &fakeSnapshots{})
	require.NoError(t, err)
	_, err = store.SetDeliveryOption(context.Background(), socks, "does-not-exist")
	require.NoError(t, err)
	line, _ := store.Snapshot(context.Background()).Line(socks)
	assert.Equal(t, "does-not-exist", line.DeliveryOptionID)
}

func TestFailedSaveLeavesStateUnchanged(t *testing.T) {
	snapshots := &fakeSnapshots{}
	store, err := Open(context.Background(), snapshots)
	require.NoError(t, err)
	before := store.Snapshot(context.Background())
	snapshots.saveErr = errors.New("disk full")

	_, err = store.AddLine(context.Background(), tshirt, 1)
	require.Error(t, err)
	_, err = store.UpdateQuantity(context.Background(), socks, 9)
	require.Error(t, err)
	_, err = store.RemoveLine(context.Background(), socks)
	require.Error(t, err)
	_, err = store.SetDeliveryOption(context.Background(), socks, "3")
	require.Error(t, err)

	assert.Equal(t, before, store.Snapshot(context.Background()))
}

func TestSnapshotIsACopy(t *testing.T) {
	store, err := Open(context.Background(), &fakeSnapshots{})
	require.NoError(t, err)
	snap := store.Snapshot(context.Background())
	snap.Lines[0].Quantity = 99

	assert.Equal(t, 2, store.Snapshot(context.Background()).Lines[0].Quantity)
}

func TestIdentifiersAreNormalized(t *testing.T) {
	store, _ := openEmpty(t)
	ctx := context.Background()
	_, err := store.AddLine(ctx, "E43638CE-6AA0-4B85-B27F-E1D07EB678C6", 1)
	require.NoError(t, err)
	_, err = store.AddLine(ctx, "  "+socks, 2)
	require.NoError(t, err)

	lines := store.Snapshot(ctx).Lines
	require.Len(t, lines, 1)
	assert.Equal(t, socks, lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
}
