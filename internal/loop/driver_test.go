package loop

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/barco/internal/game"
	"github.com/tomz197/barco/internal/input"
)

func testFactory(cfg game.Config, keys input.Held) SessionFactory {
	return func() (*game.Session, error) {
		return game.New(cfg, keys, game.WithRand(rand.New(rand.NewSource(3))))
	}
}

func quietConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.Enemy.Interval = 1e6
	cfg.Enemy.MinInterval = 1e6
	cfg.Friend.Interval = 1e6
	return cfg
}

func TestTickBeforeStart(t *testing.T) {
	d := NewDriver(testFactory(quietConfig(), nil), time.Second)
	assert.ErrorIs(t, d.Tick(time.Now()), ErrNotStarted)

	_, ok := d.Snapshot()
	assert.False(t, ok)
	assert.Nil(t, d.Session())
}

func TestTickUsesWallClockDelta(t *testing.T) {
	keys := input.NewKeySet()
	keys.Press(input.KeyUp)
	d := NewDriver(testFactory(quietConfig(), keys), time.Second)

	start := time.Unix(1000, 0)
	require.NoError(t, d.Start(start))
	require.NoError(t, d.Tick(start.Add(100*time.Millisecond)))

	snap, ok := d.Snapshot()
	require.True(t, ok)
	assert.InDelta(t, 170.0, snap.Player.Y, 1e-9)
	assert.InDelta(t, 0.1, snap.PlayTime, 1e-9)
}

func TestTickClampsLargeDeltas(t *testing.T) {
	d := NewDriver(testFactory(quietConfig(), nil), 250*time.Millisecond)

	start := time.Unix(1000, 0)
	require.NoError(t, d.Start(start))
	require.NoError(t, d.Tick(start.Add(time.Hour)))

	snap, _ := d.Snapshot()
	assert.InDelta(t, 0.25, snap.PlayTime, 1e-9)
	assert.Equal(t, 1, snap.Level, "a stall must not skip levels")
}

func TestTickWithoutClamp(t *testing.T) {
	d := NewDriver(testFactory(quietConfig(), nil), 0)

	start := time.Unix(1000, 0)
	require.NoError(t, d.Start(start))
	require.NoError(t, d.Tick(start.Add(25*time.Second)))

	snap, _ := d.Snapshot()
	assert.Equal(t, 2, snap.Level)
}

func TestClockGoingBackwardsIsIgnored(t *testing.T) {
	d := NewDriver(testFactory(quietConfig(), nil), time.Second)

	start := time.Unix(1000, 0)
	require.NoError(t, d.Start(start))
	require.NoError(t, d.Tick(start.Add(-time.Second)))

	snap, _ := d.Snapshot()
	assert.Equal(t, 0.0, snap.PlayTime)
}

func TestRestartAfterGameOver(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.StartingLives = 1
	// Fast enemies aimed at the player end the game quickly.
	cfg.Enemy.Interval = 0.1
	cfg.Enemy.MinSpeed = 2000
	cfg.Enemy.MaxSpeed = 2000
	cfg.Enemy.H = cfg.Height
	d := NewDriver(testFactory(cfg, nil), 0)

	now := time.Unix(1000, 0)
	require.NoError(t, d.Start(now))
	first := d.Session()

	for i := 0; i < 200 && first.State() == game.Active; i++ {
		now = now.Add(16 * time.Millisecond)
		require.NoError(t, d.Tick(now))
	}
	require.Equal(t, game.GameOver, first.State())

	over, _ := d.Snapshot()
	now = now.Add(time.Second)
	require.NoError(t, d.Tick(now))
	still, _ := d.Snapshot()
	assert.Equal(t, over.PlayTime, still.PlayTime, "no updates once the game is over")

	require.NoError(t, d.Restart(now))
	snap, _ := d.Snapshot()
	assert.NotSame(t, first, d.Session())
	assert.Equal(t, game.Active, snap.State)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, cfg.StartingLives, snap.Lives)
	assert.Equal(t, 1, snap.Level)
	assert.Empty(t, snap.Enemies)
	assert.Empty(t, snap.Friends)

	// The baseline moved with the restart: the next tick only sees 10ms.
	require.NoError(t, d.Tick(now.Add(10*time.Millisecond)))
	snap, _ = d.Snapshot()
	assert.InDelta(t, 0.01, snap.PlayTime, 1e-9)
}

func TestRestartPropagatesFactoryError(t *testing.T) {
	boom := errors.New("boom")
	d := NewDriver(func() (*game.Session, error) { return nil, boom }, 0)
	assert.ErrorIs(t, d.Start(time.Now()), boom)
}
