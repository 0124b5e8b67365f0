package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"pointsbot/models"
	"pointsbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetOrCreate(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("creates with defaults", func(t *testing.T) {
		user, created, err := repo.GetOrCreate(ctx, "100")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.True(t, created)

		assert.Equal(t, "100", user.UserID)
		assert.Equal(t, int64(0), user.Points)
		assert.Equal(t, int64(0), user.ChatMessages)
		assert.Equal(t, int64(0), user.VoiceMinutes)
		assert.Equal(t, models.Tier0, user.VoiceTier)
		assert.Empty(t, user.Achievements)
		assert.False(t, user.VIP)
		assert.Nil(t, user.LastDaily)
		assert.Nil(t, user.LastMonthly)
		assert.Nil(t, user.VoiceJoinedAt)
	})

	t.Run("second call returns same record", func(t *testing.T) {
		first, created, err := repo.GetOrCreate(ctx, "101")
		require.NoError(t, err)

		_, err = repo.AddPoints(ctx, "101", 42)
		require.NoError(t, err)

		second, createdAgain, err := repo.GetOrCreate(ctx, "101")
		require.NoError(t, err)
		assert.True(t, created)
		assert.False(t, createdAgain)

		assert.Equal(t, first.UserID, second.UserID)
		assert.Equal(t, first.CreatedAt, second.CreatedAt)
		assert.Equal(t, int64(42), second.Points)
	})
}

func TestUserRepository_IncrementChatActivity(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("creates record on first message", func(t *testing.T) {
		user, err := repo.IncrementChatActivity(ctx, "200", 1)
		require.NoError(t, err)

		assert.Equal(t, int64(1), user.Points)
		assert.Equal(t, int64(1), user.ChatMessages)
	})

	t.Run("increments existing record", func(t *testing.T) {
		_, err := repo.IncrementChatActivity(ctx, "201", 1)
		require.NoError(t, err)

		user, err := repo.IncrementChatActivity(ctx, "201", 1)
		require.NoError(t, err)

		assert.Equal(t, int64(2), user.Points)
		assert.Equal(t, int64(2), user.ChatMessages)
	})

	t.Run("concurrent grants lose no updates", func(t *testing.T) {
		const grants = 25

		var wg sync.WaitGroup
		errs := make(chan error, grants)
		for i := 0; i < grants; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.IncrementChatActivity(ctx, "202", 1)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		user, _, err := repo.GetOrCreate(ctx, "202")
		require.NoError(t, err)
		assert.Equal(t, int64(grants), user.ChatMessages)
		assert.Equal(t, int64(grants), user.Points)
	})

	t.Run("interleaves with point mutations", func(t *testing.T) {
		_, _, err := repo.GetOrCreate(ctx, "203")
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, _ = repo.IncrementChatActivity(ctx, "203", 1)
			}()
			go func() {
				defer wg.Done()
				_, _ = repo.AddPoints(ctx, "203", 5)
			}()
		}
		wg.Wait()

		user, _, err := repo.GetOrCreate(ctx, "203")
		require.NoError(t, err)
		assert.Equal(t, int64(10), user.ChatMessages)
		assert.Equal(t, int64(60), user.Points)
	})
}

func TestUserRepository_AddPoints(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("negative delta has no floor", func(t *testing.T) {
		_, _, err := repo.GetOrCreate(ctx, "300")
		require.NoError(t, err)

		user, err := repo.AddPoints(ctx, "300", -250)
		require.NoError(t, err)
		assert.Equal(t, int64(-250), user.Points)
	})

	t.Run("unknown user fails", func(t *testing.T) {
		_, err := repo.AddPoints(ctx, "no-such-user", 10)
		assert.Error(t, err)
	})
}

func TestUserRepository_ClaimDaily(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	window := 24 * time.Hour
	t0 := time.Now().UTC().Add(-48 * time.Hour)

	_, _, err := repo.GetOrCreate(ctx, "400")
	require.NoError(t, err)

	t.Run("first claim succeeds", func(t *testing.T) {
		user, err := repo.ClaimDaily(ctx, "400", 100, t0, t0.Add(-window))
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, int64(100), user.Points)
		require.NotNil(t, user.LastDaily)
		assert.WithinDuration(t, t0, *user.LastDaily, time.Second)
	})

	t.Run("claim inside window is rejected", func(t *testing.T) {
		now := t0.Add(23*time.Hour + 59*time.Minute)
		user, err := repo.ClaimDaily(ctx, "400", 100, now, now.Add(-window))
		require.NoError(t, err)
		assert.Nil(t, user)

		current, _, err := repo.GetOrCreate(ctx, "400")
		require.NoError(t, err)
		assert.Equal(t, int64(100), current.Points)
	})

	t.Run("claim after window succeeds", func(t *testing.T) {
		now := t0.Add(24*time.Hour + time.Second)
		user, err := repo.ClaimDaily(ctx, "400", 100, now, now.Add(-window))
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, int64(200), user.Points)
	})
}

func TestUserRepository_ClaimMonthly(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	window := 30 * 24 * time.Hour
	t0 := time.Now().UTC().Add(-31 * 24 * time.Hour)

	_, _, err := repo.GetOrCreate(ctx, "500")
	require.NoError(t, err)

	user, err := repo.ClaimMonthly(ctx, "500", 3000, t0, t0.Add(-window))
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(3000), user.Points)

	// Second claim a day later is still inside the window
	now := t0.Add(24 * time.Hour)
	user, err = repo.ClaimMonthly(ctx, "500", 3000, now, now.Add(-window))
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_VoiceSessions(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("join then leave accrues floored minutes", func(t *testing.T) {
		joinedAt := time.Now().UTC().Add(-time.Hour)

		require.NoError(t, repo.BeginVoiceSession(ctx, "600", joinedAt))

		user, _, err := repo.GetOrCreate(ctx, "600")
		require.NoError(t, err)
		require.NotNil(t, user.VoiceJoinedAt)

		updated, minutes, err := repo.EndVoiceSession(ctx, "600", joinedAt.Add(125*time.Second))
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, int64(2), minutes)
		assert.Equal(t, int64(2), updated.VoiceMinutes)
		assert.Nil(t, updated.VoiceJoinedAt)
		assert.Equal(t, models.Tier0, updated.VoiceTier)
	})

	t.Run("tier recomputed on session close", func(t *testing.T) {
		joinedAt := time.Now().UTC().Add(-2 * time.Hour)

		require.NoError(t, repo.BeginVoiceSession(ctx, "601", joinedAt))

		updated, minutes, err := repo.EndVoiceSession(ctx, "601", joinedAt.Add(61*time.Minute))
		require.NoError(t, err)

		assert.Equal(t, int64(61), minutes)
		assert.Equal(t, models.Tier1, updated.VoiceTier)
	})

	t.Run("leave without recorded join accrues nothing", func(t *testing.T) {
		_, _, err := repo.GetOrCreate(ctx, "602")
		require.NoError(t, err)

		updated, minutes, err := repo.EndVoiceSession(ctx, "602", time.Now().UTC())
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, int64(0), minutes)
		assert.Equal(t, int64(0), updated.VoiceMinutes)
		assert.Nil(t, updated.VoiceJoinedAt)
	})

	t.Run("leave for unknown user is a no-op", func(t *testing.T) {
		updated, minutes, err := repo.EndVoiceSession(ctx, "603", time.Now().UTC())
		require.NoError(t, err)
		assert.Nil(t, updated)
		assert.Equal(t, int64(0), minutes)
	})

	t.Run("stale join is not reused after close", func(t *testing.T) {
		joinedAt := time.Now().UTC().Add(-10 * time.Minute)

		require.NoError(t, repo.BeginVoiceSession(ctx, "604", joinedAt))
		_, _, err := repo.EndVoiceSession(ctx, "604", joinedAt.Add(2*time.Minute))
		require.NoError(t, err)

		// A second leave without a new join must not accrue again
		updated, minutes, err := repo.EndVoiceSession(ctx, "604", joinedAt.Add(20*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(0), minutes)
		assert.Equal(t, int64(2), updated.VoiceMinutes)
	})
}

func TestUserRepository_Leaderboards(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	counts := []int64{5, 1, 9, 9, 3}
	for i, count := range counts {
		userID := fmt.Sprintf("70%d", i)
		_, _, err := repo.GetOrCreate(ctx, userID)
		require.NoError(t, err)
		for j := int64(0); j < count; j++ {
			_, err := repo.IncrementChatActivity(ctx, userID, 1)
			require.NoError(t, err)
		}
	}

	t.Run("chat leaderboard descends with stable ties", func(t *testing.T) {
		top, err := repo.TopByChatMessages(ctx, 10)
		require.NoError(t, err)
		require.Len(t, top, 5)

		var got []int64
		for _, user := range top {
			got = append(got, user.ChatMessages)
		}
		assert.Equal(t, []int64{9, 9, 5, 3, 1}, got)

		// Tie between 702 and 703 resolves by user ID
		assert.Equal(t, "702", top[0].UserID)
		assert.Equal(t, "703", top[1].UserID)
	})

	t.Run("limit is respected", func(t *testing.T) {
		top, err := repo.TopByChatMessages(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, top, 2)
	})

	t.Run("voice leaderboard orders by minutes", func(t *testing.T) {
		base := time.Now().UTC().Add(-3 * time.Hour)
		require.NoError(t, repo.BeginVoiceSession(ctx, "710", base))
		_, _, err := repo.EndVoiceSession(ctx, "710", base.Add(30*time.Minute))
		require.NoError(t, err)

		require.NoError(t, repo.BeginVoiceSession(ctx, "711", base))
		_, _, err = repo.EndVoiceSession(ctx, "711", base.Add(90*time.Minute))
		require.NoError(t, err)

		top, err := repo.TopByVoiceTime(ctx, 2)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, "711", top[0].UserID)
		assert.Equal(t, int64(90), top[0].VoiceMinutes)
		assert.Equal(t, "710", top[1].UserID)
	})
}
