package repository

import (
	"context"
	"fmt"
	"time"

	"pointsbot/database"
	"pointsbot/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// queryable is satisfied by both *pgxpool.Pool and pgx.Tx
type queryable interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const userColumns = `
	user_id, points, chat_messages, vc_time, vc_tier, achievements,
	vip, last_daily, last_monthly, voice_joined_at, created_at, updated_at`

// UserRepository provides access to the per-user engagement records.
// All mutations are field-scoped increments or conditional updates so
// that concurrent grants to the same record never lose updates.
type UserRepository struct {
	db *database.DB
	q  queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db, q: db.Pool}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.Points,
		&user.ChatMessages,
		&user.VoiceMinutes,
		&user.VoiceTier,
		&user.Achievements,
		&user.VIP,
		&user.LastDaily,
		&user.LastMonthly,
		&user.VoiceJoinedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreate returns the record for the given user, creating it with
// defaults on first reference. The upsert makes creation idempotent
// under concurrent calls for the same user. The second return value
// reports whether a new record was inserted (xmax = 0 on an upserted
// row means it was not an update).
func (r *UserRepository) GetOrCreate(ctx context.Context, userID string) (*models.User, bool, error) {
	query := `
		INSERT INTO users (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE
		SET user_id = excluded.user_id
		RETURNING ` + userColumns + `, (xmax = 0) AS inserted`

	var (
		user     models.User
		inserted bool
	)
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&user.UserID,
		&user.Points,
		&user.ChatMessages,
		&user.VoiceMinutes,
		&user.VoiceTier,
		&user.Achievements,
		&user.VIP,
		&user.LastDaily,
		&user.LastMonthly,
		&user.VoiceJoinedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
		&inserted,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get or create user %s: %w", userID, err)
	}

	return &user, inserted, nil
}

// IncrementChatActivity atomically adds one chat message and the given
// points to a user's record, creating the record if it does not exist.
func (r *UserRepository) IncrementChatActivity(ctx context.Context, userID string, points int64) (*models.User, error) {
	query := `
		INSERT INTO users (user_id, points, chat_messages)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id) DO UPDATE
		SET points = users.points + $2,
		    chat_messages = users.chat_messages + 1,
		    updated_at = NOW()
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, userID, points))
	if err != nil {
		return nil, fmt.Errorf("failed to increment chat activity for user %s: %w", userID, err)
	}

	return user, nil
}

// AddPoints atomically adjusts a user's point balance by delta, which
// may be negative. The balance has no floor.
func (r *UserRepository) AddPoints(ctx context.Context, userID string, delta int64) (*models.User, error) {
	query := `
		UPDATE users
		SET points = points + $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, userID, delta))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("user %s not found", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add points for user %s: %w", userID, err)
	}

	return user, nil
}

// ClaimDaily grants the daily reward if the previous claim is older
// than the cutoff. Returns nil without error when the claim window has
// not elapsed.
func (r *UserRepository) ClaimDaily(ctx context.Context, userID string, reward int64, now, cutoff time.Time) (*models.User, error) {
	query := `
		UPDATE users
		SET points = points + $2, last_daily = $3, updated_at = NOW()
		WHERE user_id = $1
		  AND (last_daily IS NULL OR last_daily <= $4)
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, userID, reward, now, cutoff))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim daily for user %s: %w", userID, err)
	}

	return user, nil
}

// ClaimMonthly grants the monthly reward if the previous claim is older
// than the cutoff. Returns nil without error when the claim window has
// not elapsed.
func (r *UserRepository) ClaimMonthly(ctx context.Context, userID string, reward int64, now, cutoff time.Time) (*models.User, error) {
	query := `
		UPDATE users
		SET points = points + $2, last_monthly = $3, updated_at = NOW()
		WHERE user_id = $1
		  AND (last_monthly IS NULL OR last_monthly <= $4)
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, userID, reward, now, cutoff))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim monthly for user %s: %w", userID, err)
	}

	return user, nil
}

// BeginVoiceSession stamps the voice join time on a user's record,
// creating the record if needed
func (r *UserRepository) BeginVoiceSession(ctx context.Context, userID string, joinedAt time.Time) error {
	query := `
		INSERT INTO users (user_id, voice_joined_at)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET voice_joined_at = $2, updated_at = NOW()`

	if _, err := r.q.Exec(ctx, query, userID, joinedAt); err != nil {
		return fmt.Errorf("failed to begin voice session for user %s: %w", userID, err)
	}

	return nil
}

// EndVoiceSession closes a user's voice session: the elapsed whole
// minutes are added to the accumulated voice time, the tier is
// recomputed from the new total, and the join timestamp is cleared.
// A session with no recorded join (missed join event) accrues nothing
// and is cleared silently. Returns the updated record and the minutes
// accrued; the record is nil when the user was never seen.
func (r *UserRepository) EndVoiceSession(ctx context.Context, userID string, leftAt time.Time) (*models.User, int64, error) {
	var (
		updated *models.User
		minutes int64
	)

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		current, err := scanUser(tx.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE user_id = $1 FOR UPDATE`, userID))
		if err == pgx.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to lock user %s: %w", userID, err)
		}

		if current.VoiceJoinedAt == nil {
			updated = current
			return nil
		}

		minutes = models.SessionMinutes(*current.VoiceJoinedAt, leftAt)
		tier := models.TierFor(current.VoiceMinutes + minutes)

		query := `
			UPDATE users
			SET vc_time = vc_time + $2,
			    vc_tier = $3,
			    voice_joined_at = NULL,
			    updated_at = NOW()
			WHERE user_id = $1
			RETURNING ` + userColumns

		updated, err = scanUser(tx.QueryRow(ctx, query, userID, minutes, tier))
		if err != nil {
			return fmt.Errorf("failed to close voice session for user %s: %w", userID, err)
		}

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return updated, minutes, nil
}

// TopByChatMessages returns the top users by chat message count,
// descending, with ties broken by user ID for a stable order
func (r *UserRepository) TopByChatMessages(ctx context.Context, limit int) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY chat_messages DESC, user_id ASC
		LIMIT $1`

	return r.queryUsers(ctx, query, limit)
}

// TopByVoiceTime returns the top users by accumulated voice minutes,
// descending, with ties broken by user ID for a stable order
func (r *UserRepository) TopByVoiceTime(ctx context.Context, limit int) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY vc_time DESC, user_id ASC
		LIMIT $1`

	return r.queryUsers(ctx, query, limit)
}

func (r *UserRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.UserID,
			&user.Points,
			&user.ChatMessages,
			&user.VoiceMinutes,
			&user.VoiceTier,
			&user.Achievements,
			&user.VIP,
			&user.LastDaily,
			&user.LastMonthly,
			&user.VoiceJoinedAt,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
