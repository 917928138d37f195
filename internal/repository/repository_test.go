package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/family-service/internal/domain"
)

func TestMapUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "email constraint",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			want: domain.ErrEmailTaken,
		},
		{
			name: "name constraint",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "users_name_key"},
			want: domain.ErrUsernameTaken,
		},
		{
			name: "other constraint passes through",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "whatever"},
			want: nil,
		},
		{
			name: "plain error passes through",
			err:  errors.New("boom"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapUniqueViolation(tt.err)
			if tt.want != nil {
				assert.ErrorIs(t, got, tt.want)
			} else {
				assert.Equal(t, tt.err, got)
			}
		})
	}
}

func TestMemoryUserRepository_UniqueConstraints(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(ctx, &domain.User{
		Name: "alice", Email: "alice@example.com", PasswordHash: "h",
	}))

	err := repo.Create(ctx, &domain.User{
		Name: "other", Email: "alice@example.com", PasswordHash: "h",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	err = repo.Create(ctx, &domain.User{
		Name: "alice", Email: "other@example.com", PasswordHash: "h",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

// Two concurrent inserts with the same email resolve to exactly one success
// and one ErrEmailTaken, never anything else.
func TestMemoryUserRepository_ConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = repo.Create(ctx, &domain.User{
				Name:         "alice" + string(rune('0'+i)),
				Email:        "alice@example.com",
				PasswordHash: "h",
			})
		}(i)
	}
	wg.Wait()

	var conflicts, successes int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrEmailTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
}

func TestMemoryFamilyRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryFamilyRepository()

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &domain.FamilyMember{Username: name}))
	}

	members, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "third", members[0].Username)
	assert.Equal(t, "second", members[1].Username)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
