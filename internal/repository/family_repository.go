package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/family-service/internal/domain"
)

// FamilyRepository encapsulates family member persistence.
type FamilyRepository interface {
	Create(ctx context.Context, member *domain.FamilyMember) error
	Update(ctx context.Context, member *domain.FamilyMember) error
	GetByID(ctx context.Context, id string) (*domain.FamilyMember, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]domain.FamilyMember, error)
	Count(ctx context.Context) (int, error)
}

type familyRepository struct {
	pool *pgxpool.Pool
}

// NewFamilyRepository instantiates the repository.
func NewFamilyRepository(pool *pgxpool.Pool) FamilyRepository {
	return &familyRepository{pool: pool}
}

func (r *familyRepository) Create(ctx context.Context, member *domain.FamilyMember) error {
	const query = `
        INSERT INTO family_members (username, father_name, mother_name, family_name, date)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		member.Username,
		member.FatherName,
		member.MotherName,
		member.FamilyName,
		member.Date,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
}

func (r *familyRepository) Update(ctx context.Context, member *domain.FamilyMember) error {
	const query = `
        UPDATE family_members
        SET username=$1, father_name=$2, mother_name=$3, family_name=$4, date=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`

	if err := r.pool.QueryRow(ctx, query,
		member.Username,
		member.FatherName,
		member.MotherName,
		member.FamilyName,
		member.Date,
		member.ID,
	).Scan(&member.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *familyRepository) GetByID(ctx context.Context, id string) (*domain.FamilyMember, error) {
	const query = `
        SELECT id, username, father_name, mother_name, family_name, date, created_at, updated_at
        FROM family_members WHERE id=$1`

	var member domain.FamilyMember
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&member.ID,
		&member.Username,
		&member.FatherName,
		&member.MotherName,
		&member.FamilyName,
		&member.Date,
		&member.CreatedAt,
		&member.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *familyRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM family_members WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *familyRepository) List(ctx context.Context, limit, offset int) ([]domain.FamilyMember, error) {
	const query = `
        SELECT id, username, father_name, mother_name, family_name, date, created_at, updated_at
        FROM family_members
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FamilyMember
	for rows.Next() {
		var member domain.FamilyMember
		if err := rows.Scan(
			&member.ID,
			&member.Username,
			&member.FatherName,
			&member.MotherName,
			&member.FamilyName,
			&member.Date,
			&member.CreatedAt,
			&member.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, member)
	}
	return result, rows.Err()
}

func (r *familyRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM family_members`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
