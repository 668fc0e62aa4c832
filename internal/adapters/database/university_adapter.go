package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
	"github.com/unify-edu/unify-backend/internal/domain/repositories"
	"github.com/unify-edu/unify-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/unify-edu/unify-backend/pkg/errors"
)

// UniversityAdapter implements UniversityRepository
type UniversityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUniversityAdapter creates a new university adapter
func NewUniversityAdapter(client *postgres.Client) repositories.UniversityRepository {
	return &UniversityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new university
func (a *UniversityAdapter) Create(ctx context.Context, university *entities.University) error {
	record := goqu.Record{
		"id":                        university.ID,
		"name":                      university.Name,
		"location":                  sql.NullString{String: university.Location, Valid: university.Location != ""},
		"accessibility_rating":      university.AccessibilityRating,
		"disability_support_rating": university.DisabilitySupportRating,
		"available_accommodations":  pq.Array(university.AvailableAccommodations),
		"is_active":                 university.IsActive,
		"created_at":                university.CreatedAt,
		"updated_at":                university.UpdatedAt,
	}

	query, args, err := a.db.Insert("universities").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create university", err)
	}

	return nil
}

// GetByName retrieves a university by name
func (a *UniversityAdapter) GetByName(ctx context.Context, name string) (*entities.University, error) {
	query, args, err := a.selectColumns().
		Where(goqu.Ex{"name": name}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	university, err := scanUniversity(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("university not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get university", err)
	}

	return university, nil
}

// ListActive retrieves all active universities ordered by name
func (a *UniversityAdapter) ListActive(ctx context.Context) ([]*entities.University, error) {
	query, args, err := a.selectColumns().
		Where(goqu.Ex{"is_active": true}).
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list universities", err)
	}
	defer rows.Close()

	var universities []*entities.University
	for rows.Next() {
		university, err := scanUniversity(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan university", err)
		}
		universities = append(universities, university)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate universities", err)
	}

	return universities, nil
}

// Update updates an existing university
func (a *UniversityAdapter) Update(ctx context.Context, university *entities.University) error {
	record := goqu.Record{
		"name":                      university.Name,
		"location":                  sql.NullString{String: university.Location, Valid: university.Location != ""},
		"accessibility_rating":      university.AccessibilityRating,
		"disability_support_rating": university.DisabilitySupportRating,
		"available_accommodations":  pq.Array(university.AvailableAccommodations),
		"is_active":                 university.IsActive,
		"updated_at":                university.UpdatedAt,
	}

	query, args, err := a.db.Update("universities").
		Set(record).
		Where(goqu.Ex{"id": university.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update university", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to check update result", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("university not found")
	}

	return nil
}

func (a *UniversityAdapter) selectColumns() *goqu.SelectDataset {
	return a.db.Select(
		"id", "name", "location", "accessibility_rating", "disability_support_rating",
		"available_accommodations", "is_active", "created_at", "updated_at",
	).From("universities")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUniversity(row rowScanner) (*entities.University, error) {
	university := &entities.University{}
	var location sql.NullString

	err := row.Scan(
		&university.ID,
		&university.Name,
		&location,
		&university.AccessibilityRating,
		&university.DisabilitySupportRating,
		pq.Array(&university.AvailableAccommodations),
		&university.IsActive,
		&university.CreatedAt,
		&university.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	university.Location = location.String
	return university, nil
}
