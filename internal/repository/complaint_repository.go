package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/menyesha/complaint-service/internal/domain"
)

// ComplaintFilter captures the scoped query parameters. Institution and
// Sector are string-equality scopes taken from the principal's profile.
type ComplaintFilter struct {
	CitizenID   *string
	Institution *string
	Sector      *string
	Statuses    []domain.ComplaintStatus
	Priorities  []domain.ComplaintPriority
	CreatedFrom *time.Time
	Limit       int
}

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	Update(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error)
	CountWithFilter(ctx context.Context, filter ComplaintFilter) (int64, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, title, description, specific_location,
       province, district, sector, cell, village,
       institution, category, status, priority, evidence_images,
       citizen_id, anonymous_name, anonymous_email, anonymous_phone,
       assigned_to_id, submitted_at, resolved_at, created_at, updated_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	images, err := json.Marshal(complaint.EvidenceImages)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO complaints (title, description, specific_location,
            province, district, sector, cell, village,
            institution, category, status, priority, evidence_images,
            citizen_id, anonymous_name, anonymous_email, anonymous_phone,
            assigned_to_id, submitted_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		complaint.Title,
		complaint.Description,
		complaint.SpecificLocation,
		complaint.Province,
		complaint.District,
		complaint.Sector,
		complaint.Cell,
		complaint.Village,
		complaint.Institution,
		complaint.Category,
		complaint.Status,
		complaint.Priority,
		images,
		complaint.CitizenID,
		complaint.AnonymousName,
		complaint.AnonymousEmail,
		complaint.AnonymousPhone,
		complaint.AssignedToID,
		complaint.SubmittedAt,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	images, err := json.Marshal(complaint.EvidenceImages)
	if err != nil {
		return err
	}

	const query = `
        UPDATE complaints SET title=$1, description=$2, status=$3, priority=$4,
            evidence_images=$5, assigned_to_id=$6, resolved_at=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		complaint.Title,
		complaint.Description,
		complaint.Status,
		complaint.Priority,
		images,
		complaint.AssignedToID,
		complaint.ResolvedAt,
		complaint.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id=$1`

	row := r.pool.QueryRow(ctx, query, id)
	return scanComplaintRow(row)
}

func (r *complaintRepository) ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	clauses, args := complaintClauses(filter)
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE ` +
		strings.Join(clauses, " AND ") + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Complaint
	for rows.Next() {
		complaint, err := scanComplaintRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *complaint)
	}
	return result, rows.Err()
}

func (r *complaintRepository) CountWithFilter(ctx context.Context, filter ComplaintFilter) (int64, error) {
	clauses, args := complaintClauses(filter)
	query := `SELECT COUNT(*) FROM complaints WHERE ` + strings.Join(clauses, " AND ")

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func complaintClauses(filter ComplaintFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CitizenID != nil {
		args = append(args, *filter.CitizenID)
		clauses = append(clauses, fmt.Sprintf("citizen_id=$%d", len(args)))
	}
	if filter.Institution != nil {
		args = append(args, *filter.Institution)
		clauses = append(clauses, fmt.Sprintf("institution=$%d", len(args)))
	}
	if filter.Sector != nil {
		args = append(args, *filter.Sector)
		clauses = append(clauses, fmt.Sprintf("sector=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	return clauses, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComplaintRow(row rowScanner) (*domain.Complaint, error) {
	var complaint domain.Complaint
	var images []byte
	if err := row.Scan(
		&complaint.ID,
		&complaint.Title,
		&complaint.Description,
		&complaint.SpecificLocation,
		&complaint.Province,
		&complaint.District,
		&complaint.Sector,
		&complaint.Cell,
		&complaint.Village,
		&complaint.Institution,
		&complaint.Category,
		&complaint.Status,
		&complaint.Priority,
		&images,
		&complaint.CitizenID,
		&complaint.AnonymousName,
		&complaint.AnonymousEmail,
		&complaint.AnonymousPhone,
		&complaint.AssignedToID,
		&complaint.SubmittedAt,
		&complaint.ResolvedAt,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &complaint.EvidenceImages); err != nil {
			return nil, err
		}
	}
	return &complaint, nil
}
