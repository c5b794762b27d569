package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/menyesha/complaint-service/internal/domain"
)

// UserFilter captures directory listing parameters. Listings default to
// newest first; OrderByInstitutionName switches to name ascending for the
// public institution dropdown.
type UserFilter struct {
	Role                   *domain.Role
	Status                 *domain.UserStatus
	Limit                  int
	OrderByInstitutionName bool
}

// UserRepository defines persistence access for accounts of all roles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByCode(ctx context.Context, role domain.Role, code string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	ReactivateByRole(ctx context.Context, role domain.Role) (int64, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, full_name, email, password_hash, phone, role, status,
       id_type, id_card,
       institution_name, institution_code, institution_category, institution_address, institution_description,
       sector_name, sector_code, province, district,
       created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (full_name, email, password_hash, phone, role, status,
            id_type, id_card,
            institution_name, institution_code, institution_category, institution_address, institution_description,
            sector_name, sector_code, province, district)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Role,
		user.Status,
		user.IDType,
		user.IDCard,
		user.InstitutionName,
		user.InstitutionCode,
		user.InstitutionCategory,
		user.InstitutionAddress,
		user.InstitutionDescription,
		user.SectorName,
		user.SectorCode,
		user.Province,
		user.District,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET full_name=$1, email=$2, password_hash=$3, phone=$4, status=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Status,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error {
	const query = `UPDATE users SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

// GetByCode looks up an admin by its role-specific code; institution codes
// live in institution_code, sector codes in sector_code.
func (r *userRepository) GetByCode(ctx context.Context, role domain.Role, code string) (*domain.User, error) {
	column := "institution_code"
	if role == domain.RoleSectorAdmin {
		column = "sector_code"
	}
	query := fmt.Sprintf(`SELECT %s FROM users WHERE role=$1 AND %s=$2`, userColumns, column)
	return r.fetchSingle(ctx, query, role, code)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.Role,
		&user.Status,
		&user.IDType,
		&user.IDCard,
		&user.InstitutionName,
		&user.InstitutionCode,
		&user.InstitutionCategory,
		&user.InstitutionAddress,
		&user.InstitutionDescription,
		&user.SectorName,
		&user.SectorCode,
		&user.Province,
		&user.District,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]domain.User, error) {
	clauses, args := userClauses(filter)
	orderBy := "created_at DESC"
	if filter.OrderByInstitutionName {
		orderBy = "institution_name ASC"
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + strings.Join(clauses, " AND ") +
		` ORDER BY ` + orderBy
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.FullName,
			&user.Email,
			&user.PasswordHash,
			&user.Phone,
			&user.Role,
			&user.Status,
			&user.IDType,
			&user.IDCard,
			&user.InstitutionName,
			&user.InstitutionCode,
			&user.InstitutionCategory,
			&user.InstitutionAddress,
			&user.InstitutionDescription,
			&user.SectorName,
			&user.SectorCode,
			&user.Province,
			&user.District,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func (r *userRepository) Count(ctx context.Context, filter UserFilter) (int64, error) {
	clauses, args := userClauses(filter)
	query := `SELECT COUNT(*) FROM users WHERE ` + strings.Join(clauses, " AND ")

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) ReactivateByRole(ctx context.Context, role domain.Role) (int64, error) {
	const query = `UPDATE users SET status=$1, updated_at=NOW() WHERE role=$2 AND status=$3`

	cmd, err := r.pool.Exec(ctx, query, domain.UserStatusActive, role, domain.UserStatusInactive)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func userClauses(filter UserFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	return clauses, args
}
