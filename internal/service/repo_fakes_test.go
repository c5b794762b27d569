package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/menyesha/complaint-service/internal/domain"
	"github.com/menyesha/complaint-service/internal/repository"
)

// fakeUserRepo is an in-memory repository.UserRepository for service tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Status = status
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByCode(ctx context.Context, role domain.Role, code string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Role != role {
			continue
		}
		stored := user.InstitutionCode
		if role == domain.RoleSectorAdmin {
			stored = user.SectorCode
		}
		if stored == code {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, user := range r.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.Status != nil && user.Status != *filter.Status {
			continue
		}
		out = append(out, *user)
	}
	if filter.OrderByInstitutionName {
		sort.Slice(out, func(i, j int) bool { return out[i].InstitutionName < out[j].InstitutionName })
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	users, err := r.List(ctx, repository.UserFilter{Role: filter.Role, Status: filter.Status})
	if err != nil {
		return 0, err
	}
	return int64(len(users)), nil
}

func (r *fakeUserRepo) ReactivateByRole(ctx context.Context, role domain.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, user := range r.users {
		if user.Role == role && user.Status == domain.UserStatusInactive {
			user.Status = domain.UserStatusActive
			count++
		}
	}
	return count, nil
}

// fakeComplaintRepo is an in-memory repository.ComplaintRepository.
type fakeComplaintRepo struct {
	mu         sync.Mutex
	complaints map[string]*domain.Complaint
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{complaints: map[string]*domain.Complaint{}}
}

func (r *fakeComplaintRepo) Create(ctx context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint.ID = uuid.NewString()
	complaint.CreatedAt = time.Now()
	complaint.UpdatedAt = complaint.CreatedAt
	clone := *complaint
	r.complaints[complaint.ID] = &clone
	return nil
}

func (r *fakeComplaintRepo) Update(ctx context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.complaints[complaint.ID]; !ok {
		return pgx.ErrNoRows
	}
	complaint.UpdatedAt = time.Now()
	clone := *complaint
	r.complaints[complaint.ID] = &clone
	return nil
}

func (r *fakeComplaintRepo) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *complaint
	return &clone, nil
}

func (r *fakeComplaintRepo) ListWithFilter(ctx context.Context, filter repository.ComplaintFilter) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Complaint
	for _, complaint := range r.complaints {
		if !matchesFilter(complaint, filter) {
			continue
		}
		out = append(out, *complaint)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *fakeComplaintRepo) CountWithFilter(ctx context.Context, filter repository.ComplaintFilter) (int64, error) {
	list, err := r.ListWithFilter(ctx, repository.ComplaintFilter{
		CitizenID:   filter.CitizenID,
		Institution: filter.Institution,
		Sector:      filter.Sector,
		Statuses:    filter.Statuses,
		Priorities:  filter.Priorities,
		CreatedFrom: filter.CreatedFrom,
	})
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func matchesFilter(c *domain.Complaint, filter repository.ComplaintFilter) bool {
	if filter.CitizenID != nil && (c.CitizenID == nil || *c.CitizenID != *filter.CitizenID) {
		return false
	}
	if filter.Institution != nil && c.Institution != *filter.Institution {
		return false
	}
	if filter.Sector != nil && c.Sector != *filter.Sector {
		return false
	}
	if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, c.Status) {
		return false
	}
	if len(filter.Priorities) > 0 && !containsPriority(filter.Priorities, c.Priority) {
		return false
	}
	if filter.CreatedFrom != nil && c.CreatedAt.Before(*filter.CreatedFrom) {
		return false
	}
	return true
}

func containsStatus(list []domain.ComplaintStatus, status domain.ComplaintStatus) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}

func containsPriority(list []domain.ComplaintPriority, priority domain.ComplaintPriority) bool {
	for _, p := range list {
		if p == priority {
			return true
		}
	}
	return false
}
