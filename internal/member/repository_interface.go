package member

import "context"

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id int) (*Member, error)
	List(ctx context.Context, search string) ([]Member, error)
	Update(ctx context.Context, m *Member) error
	UpdatePaymentStatus(ctx context.Context, id int, status string) error
	Delete(ctx context.Context, id int) error
	HasBookings(ctx context.Context, id int) (bool, error)

	ListDependents(ctx context.Context, memberID int) ([]Dependent, error)
	AddDependent(ctx context.Context, memberID int, fullName string) (*Dependent, error)
	DeleteDependent(ctx context.Context, memberID, dependentID int) error
}
