package employees

import "context"

type StoreAPI interface {
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, limit, offset int) ([]Employee, error)
	Get(ctx context.Context, employeeID string) (Employee, error)
	Create(ctx context.Context, emp Employee) (Employee, error)
	Update(ctx context.Context, employeeID string, emp Employee) (Employee, error)
	UpdatePhone(ctx context.Context, employeeID, phone string) error
	Delete(ctx context.Context, employeeID string) error
}
