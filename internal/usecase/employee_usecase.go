package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-matrix/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrApproverNotFound = errors.New("approver not found")
	ErrApproverCycle    = errors.New("approver assignment would create a cycle")
)

type EmployeePage struct {
	Employees []repository.Employee
	Total     int
}

type CreateEmployeeInput struct {
	EmpCode     string
	Name        string
	Email       string
	Password    string
	ApproverID  *uuid.UUID
	IsApprover  bool
	Designation *string
	Capability  *string
}

type UpdateEmployeeInput struct {
	Name        *string
	ApproverID  *uuid.UUID
	ClearApprover bool
	IsApprover  *bool
	Designation *string
	Capability  *string
	IsActive    *bool
	IsAvailable *bool
}

type EmployeeUsecase interface {
	List(ctx context.Context, page, pageSize int) (EmployeePage, error)
	Get(ctx context.Context, id uuid.UUID) (repository.Employee, error)
	Create(ctx context.Context, in CreateEmployeeInput) (repository.Employee, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateEmployeeInput) (repository.Employee, error)
}

type EmployeeService struct {
	employees repository.EmployeeRepository
}

func NewEmployeeUsecase(employees repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employees: employees}
}

func (u *EmployeeService) List(ctx context.Context, page, pageSize int) (EmployeePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	employees, total, err := u.employees.List(ctx, page, pageSize)
	if err != nil {
		return EmployeePage{}, ErrInternal
	}
	return EmployeePage{Employees: employees, Total: total}, nil
}

func (u *EmployeeService) Get(ctx context.Context, id uuid.UUID) (repository.Employee, error) {
	emp, err := u.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return repository.Employee{}, ErrEmployeeNotFound
		}
		return repository.Employee{}, ErrInternal
	}
	return emp, nil
}

func (u *EmployeeService) Create(ctx context.Context, in CreateEmployeeInput) (repository.Employee, error) {
	in.EmpCode = strings.TrimSpace(in.EmpCode)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.EmpCode == "" || in.Name == "" || in.Email == "" || len(in.Password) < 8 {
		return repository.Employee{}, ErrInvalidInput
	}

	taken, err := u.employees.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return repository.Employee{}, ErrInternal
	}
	if taken {
		return repository.Employee{}, ErrEmailTaken
	}

	if in.ApproverID != nil {
		approver, err := u.employees.FindByID(ctx, *in.ApproverID)
		if err != nil {
			if errors.Is(err, repository.ErrEmployeeNotFound) {
				return repository.Employee{}, ErrApproverNotFound
			}
			return repository.Employee{}, ErrInternal
		}
		if !approver.IsApprover {
			return repository.Employee{}, ErrApproverNotFound
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return repository.Employee{}, ErrInternal
	}

	created, err := u.employees.Create(ctx, repository.Employee{
		EmpCode:      in.EmpCode,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		ApproverID:   in.ApproverID,
		IsApprover:   in.IsApprover,
		Designation:  in.Designation,
		Capability:   in.Capability,
		IsActive:     true,
		IsAvailable:  true,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmployee) {
			return repository.Employee{}, ErrEmailTaken
		}
		return repository.Employee{}, ErrInternal
	}
	created.PasswordHash = ""
	return created, nil
}

func (u *EmployeeService) Update(ctx context.Context, id uuid.UUID, in UpdateEmployeeInput) (repository.Employee, error) {
	emp, err := u.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEmployeeNotFound) {
			return repository.Employee{}, ErrEmployeeNotFound
		}
		return repository.Employee{}, ErrInternal
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return repository.Employee{}, ErrInvalidInput
		}
		emp.Name = name
	}
	if in.Designation != nil {
		emp.Designation = in.Designation
	}
	if in.Capability != nil {
		emp.Capability = in.Capability
	}
	if in.IsApprover != nil {
		emp.IsApprover = *in.IsApprover
	}
	if in.IsActive != nil {
		emp.IsActive = *in.IsActive
	}
	if in.IsAvailable != nil {
		emp.IsAvailable = *in.IsAvailable
	}

	switch {
	case in.ClearApprover:
		emp.ApproverID = nil
	case in.ApproverID != nil:
		if err := u.checkApproverChain(ctx, id, *in.ApproverID); err != nil {
			return repository.Employee{}, err
		}
		emp.ApproverID = in.ApproverID
	}

	if err := u.employees.Update(ctx, emp); err != nil {
		return repository.Employee{}, ErrInternal
	}
	emp.PasswordHash = ""
	return emp, nil
}

// checkApproverChain walks the approver graph upward from the candidate and
// rejects the assignment if the walk reaches the employee being updated. Self
// approval is the length-one cycle.
func (u *EmployeeService) checkApproverChain(ctx context.Context, employeeID, approverID uuid.UUID) error {
	if approverID == employeeID {
		return ErrApproverCycle
	}

	visited := map[uuid.UUID]bool{employeeID: true}
	current := approverID
	for {
		if visited[current] {
			return ErrApproverCycle
		}
		visited[current] = true

		node, err := u.employees.FindByID(ctx, current)
		if err != nil {
			if errors.Is(err, repository.ErrEmployeeNotFound) {
				return ErrApproverNotFound
			}
			return ErrInternal
		}
		if current == approverID && !node.IsApprover {
			return ErrApproverNotFound
		}
		if node.ApproverID == nil {
			return nil
		}
		current = *node.ApproverID
	}
}
