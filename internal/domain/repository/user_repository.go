package repository

import "github.com/jmcastano/Kardex-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	ListByBranch(branchID string, limit, offset int) ([]*entity.User, error)
}
