package postgres

import (
	"github.com/frahmantamala/review-marketplace/internal/auth"
	userDatamodel "github.com/frahmantamala/review-marketplace/internal/core/datamodel/user"
	"github.com/frahmantamala/review-marketplace/internal/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByName(name string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("name = ?", name).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.First(&u, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindAll() ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Order("name ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) RolesByUserID(userID int64) ([]auth.Role, error) {
	var names []string
	err := r.db.Model(&userDatamodel.UserRole{}).
		Where("user_id = ?", userID).
		Order("role ASC").
		Pluck("role", &names).Error
	if err != nil {
		return nil, err
	}
	roles := make([]auth.Role, 0, len(names))
	for _, n := range names {
		roles = append(roles, auth.Role(n))
	}
	return roles, nil
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

// GrantRole is idempotent; granting an already held role changes nothing.
func (r *UserRepository) GrantRole(ur *userDatamodel.UserRole) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "role"}},
		DoNothing: true,
	}).Create(ur).Error
}

func (r *UserRepository) Transact(fn func(user.RepositoryAPI) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&UserRepository{db: tx})
	})
}
