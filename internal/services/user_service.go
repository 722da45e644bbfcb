package services

import (
	"context"

	"go.uber.org/zap"

	"productselector/internal/apperror"
	"productselector/internal/dto"
	"productselector/internal/models"
	"productselector/internal/repositories"
)

// UserService handles business logic related to users.
type UserService struct {
	users repositories.UserRepository
	notifier
}

// NewUserService creates a new UserService. publisher may be nil.
func NewUserService(users repositories.UserRepository, publisher EventPublisher, log *zap.Logger) *UserService {
	return &UserService{
		users:    users,
		notifier: notifier{publisher: publisher, log: log},
	}
}

// Create stores a new user. Every field is copied from in as given; the password
// is stored verbatim.
func (s *UserService) Create(ctx context.Context, in dto.UserDTO) (*models.User, error) {
	user := &models.User{
		Name:             in.Name,
		Surname:          in.Surname,
		Email:            in.Email,
		Password:         in.Password,
		BirthDate:        in.BirthDate,
		RegistrationDate: in.RegistrationDate,
		AccessLevel:      in.AccessLevel,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, storageError(err, "create user", nil,
			apperror.Conflict(err, "user with email %q already exists", in.Email))
	}

	s.log.Info("User created", zap.Int64("id", user.ID))
	s.notify("user", actionCreated, user.ID)
	return user, nil
}

func (s *UserService) ReadAll(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, storageError(err, "read users", nil, nil)
	}
	s.log.Debug("Listed users", zap.Int("count", len(users)))
	return users, nil
}

func (s *UserService) ReadByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "read user",
			apperror.NotFound("user with id %d not found", id), nil)
	}
	return user, nil
}

// ReadAllByIDIn retrieves the users among ids that exist. It fails only when none do.
func (s *UserService) ReadAllByIDIn(ctx context.Context, ids []int64) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, apperror.NotFound("no user ids given")
	}
	users, err := s.users.FindAllByIDIn(ctx, ids)
	if err != nil {
		return nil, storageError(err, "read users by ids", nil, nil)
	}
	if len(users) == 0 {
		return nil, apperror.NotFound("no users found with ids %v", ids)
	}
	s.log.Debug("Found users by ids", zap.Int("count", len(users)), zap.Int64s("ids", ids))
	return users, nil
}

// Update replaces an existing user wholesale.
func (s *UserService) Update(ctx context.Context, user *models.User) (*models.User, error) {
	notFound := apperror.NotFound("cannot update: user with id %d not found", user.ID)

	exists, err := s.users.ExistsByID(ctx, user.ID)
	if err != nil {
		return nil, storageError(err, "check user", nil, nil)
	}
	if !exists {
		return nil, notFound
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, storageError(err, "update user", notFound,
			apperror.Conflict(err, "user with email %q already exists", user.Email))
	}

	s.log.Info("User updated", zap.Int64("id", user.ID))
	s.notify("user", actionUpdated, user.ID)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	notFound := apperror.NotFound("cannot delete: user with id %d not found", id)

	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return storageError(err, "check user", nil, nil)
	}
	if !exists {
		return notFound
	}

	if err := s.users.DeleteByID(ctx, id); err != nil {
		return storageError(err, "delete user", notFound, nil)
	}

	s.log.Info("User deleted", zap.Int64("id", id))
	s.notify("user", actionDeleted, id)
	return nil
}
