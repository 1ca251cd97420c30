package services

import (
	"context"
	"errors"
	"strings"

	"hvac-backend/internal/auth"
	"hvac-backend/internal/cache"
	"hvac-backend/internal/models"
	"hvac-backend/internal/repositories"

	"go.uber.org/zap"
)

const emailConstraint = "users_email_key"

type UserService struct {
	Repo       UserStore
	JWTManager *auth.JWTManager
}

func NewUserService(repo UserStore, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
	}
}

// Register is public self-registration. Only client and technician accounts
// can be created this way.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if req.Role == models.RoleAdmin {
		return nil, invalidValue("role", req.Role)
	}
	return s.create(ctx, req)
}

// CreateUser is the admin variant of Register and accepts any role.
func (s *UserService) CreateUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	return s.create(ctx, req)
}

func (s *UserService) create(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	user, err := buildUser(req)
	if err != nil {
		return nil, err
	}

	exists, err := s.Repo.EmailExists(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.Repo.Register(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) && repositories.ViolatedConstraint(err) == emailConstraint {
			return nil, ErrDuplicateEmail
		}
		return nil, invalidData(err)
	}

	if user.ClientProfile != nil {
		cache.InvalidatePrefix(ctx, cache.ClientsPrefix)
	}
	zap.S().Infow("[Users] Registered user", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// buildUser validates a registration request and assembles the user with its
// role profile. Nothing is written here.
func buildUser(req *models.RegisterRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	role := strings.TrimSpace(req.Role)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if role == "" {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}

	if !models.ValidRole(role) {
		return nil, invalidValue("role", role)
	}
	if !strings.Contains(email, "@") {
		return nil, invalidValue("email", req.Email)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Phone:    optionalString(req.Phone),
		Role:     role,
		IsActive: true,
	}

	switch role {
	case models.RoleClient:
		company := strings.TrimSpace(req.CompanyName)
		if company == "" {
			return nil, missingFields("companyName")
		}
		user.ClientProfile = &models.ClientProfile{
			CompanyName: company,
			Document:    optionalString(req.Document),
			Address:     optionalString(req.Address),
		}
	case models.RoleTechnician:
		license := strings.TrimSpace(req.LicenseNumber)
		if license == "" {
			return nil, missingFields("licenseNumber")
		}
		rate, err := req.HourlyRate.Float()
		if err != nil {
			return nil, invalidNumber("hourlyRate", req.HourlyRate.String())
		}
		user.TechnicianProfile = &models.TechnicianProfile{
			LicenseNumber: license,
			Specialty:     optionalString(req.Specialty),
			HourlyRate:    rate,
			Available:     true,
		}
	}
	return user, nil
}

// Login authenticates a user and returns a signed session token. Unknown
// email, wrong password and suspended accounts all yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		var missing []string
		if email == "" {
			missing = append(missing, "email")
		}
		if req.Password == "" {
			missing = append(missing, "password")
		}
		return nil, missingFields(missing...)
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  user,
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// ListUsers returns users newest first.
func (s *UserService) ListUsers(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	if filter.Role != "" && !models.ValidRole(filter.Role) {
		return nil, invalidValue("role", filter.Role)
	}
	return s.Repo.List(ctx, filter)
}

// EnsureAdmin creates the configured bootstrap admin unless that email is
// already registered. It reports whether a user was created.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return false, nil
	}
	if name == "" {
		name = "Administrador"
	}
	_, err := s.create(ctx, &models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if errors.Is(err, ErrDuplicateEmail) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
