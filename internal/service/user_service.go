package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tailorpos/internal/imagestore"
	"tailorpos/internal/middleware"
	"tailorpos/internal/model"
	"tailorpos/internal/repository"
	"tailorpos/pkg/apperr"
	"tailorpos/pkg/shortid"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// DTOs for request validation

type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required,min=10,max=20"`
	Role     string `json:"role" binding:"required"`
	Year     int    `json:"year" binding:"required"`
	Month    int    `json:"month" binding:"required,min=1,max=12"`
	Day      int    `json:"day" binding:"required,min=1,max=31"`
	Image    string `json:"image"` // base64 payload, optional
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
	Image string `json:"image"` // base64 payload, replaces the stored profile image
}

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse returns a User without exposing sensitive data
type UserResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	EmployeeCode       string    `json:"employee_code"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Role               string    `json:"role"`
	Wallet             string    `json:"wallet"`
	DiscountPercentage string    `json:"discount_percentage"`
	DOB                string    `json:"dob"`
	ImageURL           string    `json:"image_url,omitempty"`
	CreatedAt          string    `json:"created_at"`
	UpdatedAt          string    `json:"updated_at"`
}

// UserService defines the interface for business logic related to staff accounts
type UserService interface {
	SignUp(ctx context.Context, req SignUpRequest) (*UserResponse, error)
	// LoginStaff authenticates non-admin staff (the counter/tailor apps).
	LoginStaff(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	// LoginAdmin authenticates the admin back-office app only.
	LoginAdmin(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error)
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	repo   repository.UserRepository
	images imagestore.Store
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, images imagestore.Store) UserService {
	return &userService{repo: repo, images: images}
}

func toUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:                 user.ID,
		Name:               user.Name,
		EmployeeCode:       user.EmployeeCode,
		Email:              user.Email,
		Phone:              user.Phone,
		Role:               user.Role,
		Wallet:             user.Wallet.StringFixed(2),
		DiscountPercentage: user.DiscountPercentage.StringFixed(2),
		DOB:                user.DOB.Format("2006-01-02"),
		ImageURL:           user.ImageURL,
		CreatedAt:          user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          user.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *userService) SignUp(ctx context.Context, req SignUpRequest) (*UserResponse, error) {
	if !model.ValidRole(req.Role) {
		return nil, apperr.BadRequestf("invalid role: must be admin, cashier, seller, tailor or supervisor")
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperr.Conflictf("email already registered, log in instead")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	employeeCode, err := shortid.NewEmployeeCode()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to generate employee code", err)
	}

	defaults := model.DefaultsForRole(req.Role)
	user := &model.User{
		Name:               req.Name,
		EmployeeCode:       employeeCode,
		Email:              req.Email,
		Password:           string(hashedPassword),
		Phone:              req.Phone,
		Role:               req.Role,
		Wallet:             defaults.Wallet,
		DiscountPercentage: defaults.DiscountPercentage,
		DOB:                time.Date(req.Year, time.Month(req.Month), req.Day, 0, 0, 0, 0, time.UTC),
	}

	if req.Image != "" {
		data, decErr := imagestore.DecodeBase64(req.Image)
		if decErr != nil {
			return nil, apperr.BadRequestf("invalid image payload")
		}
		img, upErr := s.images.Upload("users", "profile.png", data)
		if upErr != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to upload profile image", upErr)
		}
		user.ImageURL = img.URL
		user.ImagePublicID = img.PublicID
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Either the email raced us or the generated employee code collided;
			// both are retriable from the caller's side.
			return nil, apperr.Wrap(apperr.Conflict, "account already exists or employee code collided, try again", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toUserResponse(user), nil
}

func (s *userService) LoginStaff(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	return s.login(ctx, req, false)
}

func (s *userService) LoginAdmin(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	return s.login(ctx, req, true)
}

func (s *userService) login(ctx context.Context, req LoginRequest, wantAdmin bool) (*TokenResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.NotFoundf("email not found, sign up first")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorizedf("invalid email or password")
	}

	if wantAdmin && user.Role != model.RoleAdmin {
		return nil, apperr.Forbiddenf("this login is for administrators only")
	}
	if !wantAdmin && user.Role == model.RoleAdmin {
		return nil, apperr.Forbiddenf("administrators must use the admin login")
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) issueTokens(ctx context.Context, user *model.User) (*TokenResponse, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	})

	accessToken, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to sign token", err)
	}

	refresh := &model.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := s.repo.CreateRefreshToken(ctx, refresh); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &TokenResponse{Token: accessToken, RefreshToken: refresh.Token}, nil
}

func (s *userService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error) {
	stored, err := s.repo.FindRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, apperr.Unauthorizedf("invalid or expired refresh token")
	}

	user, err := s.repo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, apperr.Unauthorizedf("account no longer exists")
	}

	// Rotate: the old refresh token is single use.
	if err := s.repo.DeleteRefreshToken(ctx, stored.Token); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.BadRequestf("invalid user id")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.NotFoundf("user not found")
	}
	return toUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *toUserResponse(&users[i]))
	}

	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.BadRequestf("invalid user id")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.NotFoundf("user not found")
	}

	if req.Role != "" && req.Role != user.Role {
		if !model.ValidRole(req.Role) {
			return nil, apperr.BadRequestf("invalid role: must be admin, cashier, seller, tailor or supervisor")
		}
		// A role change resets wallet and staff discount to the role's defaults.
		defaults := model.DefaultsForRole(req.Role)
		user.Role = req.Role
		user.Wallet = defaults.Wallet
		user.DiscountPercentage = defaults.DiscountPercentage
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if req.Image != "" {
		data, decErr := imagestore.DecodeBase64(req.Image)
		if decErr != nil {
			return nil, apperr.BadRequestf("invalid image payload")
		}
		if user.ImagePublicID != "" {
			if err := s.images.Destroy(user.ImagePublicID); err != nil {
				return nil, apperr.Wrap(apperr.Internal, "failed to replace profile image", err)
			}
		}
		img, upErr := s.images.Upload("users", "profile.png", data)
		if upErr != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to upload profile image", upErr)
		}
		user.ImageURL = img.URL
		user.ImagePublicID = img.PublicID
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return toUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return apperr.BadRequestf("invalid user id")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return apperr.NotFoundf("user not found")
	}

	if user.ImagePublicID != "" {
		if err := s.images.Destroy(user.ImagePublicID); err != nil {
			return apperr.Wrap(apperr.Internal, "failed to remove profile image", err)
		}
	}

	return s.repo.Delete(ctx, userID)
}
