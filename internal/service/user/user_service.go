package user

import (
	"context"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vendas-ahora/api-vendas/internal/apierror"
	"github.com/vendas-ahora/api-vendas/internal/dto"
	"github.com/vendas-ahora/api-vendas/internal/models"
	"github.com/vendas-ahora/api-vendas/internal/service/auth"
)

type UserService interface {
	Signup(ctx context.Context, in dto.SignupDto) (dto.SignupResponseDto, apierror.ErrorResponse)
	Login(ctx context.Context, in dto.LoginDto) (dto.LoginResponseDto, apierror.ErrorResponse)
}

type userService struct {
	db       *gorm.DB
	validate *validator.Validate
	tokens   auth.TokenService
}

func NewUserService(db *gorm.DB, validate *validator.Validate, tokens auth.TokenService) UserService {
	return &userService{db: db, validate: validate, tokens: tokens}
}

func (s *userService) Signup(ctx context.Context, in dto.SignupDto) (dto.SignupResponseDto, apierror.ErrorResponse) {
	if err := s.validate.Struct(in); err != nil {
		if ve := apierror.FromValidationError(err); ve != nil {
			return dto.SignupResponseDto{}, ve
		}
		log.Printf("validating signup: %v", err)
		return dto.SignupResponseDto{}, apierror.InternalServerError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("hashing password: %v", err)
		return dto.SignupResponseDto{}, apierror.InternalServerError
	}

	user := models.User{Email: in.Email, PasswordHash: string(hash)}
	err = s.db.WithContext(ctx).Create(&user).Error
	// The unique index on email decides collisions, so a concurrent
	// signup with the same address still gets the structured 400.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return dto.SignupResponseDto{}, apierror.NewStructured().Add("email", "Email is already in use")
	}
	if err != nil {
		log.Printf("creating user: %v", err)
		return dto.SignupResponseDto{}, apierror.InternalServerError
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		log.Printf("issuing token for user %d: %v", user.ID, err)
		return dto.SignupResponseDto{}, apierror.InternalServerError
	}

	return dto.SignupResponseDto{
		User:  dto.UserDto{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt},
		Token: token,
	}, nil
}

// Login never reveals whether the email or the password was wrong.
func (s *userService) Login(ctx context.Context, in dto.LoginDto) (dto.LoginResponseDto, apierror.ErrorResponse) {
	if err := s.validate.Struct(in); err != nil {
		if ve := apierror.FromValidationError(err); ve != nil {
			return dto.LoginResponseDto{}, ve
		}
		log.Printf("validating login: %v", err)
		return dto.LoginResponseDto{}, apierror.InternalServerError
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", in.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.LoginResponseDto{}, apierror.CredentialsError
	}
	if err != nil {
		log.Printf("fetching user by email: %v", err)
		return dto.LoginResponseDto{}, apierror.InternalServerError
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return dto.LoginResponseDto{}, apierror.CredentialsError
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		log.Printf("issuing token for user %d: %v", user.ID, err)
		return dto.LoginResponseDto{}, apierror.InternalServerError
	}
	return dto.LoginResponseDto{Token: token}, nil
}
