package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/synergysphere/sphere/internal/auth"
)

// messageError is the {"message": ...} error body the auth routes answer with
// instead of huma's problem details.
type messageError struct {
	status  int
	Message string `json:"message"`
}

func (e *messageError) Error() string  { return e.Message }
func (e *messageError) GetStatus() int { return e.status }

func newMessageError(status int, msg string) *messageError {
	return &messageError{status: status, Message: msg}
}

type RegisterInput struct {
	Body struct {
		Name     string `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
		Email    string `json:"email" minLength:"3" maxLength:"255" doc:"User email"`
		Password string `json:"password" minLength:"1" maxLength:"72" doc:"Password"` //nolint:gosec // G117: login credential DTO
		TeamName string `json:"teamName" required:"false" maxLength:"255" doc:"Team the user belongs to"`
	}
}

type MessageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

type LoginInput struct {
	Body struct {
		Email    string `json:"email" minLength:"1" maxLength:"255" doc:"User email"`
		Password string `json:"password" minLength:"1" maxLength:"72" doc:"Password"` //nolint:gosec // G117: login credential DTO
	}
}

type LoginOutput struct {
	Body struct {
		Token    string    `json:"token"` //nolint:gosec // G117: auth response DTO
		UserID   uuid.UUID `json:"userId"`
		Name     string    `json:"name"`
		TeamName string    `json:"teamName"`
	}
}

func RegisterAuthRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/auth/register",
		Summary:       "Register a new user",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *RegisterInput) (*MessageOutput, error) {
		_, err := authSvc.Register(ctx, input.Body.Name, input.Body.Email, input.Body.Password, input.Body.TeamName)
		if err != nil {
			if errors.Is(err, auth.ErrUserAlreadyExists) {
				return nil, newMessageError(http.StatusBadRequest, "User exists")
			}
			log.Error().Err(err).Msg("api: register failed")
			return nil, newMessageError(http.StatusInternalServerError, err.Error())
		}

		out := &MessageOutput{}
		out.Body.Message = "User created"
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Login with email and password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		token, user, err := authSvc.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return nil, newMessageError(http.StatusBadRequest, "Invalid credentials")
			}
			log.Error().Err(err).Msg("api: login failed")
			return nil, newMessageError(http.StatusInternalServerError, err.Error())
		}

		out := &LoginOutput{}
		out.Body.Token = token
		out.Body.UserID = user.ID
		out.Body.Name = user.Name
		out.Body.TeamName = user.TeamName
		return out, nil
	})
}
