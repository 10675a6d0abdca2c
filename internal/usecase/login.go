package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfilePhoto string `json:"profile_photo,omitempty"`
}

type LoginOutput struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type LoginUseCase struct {
	Accounts AccountRepositoryInterface
	Tokens   TokenIssuerInterface
}

func NewLoginUseCase(accounts AccountRepositoryInterface, tokens TokenIssuerInterface) *LoginUseCase {
	return &LoginUseCase{Accounts: accounts, Tokens: tokens}
}

// Execute exchanges credentials for a bearer token. Unknown email and wrong
// password produce the same message.
func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	account, err := uc.Accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to look up account: " + err.Error()}
	}
	if account == nil {
		return nil, &DomainError{Code: CodeUnauthorized, Message: "Invalid credentials"}
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)) != nil {
		return nil, &DomainError{Code: CodeUnauthorized, Message: "Invalid credentials"}
	}

	token, err := uc.Tokens.Issue(account.ID)
	if err != nil {
		return nil, &TechnicalError{Code: "TOKEN_ERROR", Message: "failed to issue token: " + err.Error()}
	}

	return &LoginOutput{
		Token: token,
		User: LoginUser{
			ID:           account.ID,
			Name:         account.Name,
			Email:        account.Email,
			ProfilePhoto: account.ProfilePhoto,
		},
	}, nil
}
