package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lockbox/internal/crypto"
	"github.com/MKhiriev/lockbox/internal/validators"
	"github.com/MKhiriev/lockbox/models"
)

type generatorService struct {
	validator validators.Validator
}

func NewGeneratorService() GeneratorService {
	return &generatorService{validator: validators.NewVaultValidator()}
}

// Generate returns a random password and its strength rating. A zero length
// selects the default length and a nil class flag counts as enabled.
func (g *generatorService) Generate(ctx context.Context, req models.GeneratePasswordRequest) (models.GeneratePasswordResponse, error) {
	if err := g.validator.Validate(ctx, req); err != nil {
		return models.GeneratePasswordResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	length := req.Length
	if length == 0 {
		length = crypto.DefaultPasswordLength
	}

	password, err := crypto.GeneratePassword(length, GeneratorOptionsFromRequest(req))
	if err != nil {
		return models.GeneratePasswordResponse{}, fmt.Errorf("error generating password: %w", err)
	}

	strength := crypto.PasswordStrength(password)
	if strength.Feedback == nil {
		strength.Feedback = []string{}
	}
	return models.GeneratePasswordResponse{
		Password: password,
		Strength: models.PasswordStrength{
			Score:    strength.Score,
			Feedback: strength.Feedback,
		},
	}, nil
}

// GeneratorOptionsFromRequest maps optional request flags to generator
// options.
func GeneratorOptionsFromRequest(req models.GeneratePasswordRequest) crypto.GeneratorOptions {
	enabled := func(b *bool) bool { return b == nil || *b }
	return crypto.GeneratorOptions{
		Uppercase: enabled(req.Uppercase),
		Lowercase: enabled(req.Lowercase),
		Numbers:   enabled(req.Numbers),
		Symbols:   enabled(req.Symbols),
	}
}
