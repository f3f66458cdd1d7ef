package messaging

import "context"

// Service renders user-facing text in the player's language
type Service interface {
	// Render returns the localized text for a message key
	Render(ctx context.Context, input *RenderInput) (*RenderOutput, error)

	// ErrorMessage returns a user-friendly explanation of an error
	ErrorMessage(ctx context.Context, input *ErrorMessageInput) (*ErrorMessageOutput, error)

	// InfluenceName returns the localized name of an influence
	InfluenceName(ctx context.Context, input *InfluenceNameInput) (*InfluenceNameOutput, error)
}
