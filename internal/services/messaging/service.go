package messaging

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/coupd/internal/models"
	"github.com/KirkDiggler/coupd/internal/services/game"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// ErrUnknownKey is returned when a key is missing from the base catalog
var ErrUnknownKey = errors.New("unknown message key")

// errorKeys maps errors to the message that explains them, first match wins
var errorKeys = []struct {
	err error
	key Key
}{
	{models.ErrUnsupportedPlayerCount, KeyErrUnsupportedPlayerCount},
	{models.ErrGameAlreadyStarted, KeyErrGameAlreadyStarted},
	{models.ErrGameNotStarted, KeyErrGameNotStarted},
	{models.ErrGameConcluded, KeyErrGameConcluded},
	{models.ErrPlayerNotInGame, KeyErrPlayerNotInGame},
	{models.ErrPlayerAlreadyInGame, KeyErrPlayerAlreadyInGame},
	{models.ErrCardNotFound, KeyErrCardNotFound},
	{models.ErrForeignAidInProgress, KeyErrForeignAidInProgress},
	{models.ErrEmptyDeck, KeyErrEmptyDeck},
	{game.ErrGameNotFound, KeyErrGameNotFound},
	{game.ErrPlayerNotFound, KeyErrPlayerNotInGame},
	{game.ErrGameAlreadyExists, KeyErrGameAlreadyExists},
	{game.ErrHistoryUnavailable, KeyErrHistoryUnavailable},
	{game.ErrMatchNotFound, KeyErrMatchNotFound},
}

// service implements the Service interface on an x/text catalog
type service struct {
	catalog   *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
	fallback  language.Tag
}

// New creates a messaging service with every supported locale loaded
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	locales := make([]string, 0, len(catalogs))
	for locale := range catalogs {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	builder := catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale)))
	supported := make([]language.Tag, 0, len(locales))
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("failed to parse locale %q: %w", locale, err)
		}
		for key, text := range catalogs[locale] {
			if err := builder.SetString(tag, string(key), text); err != nil {
				return nil, fmt.Errorf("failed to register %s for %s: %w", key, locale, err)
			}
		}
		supported = append(supported, tag)
	}

	defaultLocale := cfg.DefaultLocale
	if defaultLocale == "" {
		defaultLocale = BaseLocale
	}
	if _, ok := catalogs[defaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q is not supported", defaultLocale)
	}

	return &service{
		catalog:   builder,
		supported: supported,
		matcher:   language.NewMatcher(supported),
		fallback:  language.MustParse(defaultLocale),
	}, nil
}

// Render returns the localized text for a message key
func (s *service) Render(ctx context.Context, input *RenderInput) (*RenderOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if _, ok := catalogs[BaseLocale][input.Key]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, input.Key)
	}

	return &RenderOutput{
		Text: s.printer(input.Locale).Sprintf(string(input.Key), input.Args...),
	}, nil
}

// ErrorMessage returns a user-friendly explanation of an error
func (s *service) ErrorMessage(ctx context.Context, input *ErrorMessageInput) (*ErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input and error cannot be nil")
	}

	key := KeyErrUnknown
	for _, candidate := range errorKeys {
		if errors.Is(input.Err, candidate.err) {
			key = candidate.key
			break
		}
	}

	return &ErrorMessageOutput{
		Key:  key,
		Text: s.printer(input.Locale).Sprintf(string(key)),
	}, nil
}

// InfluenceName returns the localized name of an influence
func (s *service) InfluenceName(ctx context.Context, input *InfluenceNameInput) (*InfluenceNameOutput, error) {
	if input == nil || !input.Influence.IsValid() {
		return nil, fmt.Errorf("invalid influence: %v", input)
	}

	return &InfluenceNameOutput{
		Name: s.printer(input.Locale).Sprintf(string(influenceKey(input.Influence))),
	}, nil
}

// printer picks the closest supported locale, falling back to the default
func (s *service) printer(locale string) *message.Printer {
	tag := s.fallback
	if locale != "" {
		if requested, err := language.Parse(locale); err == nil {
			if _, index, confidence := s.matcher.Match(requested); confidence != language.No {
				tag = s.supported[index]
			}
		}
	}
	return message.NewPrinter(tag, message.Catalog(s.catalog))
}
