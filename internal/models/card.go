package models

// Influence is one of the five court characters a card can represent
type Influence string

const (
	// InfluenceDuke takes tax and blocks foreign aid
	InfluenceDuke Influence = "duke"

	// InfluenceCaptain steals and blocks stealing
	InfluenceCaptain Influence = "captain"

	// InfluenceAmbassador exchanges cards with the court deck and blocks stealing
	InfluenceAmbassador Influence = "ambassador"

	// InfluenceAssassin pays to eliminate an opponent's influence
	InfluenceAssassin Influence = "assassin"

	// InfluenceDuchess blocks assassination
	InfluenceDuchess Influence = "duchess"
)

// Influences lists every influence in deck-building order
var Influences = []Influence{
	InfluenceDuke,
	InfluenceCaptain,
	InfluenceAmbassador,
	InfluenceAssassin,
	InfluenceDuchess,
}

// IsValid reports whether the influence is one of the five known values
func (i Influence) IsValid() bool {
	for _, known := range Influences {
		if i == known {
			return true
		}
	}
	return false
}

// Card is a single influence card in circulation
type Card struct {
	// ID identifies this card instance; influences repeat, IDs never do
	ID string

	// Influence is the character printed on the card
	Influence Influence

	// Hidden is true while the card sits in its holder's concealed collection
	Hidden bool
}
