package model

// Direction indicates how the latest price moved relative to the prior sample.
type Direction string

const (
	DirectionUp      Direction = "UP"
	DirectionDown    Direction = "DOWN"
	DirectionNeutral Direction = "NEUTRAL"
)

// DirectionOf derives the trend direction from a price pair.
// Missing data on either side yields NEUTRAL, as does an unchanged price.
func DirectionOf(price, previous *float64) Direction {
	if price == nil || previous == nil {
		return DirectionNeutral
	}
	switch {
	case *price > *previous:
		return DirectionUp
	case *price < *previous:
		return DirectionDown
	default:
		return DirectionNeutral
	}
}

// Quote is one symbol's latest tick snapshot. Direction is always derived
// from (Price, PreviousPrice) via DirectionOf; it is never set independently.
type Quote struct {
	Symbol        string
	Price         *float64
	PreviousPrice *float64
	Change        float64
	Direction     Direction
	Err           string
}

// NewQuote builds a successful quote from the two most recent closes.
func NewQuote(symbol string, price, previous float64) Quote {
	q := Quote{
		Symbol:        symbol,
		Price:         &price,
		PreviousPrice: &previous,
		Change:        price - previous,
	}
	q.Direction = DirectionOf(q.Price, q.PreviousPrice)
	return q
}

// ErrorQuote builds a failed quote: prices absent, zero change, NEUTRAL.
func ErrorQuote(symbol, msg string) Quote {
	return Quote{
		Symbol:    symbol,
		Direction: DirectionNeutral,
		Err:       msg,
	}
}
