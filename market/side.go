// Package market holds the small set of types shared by every layer of the
// engine (indicators, positions, strategies, broker) so that none of them
// needs to import another to agree on what "long" and "short" mean.
package market

// Side is a trade direction. It is used both for order/position sides and
// for strategy/indicator "direction" results.
type Side string

const (
	Long  Side = "long"
	Short Side = "short"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Long {
		return Short
	}
	return Long
}
