// Package deck defines the finite universe of cards for fuse: five colors,
// five ranks, the fixed number of physical copies per rank, and the value
// types that identify a card type or one physical card.
//
// # Identifiers
//
// A card type is a (color, rank) pair and is encoded as COLOR-RANK:
//
//	id := deck.NewTypeID(deck.Yellow, deck.Three)
//	// id.String() == "YELLOW-3"
//
// A card instance additionally carries an index among the copies of its
// type and is encoded as COLOR-RANK-INDEX:
//
//	inst, err := deck.NewInstanceID(deck.Red, deck.One, 2)
//	// inst.String() == "RED-1-2"
//
// Every identifier has a matching Parse function and the pair round-trips
// exactly. Parse failures are reported as *MalformedIDError and never
// coerced.
//
// # Multiplicities
//
// The deck holds three copies of each 1, two of each 2, 3 and 4, and a single
// 5 per color: 50 cards in total. The table is fixed for the life of the
// process.
package deck
