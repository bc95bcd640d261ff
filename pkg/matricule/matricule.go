// Package matricule generates the human-readable identifiers issued at
// entity creation: a fixed prefix, N random digits and M random uppercase
// letters. Shapes differ per entity type.
package matricule

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	digits  = "0123456789"
	letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// maxAttempts bounds the retry-until-unique loop. After exhaustion the
	// digit suffix widens by one, which grows the namespace tenfold per pass.
	maxAttempts = 25
)

// Shape describes one entity type's matricule format.
type Shape struct {
	Prefix  string
	Digits  int
	Letters int
}

// Shapes used across the application.
var (
	ShapeUser       = Shape{Digits: 6, Letters: 4} // prefix depends on role
	ShapeAbsence    = Shape{Prefix: "ABS", Digits: 6, Letters: 2}
	ShapeService    = Shape{Prefix: "SERV", Digits: 3, Letters: 3}
	ShapeSpeciality = Shape{Prefix: "COM", Digits: 3, Letters: 3}
	ShapePole       = Shape{Prefix: "PO", Digits: 3, Letters: 3}
	ShapeCode       = Shape{Prefix: "CODE", Digits: 5, Letters: 1}
)

// UserShape returns the user matricule shape for a role. Unknown roles get
// the generic USR prefix.
func UserShape(role string) Shape {
	prefix := map[string]string{
		"admin": "ADM",
		"cadre": "CAD",
		"nurse": "INF",
	}[strings.ToLower(role)]
	if prefix == "" {
		prefix = "USR"
	}
	s := ShapeUser
	s.Prefix = prefix
	return s
}

// New returns a single random candidate for the shape.
func (s Shape) New() string {
	var b strings.Builder
	b.WriteString(s.Prefix)
	for i := 0; i < s.Digits; i++ {
		b.WriteByte(digits[randIndex(len(digits))])
	}
	for i := 0; i < s.Letters; i++ {
		b.WriteByte(letters[randIndex(len(letters))])
	}
	return b.String()
}

// ExistsFunc reports whether a candidate is already taken in the target
// collection.
type ExistsFunc func(candidate string) (bool, error)

// Generate produces a matricule absent from the target collection at the
// moment of the check. The retry loop is bounded; once maxAttempts candidates
// in a row collide, the digit suffix widens and the loop starts over. The
// storage-level unique index remains the authoritative guard against the
// check-then-act race between concurrent creations.
func Generate(shape Shape, exists ExistsFunc) (string, error) {
	for {
		for attempt := 0; attempt < maxAttempts; attempt++ {
			candidate := shape.New()
			taken, err := exists(candidate)
			if err != nil {
				return "", fmt.Errorf("matricule lookup: %w", err)
			}
			if !taken {
				return candidate, nil
			}
		}
		shape.Digits++
	}
}

func randIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}
	return int(v.Int64())
}
