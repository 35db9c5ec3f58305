package bookingcode

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
)

// Alphabet leaves out 0/O and 1/I/L so codes survive being read aloud.
const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	DefaultLength  = 6
	DefaultRetries = 10
)

var ErrExhausted = errors.New("booking code: no free code after retries")

// ExistsFunc reports whether a code is already taken.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

type Generator struct {
	Length  int
	Retries int
	// Random returns a random index in [0, n). Defaults to crypto/rand.
	Random func(n int) (int, error)
}

func NewGenerator() *Generator {
	return &Generator{Length: DefaultLength, Retries: DefaultRetries}
}

func (g *Generator) random(n int) (int, error) {
	if g.Random != nil {
		return g.Random(n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// Code returns one candidate code without a uniqueness check.
func (g *Generator) Code() (string, error) {
	length := g.Length
	if length <= 0 {
		length = DefaultLength
	}

	buf := make([]byte, length)
	for i := range buf {
		idx, err := g.random(len(Alphabet))
		if err != nil {
			return "", err
		}
		buf[i] = Alphabet[idx]
	}
	return string(buf), nil
}

// Unique draws codes until exists reports one as free. The caller must still
// treat a unique-index violation on insert as a collision.
func (g *Generator) Unique(ctx context.Context, exists ExistsFunc) (string, error) {
	retries := g.Retries
	if retries <= 0 {
		retries = DefaultRetries
	}

	for i := 0; i < retries; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		code, err := g.Code()
		if err != nil {
			return "", err
		}

		taken, err := exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}

	return "", ErrExhausted
}
