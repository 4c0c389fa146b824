// Package appnumber produces human-facing loan application numbers such as
// LAMF251019483920: a prefix, the issue date (yyMMdd) and a random suffix.
// Uniqueness is not guaranteed here; callers check the store and regenerate.
package appnumber

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	DefaultPrefix = "LAMF"
	suffixDigits  = 6
)

var suffixSpace = big.NewInt(1_000_000)

type Generator struct {
	prefix string
	now    func() time.Time
}

func New(prefix string) *Generator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Generator{prefix: prefix, now: time.Now}
}

// WithClock returns a copy of g that reads the date from now.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	return &Generator{prefix: g.prefix, now: now}
}

func (g *Generator) Next() (string, error) {
	n, err := rand.Int(rand.Reader, suffixSpace)
	if err != nil {
		return "", fmt.Errorf("appnumber: read random suffix: %w", err)
	}
	return fmt.Sprintf("%s%s%0*d", g.prefix, g.now().UTC().Format("060102"), suffixDigits, n.Int64()), nil
}
