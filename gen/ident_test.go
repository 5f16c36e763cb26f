package gen

import (
	"regexp"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

func TestNewOpaqueID(t *testing.T) {
	hexPattern := regexp.MustCompile(`^[0-9a-f]{32}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewOpaqueID()
		require.Regexp(t, hexPattern, id)
		_, dup := seen[id]
		require.False(t, dup, "ids must be unique: %s", id)
		seen[id] = struct{}{}
	}
}

func TestRandomLocation(t *testing.T) {
	faker := gofakeit.New(1)
	for i := 0; i < 200; i++ {
		loc := RandomLocation(faker)
		require.True(t, ValidState(loc.State))
		require.Equal(t, CityOf(loc.State), loc.City)
		require.GreaterOrEqual(t, loc.ZipPrefix, 10000)
		require.LessOrEqual(t, loc.ZipPrefix, 99999)
	}
}

func TestDeriveEmail(t *testing.T) {
	emailPattern := regexp.MustCompile(`^[a-z0-9._]+@[a-z.]+$`)

	faker := gofakeit.New(2)
	domains := make(map[string]struct{})
	for _, d := range EmailDomains() {
		domains[d] = struct{}{}
	}
	for i := 0; i < 500; i++ {
		first, last := RandomName(faker)
		email := DeriveEmail(faker, first, last)
		require.Regexp(t, emailPattern, email)

		at := regexp.MustCompile("@").Split(email, 2)
		_, known := domains[at[1]]
		require.True(t, known, "domain must come from the fixed list: %s", email)
	}
}

func TestDerivePhone(t *testing.T) {
	phonePattern := regexp.MustCompile(`^\+55 \(\d{2}\) 9\d{4}-\d{4}$`)

	faker := gofakeit.New(3)
	for i := 0; i < 200; i++ {
		require.Regexp(t, phonePattern, DerivePhone(faker))
	}
}

func TestSeededRunsAreDeterministic(t *testing.T) {
	a, b := gofakeit.New(99), gofakeit.New(99)
	for i := 0; i < 50; i++ {
		require.Equal(t, RandomLocation(a), RandomLocation(b))
		af, al := RandomName(a)
		bf, bl := RandomName(b)
		require.Equal(t, af, bf)
		require.Equal(t, al, bl)
		require.Equal(t, DeriveEmail(a, af, al), DeriveEmail(b, bf, bl))
	}
}
