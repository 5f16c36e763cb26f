package gen

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Brazilian reference data for realistic records.
var brazilianStates = map[string]string{
	"SP": "Sao Paulo", "RJ": "Rio De Janeiro", "MG": "Belo Horizonte",
	"RS": "Porto Alegre", "PR": "Curitiba", "SC": "Florianopolis",
	"BA": "Salvador", "PE": "Recife", "CE": "Fortaleza",
	"DF": "Brasilia", "GO": "Goiania", "PA": "Belem",
}

// stateCodes is pulled out of the map once, sorted so that seeded runs
// draw states in a stable order.
var stateCodes = func() []string {
	codes := make([]string, 0, len(brazilianStates))
	for code := range brazilianStates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}()

var firstNames = []string{
	"Ana", "Bruno", "Camila", "Diego", "Eduarda", "Felipe", "Gabriela",
	"Henrique", "Isabela", "Joao", "Larissa", "Marcos", "Natalia",
	"Otavio", "Paula", "Rafael", "Sofia", "Thiago", "Vanessa", "Wagner",
}

var lastNames = []string{
	"Almeida", "Barbosa", "Cardoso", "Dias", "Ferreira", "Gomes", "Lima",
	"Martins", "Nascimento", "Oliveira", "Pereira", "Ribeiro", "Santos",
	"Silva", "Souza", "Teixeira",
}

var emailDomains = []string{
	"gmail.com", "hotmail.com", "outlook.com", "yahoo.com.br", "bol.com.br",
}

// ValidState reports whether code is a known Brazilian state code.
func ValidState(code string) bool {
	_, ok := brazilianStates[code]
	return ok
}

// StateCodes returns the state vocabulary in stable order.
func StateCodes() []string {
	return stateCodes
}

// CityOf returns the vocabulary city for a state code.
func CityOf(state string) string {
	return brazilianStates[state]
}

// EmailDomains returns the fixed domain vocabulary.
func EmailDomains() []string {
	return emailDomains
}

// NewOpaqueID returns a 32-character lowercase hex id without separators.
// It draws from the process-global UUID source rather than the seeded faker,
// so ids stay globally unique even across seeded runs.
func NewOpaqueID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// Location is a state/city pair with a zip code prefix.
type Location struct {
	State     string
	City      string
	ZipPrefix int
}

// RandomLocation draws a location uniformly from the Brazilian vocabulary.
// The zip prefix is uniform in [10000, 99999].
func RandomLocation(faker *gofakeit.Faker) Location {
	state := stateCodes[faker.IntRange(0, len(stateCodes)-1)]
	return Location{
		State:     state,
		City:      brazilianStates[state],
		ZipPrefix: faker.IntRange(10000, 99999),
	}
}

// RandomName draws a first/last name pair from the fixed vocabularies.
func RandomName(faker *gofakeit.Faker) (first, last string) {
	first = firstNames[faker.IntRange(0, len(firstNames)-1)]
	last = lastNames[faker.IntRange(0, len(lastNames)-1)]
	return first, last
}

// DeriveEmail builds an address from one of five slug patterns over the given
// name plus a domain from the fixed list. The local part only ever contains
// lowercase letters, digits, dots and underscores.
func DeriveEmail(faker *gofakeit.Faker, first, last string) string {
	first = strings.ToLower(first)
	last = strings.ToLower(last)
	var local string
	switch faker.IntRange(0, 4) {
	case 0:
		local = first + last
	case 1:
		local = first + "." + last
	case 2:
		local = first + "_" + last
	case 3:
		local = first + last + fmt.Sprintf("%02d", faker.IntRange(0, 99))
	case 4:
		local = first + "." + last + fmt.Sprintf("%02d", faker.IntRange(0, 99))
	}
	domain := emailDomains[faker.IntRange(0, len(emailDomains)-1)]
	return local + "@" + domain
}

// DerivePhone formats a Brazilian mobile number: +55 (DD) 9XXXX-XXXX.
func DerivePhone(faker *gofakeit.Faker) string {
	return fmt.Sprintf("+55 (%d) 9%d-%d",
		faker.IntRange(11, 99),
		faker.IntRange(1000, 9999),
		faker.IntRange(1000, 9999))
}
