package model

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// Initials derives the badge initials shown on assigned task cards,
// e.g. "María García" -> "MG". Counted in runes, not bytes, so accented
// first letters ("Ángel García" -> "ÁG") keep both initials.
func (u *User) Initials() string {
	var b strings.Builder
	n := 0
	for _, part := range strings.Fields(u.Name) {
		if n == 2 {
			break
		}
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		n++
	}
	if n == 0 && u.Email != "" {
		r, _ := utf8.DecodeRuneInString(u.Email)
		return string(unicode.ToUpper(r))
	}
	return b.String()
}
