// Package notify builds the short, non-blocking messages shown after a skill
// is added, removed or updated, or when input is rejected.
package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/Zachkp/portfolio/internal/skills"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func (n Notice) IsZero() bool {
	return n.Message == ""
}

func Added(label string) Notice {
	return Notice{Level: LevelSuccess, Message: fmt.Sprintf("Skill %q added successfully!", label)}
}

func Removed(label string) Notice {
	return Notice{Level: LevelInfo, Message: fmt.Sprintf("Skill %q removed.", label)}
}

func Updated(label string) Notice {
	return Notice{Level: LevelSuccess, Message: fmt.Sprintf("Skill updated to %q", label)}
}

// FromError maps a rejected skill operation to the message shown for it.
// ErrRemovalPending maps to the zero Notice: a repeated delete is silent.
func FromError(err error, input string) Notice {
	switch {
	case err == nil, errors.Is(err, skills.ErrRemovalPending):
		return Notice{}
	case errors.Is(err, skills.ErrEmptyInput):
		return Notice{Level: LevelError, Message: "Please enter a skill."}
	case errors.Is(err, skills.ErrDuplicateSkill):
		return Notice{Level: LevelError, Message: fmt.Sprintf("Skill %q already exists!", strings.TrimSpace(input))}
	case errors.Is(err, skills.ErrIndexOutOfRange):
		return Notice{Level: LevelError, Message: "That skill changed. The list has been refreshed."}
	}
	return Notice{Level: LevelError, Message: "Something went wrong. Please try again."}
}

// Trigger encodes n as an HX-Trigger header value. Header bytes are read as
// Latin-1 by browsers, so everything outside ASCII is written as a \u escape.
func (n Notice) Trigger() string {
	b, err := json.Marshal(map[string]Notice{"notify": n})
	if err != nil {
		return ""
	}
	return asciiJSON(string(b))
}

// asciiJSON rewrites non-ASCII runes in encoded JSON as \uXXXX escapes,
// using a surrogate pair above the basic multilingual plane. Non-ASCII
// runes only occur inside JSON strings, so the result decodes to the same
// value.
func asciiJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < utf8.RuneSelf:
			b.WriteRune(r)
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, hi, lo)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	return b.String()
}
