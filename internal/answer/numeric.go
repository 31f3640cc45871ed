package answer

import (
	"strconv"
	"strings"
)

// numberWords is the closed vocabulary understood by WordToNumber.
var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
	"hundred": 100,
}

// WordToNumber converts a cardinal written in digits or English words to
// an integer: "7", "twelve", "twenty-two", "one hundred", "two hundred
// forty". ok is false when the text cannot be read as a number; a zero
// value with ok set (from "0" or "zero") is a real result.
//
// Tokens outside the vocabulary are scanned for embedded digits ("12th"
// reads as 12) before giving up.
func WordToNumber(text string) (n int, ok bool) {
	t := strings.ReplaceAll(normalize(text), "-", " ")
	if t == "" {
		return 0, false
	}
	if isDigits(t) {
		v, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	tokens := strings.Fields(t)
	if len(tokens) == 0 {
		return 0, false
	}

	current := 0
	for _, tok := range tokens {
		if v, known := numberWords[tok]; known {
			if v == 100 {
				current = max(1, current) * 100
			} else {
				current += v
			}
			continue
		}

		digits := keepDigits(tok)
		if digits == "" {
			return 0, false
		}
		v, err := strconv.Atoi(digits)
		if err != nil {
			return 0, false
		}
		current += v
	}
	return current, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func keepDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
