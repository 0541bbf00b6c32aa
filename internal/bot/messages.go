package bot

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const msgProfileMissing = "You don't have a profile yet. Run /set_profile to create one."

const msgStart = "Hi! I'm your hydration and nutrition assistant.\n\n" +
	"Commands:\n" +
	"/set_profile - set up your profile\n" +
	"/check_progress - today's water and calorie summary\n" +
	"/log_water <ml> - log drunk water\n" +
	"/log_food <product> - log eaten food\n" +
	"/log_workout <type> <minutes> - log a workout\n" +
	"/water_stat - water progress chart\n" +
	"/food_stat - calorie progress chart"

func capitalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
