package names

import "strings"

// searchTerms maps a lookup key with apostrophes removed to a better search
// term for the exercise catalog. Names that are missing here are searched as is.
var searchTerms = map[string]string{
	// push
	"flat dumbbell bench press":           "dumbbell bench press",
	"incline dumbbell bench press":        "incline dumbbell press",
	"seated dumbbell shoulder press":      "dumbbell shoulder press",
	"dumbbell lateral raise":              "lateral raise dumbbell",
	"dumbbell overhead triceps extension": "triceps extension dumbbell",

	// pull
	"one-arm dumbbell row":         "one arm dumbbell row",
	"chest-supported dumbbell row": "chest supported row",
	"dumbbell rear delt raise":     "reverse fly dumbbell",
	"dumbbell hammer curl":         "hammer curl",
	"dumbbell curl":                "bicep curl dumbbell",

	// legs
	"goblet squat":                 "goblet squat",
	"bulgarian split squat":        "bulgarian split squat",
	"dumbbell romanian deadlift":   "romanian deadlift dumbbell",
	"dumbbell hip thrust":          "hip thrust",
	"standing dumbbell calf raise": "calf raise standing",
	"standing calf raise":          "calf raise standing",

	// ez bar
	"ez bar floor press":       "floor press barbell",
	"close-grip ez bar press":  "close grip bench press",
	"ez bar skullcrusher":      "skull crusher",
	"ez bar bent-over row":     "bent over row barbell",
	"ez bar curl":              "barbell curl",
	"reverse ez bar curl":      "reverse curl barbell",
	"ez bar romanian deadlift": "romanian deadlift barbell",

	// cable station
	"cable triceps pushdown": "triceps pushdown cable",
	"chin-ups / pull-ups":    "pull ups",
	"one-arm cable row":      "cable row",
	"cable face pull":        "face pull cable",
	"dumbbell / ez bar curl": "bicep curl",
	"cable row":              "seated cable row",
	"leg extension":          "leg extension",
	"leg curl":               "leg curl",

	// complementary
	"posterior pelvic tilt hold": "pelvic tilt",
	"dead bug":                   "dead bug",
	"glute bridge hold":          "glute bridge",
	"wall slides":                "wall slide",
	"rear delt raise":            "reverse fly",
	"chin tucks":                 "chin tuck",
	"single-leg stand":           "single leg balance",
	"step-back lunge":            "reverse lunge",
	"slow calf raises":           "calf raise",
	"farmer carry":               "farmer walk",

	// longevity
	"pelvic tilt (posterior)":      "pelvic tilt",
	"bird dog":                     "bird dog",
	"cat–cow spinal mobility":      "cat cow",
	"cat-cow spinal mobility":      "cat cow",
	"hip flexor stretch":           "hip flexor stretch",
	"thoracic extension on bench":  "thoracic extension",
	"dumbbell goblet squat":        "goblet squat",
	"wall push-ups":                "wall push up",
	"dumbbell row":                 "dumbbell row",
	"brisk walk / jog intervals":   "walking",
	"jump rope":                    "jump rope",
	"stair climb":                  "stair climbing",
	"tandem walk (heel-to-toe)":    "tandem walk",
	"single-leg romanian deadlift": "single leg deadlift",
	"bosu ball stand":              "balance board",
}

var apostrophes = strings.NewReplacer("'", "", "’", "", "‘", "")

// Key returns the record key for an exercise name: lowercased and trimmed.
func Key(rawName string) string {
	return strings.TrimSpace(strings.ToLower(rawName))
}

func searchKey(rawName string) string {
	return strings.TrimSpace(apostrophes.Replace(strings.ToLower(rawName)))
}

// Normalize maps an exercise display name to the term used to search the
// exercise catalog. It never fails: unknown names are searched as they are,
// lowercased and without apostrophes.
func Normalize(rawName string) string {
	key := searchKey(rawName)
	if term, ok := searchTerms[key]; ok {
		return term
	}
	return key
}

// HasAlias reports whether the exercise name has an explicit search term.
func HasAlias(rawName string) bool {
	_, ok := searchTerms[searchKey(rawName)]
	return ok
}
