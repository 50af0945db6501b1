package fields

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
)

// PETKegMinLiters is the smallest bare number read as a PET keg volume.
const PETKegMinLiters = 15

var (
	literPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*л(?:итр)?`),
		regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*l(?:iter)?`),
		regexp.MustCompile(`(\d[.,]\d+)`),
	}
	milliliterPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*мл`),
		regexp.MustCompile(`(\d+)\s*ml`),
	}
)

// kegFallbacks are tried in order when a keg is mentioned without a
// recognizable liter amount.
var kegFallbacks = []struct {
	needles []string
	volume  string
}{
	{[]string{"пэт 30", "pet 30"}, "30 л (ПЭТ-кега)"},
	{[]string{"пэт 20", "pet 20"}, "20 л (ПЭТ-кега)"},
	{[]string{"30"}, "30 л (кега)"},
	{[]string{"50"}, "50 л (кега)"},
	{[]string{"20"}, "20 л (кега)"},
}

// ExtractVolume normalizes a volume cell of any kind.
func ExtractVolume(c models.Cell) (string, bool) {
	switch c.Kind {
	case models.CellNumber:
		return ExtractVolumeNumber(c.Num)
	case models.CellText:
		return ExtractVolumeText(c.Text)
	default:
		return "", false
	}
}

// ExtractVolumeNumber reads a bare number as liters. Values of at least
// PETKegMinLiters are PET kegs.
func ExtractVolumeNumber(v float64) (string, bool) {
	switch {
	case math.IsInf(v, 0) || math.IsNaN(v):
		return "", false
	case v >= PETKegMinLiters:
		return strconv.Itoa(int(v)) + " л (ПЭТ-кега)", true
	case v > 0:
		return models.FormatNumber(v) + " л", true
	default:
		return "", false
	}
}

// ExtractVolumeText finds a liter or milliliter amount in free text and
// annotates it with the container type. Keg mentions take precedence over
// can and bottle mentions.
func ExtractVolumeText(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	if v, ok := models.ParseNumber(trimmed); ok {
		if vol, ok := ExtractVolumeNumber(v); ok {
			return vol, true
		}
	}

	clean := strings.NewReplacer("\n", " ", "\r", " ").Replace(strings.ToLower(text))
	keg := containsAny(clean, "кег", "keg", "пэт", "pet")
	container := containerType(clean)

	annotate := func(amount string) string {
		switch {
		case keg:
			return amount + " л (кега)"
		case container != "":
			return amount + " л (" + container + ")"
		default:
			return amount + " л"
		}
	}

	for _, re := range literPatterns {
		if m := re.FindStringSubmatch(clean); m != nil {
			return annotate(strings.ReplaceAll(m[1], ",", ".")), true
		}
	}
	for _, re := range milliliterPatterns {
		if m := re.FindStringSubmatch(clean); m != nil {
			ml, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return annotate(models.FormatNumber(float64(ml) / 1000)), true
		}
	}

	if keg {
		for _, fb := range kegFallbacks {
			if containsAny(clean, fb.needles...) {
				return fb.volume, true
			}
		}
		return "кега", true
	}
	return "", false
}

func containerType(clean string) string {
	switch {
	case containsAny(clean, "бутылка", "bottle", "бут"):
		return "бутылка"
	case containsAny(clean, "банка", "can", "банку", "ж/б"):
		return "банка"
	default:
		return ""
	}
}

// MentionsKeg reports whether raw volume text names a keg.
func MentionsKeg(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "кег") || strings.Contains(lower, "keg")
}
