package classifier

import (
	"strings"

	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
)

// Rule binds a predicate over a lowercased, trimmed header to a role.
// Rules are evaluated in order and the first match wins.
type Rule struct {
	Name  string
	Role  models.Role
	Match func(header string) bool
}

// DefaultRules is the deterministic tier. PRICE comes first; BREWERY
// precedes NAME so "наименование пивоварни" is a brewery column.
var DefaultRules = []Rule{
	{
		Name: "price",
		Role: models.RolePrice,
		Match: func(h string) bool {
			return strings.Contains(h, "цена") && !strings.Contains(h, "сумма")
		},
	},
	{
		Name: "price-alias",
		Role: models.RolePrice,
		Match: func(h string) bool {
			return contains("price", "стоимость")(h) && !strings.Contains(h, "сумма")
		},
	},
	{
		Name: "brewery",
		Role: models.RoleBrewery,
		Match: either(
			oneOf("пивоварня", "brewery", "производитель"),
			contains("пивоварн", "brewery"),
		),
	},
	{
		Name:  "name",
		Role:  models.RoleName,
		Match: oneOf("название", "наименование", "name", "номенклатура", "продукт", "товар"),
	},
	{
		Name:  "style",
		Role:  models.RoleStyle,
		Match: oneOf("стиль", "style", "сорт", "тип"),
	},
	{
		Name: "volume",
		Role: models.RoleVolume,
		Match: either(
			oneOf("объем", "объём", "volume", "тип тары", "тара", "вид упаковки",
				"упаковка", "тип фасовки", "фасовка", "литраж"),
			contains("тара", "упаковк", "фасовк", "литраж"),
		),
	},
	{
		Name: "order",
		Role: models.RoleOrderQuantity,
		Match: either(
			oneOf("заказ", "order", "количество заказа", "заказать"),
			// "Сумма заказа" is an order total in money, not a quantity.
			func(h string) bool {
				return strings.Contains(h, "заказ") &&
					!strings.Contains(h, "заказать") && !strings.Contains(h, "сумма")
			},
		),
	},
	{
		Name: "ignore",
		Role: models.RoleIgnore,
		Match: either(
			oneOf(
				"этикетка", "etiquette", "label", "картинка", "фото",
				"abv", "og", "ibu", "ebc",
				"наличие", "availability", "stock", "склад", "остаток",
				"годен до", "expiry", "expires", "срок годности",
				"скидки", "акции", "discount", "promo",
				"стоимость", "сумма",
				"код", "sku", "артикул", "id",
				"описание", "description", "комментарий",
				"вид продукции", "категория", "category",
				"unnamed",
				"abv / og / ibu",
			),
			contains("unnamed", "остаток", "сумма", "код", "срок", "годн", "abv", "ibu", "og", "наличи"),
		),
	},
}

// FallbackRules is the last-resort keyword heuristic used when no model is
// available or inference fails. Unmatched headers are IGNORE.
var FallbackRules = []Rule{
	{
		Name:  "price",
		Role:  models.RolePrice,
		Match: contains("цена", "price", "стоимость", "cost", "руб", "₽", "rub"),
	},
	{
		Name:  "brewery",
		Role:  models.RoleBrewery,
		Match: contains("пивоварня", "brewery", "производитель", "бренд", "brand"),
	},
	{
		Name:  "name",
		Role:  models.RoleName,
		Match: contains("название", "наименование", "name", "пиво", "beer", "продукт", "product"),
	},
	// Volume precedes style so "тип тары" is not a style.
	{
		Name:  "volume",
		Role:  models.RoleVolume,
		Match: contains("объем", "объём", "volume", "литр", "мл", "ml", "упаковка", "тара"),
	},
	{
		Name:  "style",
		Role:  models.RoleStyle,
		Match: contains("стиль", "style", "тип", "type", "сорт"),
	},
}

// evaluate returns the first matching rule.
func evaluate(rules []Rule, header string) (Rule, bool) {
	for _, r := range rules {
		if r.Match(header) {
			return r, true
		}
	}
	return Rule{}, false
}

func oneOf(values ...string) func(string) bool {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(h string) bool {
		_, ok := set[h]
		return ok
	}
}

func contains(subs ...string) func(string) bool {
	return func(h string) bool {
		for _, s := range subs {
			if strings.Contains(h, s) {
				return true
			}
		}
		return false
	}
}

func either(preds ...func(string) bool) func(string) bool {
	return func(h string) bool {
		for _, p := range preds {
			if p(h) {
				return true
			}
		}
		return false
	}
}
