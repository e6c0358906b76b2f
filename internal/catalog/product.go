package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is the catalog entity. A nil ID marks a transient product that has
// not been persisted yet.
type Product struct {
	ID          *int64
	Name        string
	Description string
	Price       decimal.Decimal
	Available   bool
	Category    Category
}

func (p Product) String() string {
	id := "None"
	if p.ID != nil {
		id = strconv.FormatInt(*p.ID, 10)
	}
	return fmt.Sprintf("<Product %s id=[%s]>", p.Name, id)
}

// Serialize renders the wire mapping. Price is text so it survives JSON
// without passing through a float.
func (p Product) Serialize() map[string]any {
	var id any
	if p.ID != nil {
		id = *p.ID
	}
	return map[string]any{
		"id":          id,
		"name":        p.Name,
		"description": p.Description,
		"price":       FormatPrice(p.Price),
		"available":   p.Available,
		"category":    p.Category.String(),
	}
}

func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Serialize())
}

// UnmarshalJSON reads the wire mapping, id included.
func (p *Product) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return err
	}

	var out Product
	if err := out.Deserialize(data); err != nil {
		return err
	}
	if m, ok := data.(map[string]any); ok {
		if n, ok := m["id"].(json.Number); ok {
			id, err := n.Int64()
			if err != nil {
				return validationErr("Invalid attribute: id " + n.String())
			}
			out.ID = &id
		}
	}

	*p = out
	return nil
}

// Deserialize copies the fields of a decoded JSON object onto p. The ID is
// left alone, and p is only modified when every field is valid.
func (p *Product) Deserialize(data any) error {
	m, ok := data.(map[string]any)
	if !ok {
		return validationErr(fmt.Sprintf(
			"Invalid product: body of request contained bad or no data (expected object, got %s)",
			jsonType(data),
		))
	}

	name, err := stringField(m, "name")
	if err != nil {
		return err
	}
	if name == "" {
		return validationErr("Invalid product: missing name")
	}

	description, err := stringField(m, "description")
	if err != nil {
		return err
	}

	rawPrice, ok := m["price"]
	if !ok {
		return validationErr("Invalid product: missing price")
	}
	price, err := priceValue(rawPrice)
	if err != nil {
		return err
	}

	rawAvailable, ok := m["available"]
	if !ok {
		return validationErr("Invalid product: missing available")
	}
	available, ok := rawAvailable.(bool)
	if !ok {
		return validationErr("Invalid type for boolean [available]: " + jsonType(rawAvailable))
	}

	rawCategory, ok := m["category"]
	if !ok {
		return validationErr("Invalid product: missing category")
	}
	label, ok := rawCategory.(string)
	if !ok {
		return validationErr(fmt.Sprintf("Invalid attribute: %v", rawCategory))
	}
	category, err := ParseCategory(label)
	if err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.Available = available
	p.Category = category
	return nil
}

// Validate checks the invariants a product must hold before it is written.
func (p Product) Validate() error {
	if p.Name == "" {
		return validationErr("Invalid product: missing name")
	}
	if !p.Category.Valid() {
		return validationErr("Invalid attribute: " + p.Category.String())
	}
	return nil
}

// Price bounds match an unconstrained Postgres NUMERIC.
const (
	maxPriceIntDigits  = 131072
	maxPriceFracDigits = 16383
)

// ParsePrice parses decimal text, ignoring surrounding whitespace. Values a
// NUMERIC column cannot hold are rejected.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !priceInRange(d) {
		return decimal.Decimal{}, validationErr("Invalid attribute: price " + s)
	}
	return d, nil
}

func priceInRange(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp < -maxPriceFracDigits {
		return false
	}
	return int64(d.NumDigits())+exp <= maxPriceIntDigits
}

// FormatPrice renders at least two fractional digits and never drops any.
func FormatPrice(d decimal.Decimal) string {
	if d.Exponent() >= -2 {
		return d.StringFixed(2)
	}
	return d.String()
}

func priceValue(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case json.Number:
		return ParsePrice(x.String())
	case string:
		return ParsePrice(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Decimal{}, validationErr(fmt.Sprintf("Invalid attribute: price %v", x))
		}
		return decimal.NewFromFloat(x), nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case decimal.Decimal:
		if !priceInRange(x) {
			return decimal.Decimal{}, validationErr("Invalid attribute: price " + x.String())
		}
		return x, nil
	default:
		return decimal.Decimal{}, validationErr(fmt.Sprintf("Invalid attribute: price %v", v))
	}
}

func stringField(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok {
		return "", validationErr("Invalid product: missing " + key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", validationErr(fmt.Sprintf("Invalid type for string [%s]: %s", key, jsonType(raw)))
	}
	return s, nil
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64, float32, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
