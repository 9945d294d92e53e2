package catalog

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"strings"
	"time"
)

// listKeys is the priority order for locating the product array inside an
// object-shaped response. The nested page-data wrapper wins, then the
// top-level keys; a bare array is used as-is.
var listKeys = []string{"products", "items", "data"}

// Normalize decodes one upstream response body into canonical products.
// Malformed JSON, unexpected shapes, and missing fields all degrade to
// defaults; this function never fails. fallbackCategory is the category the
// request asked for and backfills records that omit their own.
func Normalize(payload []byte, fallbackCategory string) []Product {
	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return []Product{}
	}
	return NormalizeValue(value, fallbackCategory)
}

// NormalizeValue normalizes an already-decoded JSON value.
func NormalizeValue(value any, fallbackCategory string) []Product {
	list := extractList(value)
	products := make([]Product, 0, len(list))
	for _, element := range list {
		raw, ok := element.(map[string]any)
		if !ok {
			continue
		}
		products = append(products, normalizeOne(raw, fallbackCategory))
	}
	return products
}

func extractList(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case map[string]any:
		if wrapper, ok := v["pageData"].(map[string]any); ok {
			if list, ok := wrapper["products"].([]any); ok {
				return list
			}
		}
		for _, key := range listKeys {
			if list, ok := v[key].([]any); ok {
				return list
			}
		}
	}
	return nil
}

func normalizeOne(raw map[string]any, fallbackCategory string) Product {
	category := firstString(raw, "category")
	if category == "" {
		category = fallbackCategory
	}
	if category == "" {
		category = defaultOther
	}

	p := Product{
		ID:            firstScalar(raw, "id", "_id"),
		Name:          firstString(raw, "name", "title"),
		NameAr:        firstString(raw, "nameAr", "name_ar", "arabic_name"),
		Price:         firstFloat(raw, "price", "cost"),
		OriginalPrice: firstFloat(raw, "originalPrice", "original_price", "old_price"),
		Image:         firstString(raw, "image", "thumbnail", "photo"),
		Category:      category,
		Brand:         firstString(raw, "brand", "manufacturer"),
		IsNew:         firstBool(raw, "isNew", "is_new"),
		Discount:      firstString(raw, "discount", "discount_text"),
		Featured:      firstBool(raw, "featured", "is_featured"),
		DateAdded:     firstString(raw, "dateAdded", "created_at"),
		Description:   firstString(raw, "description", "desc"),
		Stock:         int(firstFloat(raw, "stock", "quantity")),
	}

	if p.Name == "" {
		p.Name = defaultName
	}
	if p.Image == "" {
		p.Image = defaultImage
	}
	if p.Brand == "" {
		p.Brand = defaultOther
	}
	if p.DateAdded == "" {
		p.DateAdded = time.Now().UTC().Format(time.RFC3339)
	}
	if p.ID == "" {
		p.ID = stableID(p)
	}
	return p
}

// stableID synthesizes an id from fields that do not change between fetches,
// so the same upstream item merges to the same cart line across reloads. A
// random token would break merge-by-id on every refetch.
func stableID(p Product) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%g", p.Name, p.Category, p.Price)
	return "gen-" + strconv.FormatUint(h.Sum64(), 16)
}

// firstString returns the first candidate key holding a non-empty string.
func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := raw[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// firstScalar accepts strings and numbers, rendering numbers without a
// trailing fraction; upstream ids arrive as either.
func firstScalar(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// firstFloat parses the first candidate that coerces to a finite number.
// Malformed numeric strings and NaN resolve to 0.
func firstFloat(raw map[string]any, keys ...string) float64 {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0
			}
			return v
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
				return 0
			}
			return parsed
		case bool:
			return 0
		}
	}
	return 0
}

// firstBool coerces the first present candidate to a bool. Strings follow
// strconv rules; numbers are true when non-zero.
func firstBool(raw map[string]any, keys ...string) bool {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case bool:
			return v
		case float64:
			return v != 0
		case string:
			if parsed, err := strconv.ParseBool(strings.ToLower(v)); err == nil {
				return parsed
			}
			return false
		}
	}
	return false
}

// firstInt is firstFloat truncated; upstream page metadata is numeric but
// occasionally arrives as a string.
func firstInt(raw map[string]any, keys ...string) int {
	return int(firstFloat(raw, keys...))
}

// NormalizePage decodes one paginated "all" response: products normalized the
// usual way plus tolerant extraction of the pagination metadata.
func NormalizePage(payload []byte, page int) Page {
	result := Page{Products: []Product{}, Page: page}

	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return result
	}

	result.Products = NormalizeValue(value, "")
	if raw, ok := value.(map[string]any); ok {
		if wrapper, ok := raw["pageData"].(map[string]any); ok {
			raw = wrapper
		}
		result.TotalPages = firstInt(raw, "totalPages", "total_pages", "pages")
		result.Total = firstInt(raw, "total", "totalItems", "count")
	}
	return result
}
