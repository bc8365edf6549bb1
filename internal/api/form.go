package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/abhisek/bcdetect/internal/diagnosis"
	"github.com/abhisek/bcdetect/internal/features"
)

// formProvider reads one urlencoded field per feature. Blank and absent
// fields read as the empty sentinel.
type formProvider url.Values

func (p formProvider) NumberInput(name string, _ diagnosis.Constraints) (float64, error) {
	raw := strings.TrimSpace(url.Values(p).Get(name))
	if raw == "" {
		return features.EmptySentinel, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return v, nil
}

// unknownFormFields lists submitted field names the schema doesn't know.
func unknownFormFields(schema *features.Schema, form url.Values) []string {
	var extra []string
	for name := range form {
		if schema.Index(name) < 0 {
			extra = append(extra, name)
		}
	}
	return extra
}
