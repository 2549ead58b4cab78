package kyruus

import (
	"encoding/json"
	"fmt"
	"os"
)

// Overrides carries manual corrections applied on top of the partner
// location dataset. Keys are the location codes the dataset carries;
// values are the codes the scheduling API actually answers for.
type Overrides struct {
	LocationCodeOverrides map[string]string `json:"locationCodeOverrides"`
}

// LoadOverrides reads the overrides file at path. A missing file is
// not an error; it yields an empty override set.
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Overrides{}, nil
		}
		return Overrides{}, fmt.Errorf("read overrides: %w", err)
	}

	var o Overrides
	if err := json.Unmarshal(data, &o); err != nil {
		return Overrides{}, fmt.Errorf("parse overrides %s: %w", path, err)
	}
	return o, nil
}
