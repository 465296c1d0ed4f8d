package models

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

// resourceTags wraps the tag list so it can be validated with struct tags
type resourceTags struct {
	Tags []string `validate:"max=10,dive,required,min=2,max=30"`
}

// ValidateResourceTags checks that tags are a JSON array of short,
// non-empty strings. An empty or null tag list is fine.
func ValidateResourceTags(tags datatypes.JSON) error {
	if len(tags) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(tags, &list); err != nil {
		return fmt.Errorf("tags must be an array of strings: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(resourceTags{Tags: list}); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}
