package profiles

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/engin-hq/engin/internal/common"
)

// updateSchema is the field contract for partial profile updates:
// email must look like an email, strings carry minimum lengths, and
// list fields must be arrays of strings.
const updateSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "email":           {"type": "string", "format": "email"},
    "username":        {"type": "string", "minLength": 3, "maxLength": 50},
    "full_name":       {"type": "string", "maxLength": 250},
    "bio":             {"type": "string", "maxLength": 2000},
    "avatar_url":      {"type": "string"},
    "location":        {"type": "string", "maxLength": 250},
    "skills":          {"type": "array", "items": {"type": "string", "minLength": 1}},
    "interests":       {"type": "array", "items": {"type": "string", "minLength": 1}},
    "user_type":       {"type": "string", "minLength": 1},
    "employment_type": {"type": "string", "minLength": 1},
    "github_url":      {"type": "string"},
    "linkedin_url":    {"type": "string"}
  },
  "additionalProperties": false
}`

var compiledUpdateSchema = func() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.AssertFormat = true
	if err := c.AddResource("profile_update.json", strings.NewReader(updateSchema)); err != nil {
		panic(err)
	}
	return c.MustCompile("profile_update.json")
}()

// ValidateUpdatePayload checks a raw update body against the field
// schema, returning a validation error whose message carries one line
// per offending field.
func ValidateUpdatePayload(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return common.InvalidArgumentError("malformed JSON body")
	}

	if err := compiledUpdateSchema.Validate(doc); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return common.NewAppError("VALIDATION_ERROR", err.Error(), common.ErrValidation)
		}
		return common.NewAppError("VALIDATION_ERROR", strings.Join(leafMessages(ve), "; "), common.ErrValidation)
	}
	return nil
}

func leafMessages(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "body"
		}
		return []string{fmt.Sprintf("%s: %s", loc, ve.Message)}
	}
	var msgs []string
	for _, c := range ve.Causes {
		msgs = append(msgs, leafMessages(c)...)
	}
	return msgs
}
