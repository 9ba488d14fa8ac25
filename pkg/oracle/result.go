package oracle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/kawiarnia/pkg/domain"
)

// Validation is the decoded validation shape.
type Validation struct {
	Valid bool
}

// TurnResult is the decoded turn-processing shape.
type TurnResult struct {
	Intent   domain.Intent
	Update   domain.OrderUpdate
	Response string
}

// ParseError reports a payload that does not fit the expected shape.
// Transport failures and timeouts are wrapped in it as well, so callers
// have a single failure path.
type ParseError struct {
	Shape Shape
	Raw   string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("oracle: malformed %s payload: %v", e.Shape, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	errMissingField = errors.New("missing required field")
	errEmpty        = errors.New("empty payload")
)

type validationPayload struct {
	IsValid *bool `json:"is_valid"`
}

type turnPayload struct {
	Intent         *string  `json:"intent"`
	DrinkType      *string  `json:"drink_type"`
	Size           *string  `json:"size"`
	Customizations []string `json:"customizations"`
	Substitutions  []string `json:"substitutions"`
	Response       *string  `json:"response"`
}

// DecodeValidation parses a validation payload. The is_valid field is required.
func DecodeValidation(raw string) (Validation, error) {
	var p validationPayload
	if err := decode(raw, &p); err != nil {
		return Validation{}, &ParseError{Shape: ShapeValidation, Raw: raw, Err: err}
	}
	if p.IsValid == nil {
		return Validation{}, &ParseError{Shape: ShapeValidation, Raw: raw, Err: fmt.Errorf("%w: is_valid", errMissingField)}
	}
	return Validation{Valid: *p.IsValid}, nil
}

// DecodeTurn parses a turn payload. intent and response are required;
// drink_type and size may be null; an unknown size is rejected while an
// unknown intent label decodes to domain.IntentUnrecognized.
func DecodeTurn(raw string) (TurnResult, error) {
	fail := func(err error) (TurnResult, error) {
		return TurnResult{}, &ParseError{Shape: ShapeTurn, Raw: raw, Err: err}
	}

	var p turnPayload
	if err := decode(raw, &p); err != nil {
		return fail(err)
	}
	if p.Intent == nil {
		return fail(fmt.Errorf("%w: intent", errMissingField))
	}
	if p.Response == nil {
		return fail(fmt.Errorf("%w: response", errMissingField))
	}

	res := TurnResult{
		Intent:   domain.ParseIntent(*p.Intent),
		Response: *p.Response,
		Update: domain.OrderUpdate{
			Customizations: p.Customizations,
			Substitutions:  p.Substitutions,
		},
	}
	if p.DrinkType != nil && strings.TrimSpace(*p.DrinkType) != "" {
		drink := strings.TrimSpace(*p.DrinkType)
		res.Update.Drink = &drink
	}
	if p.Size != nil && strings.TrimSpace(*p.Size) != "" {
		size, err := domain.ParseSize(*p.Size)
		if err != nil {
			return fail(err)
		}
		res.Update.Size = &size
	}
	return res, nil
}

func decode(raw string, v any) error {
	body := stripFence(raw)
	if body == "" {
		return errEmpty
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after payload")
	}
	return nil
}

// stripFence removes a surrounding markdown code fence, which chat models
// add even when told not to.
func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
