package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/GlebRadaev/smmpanel/internal/domain"
)

// The provider is loose with JSON types: ids, rates and balances arrive
// either as numbers or as quoted strings depending on the endpoint.

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := unquote(b)
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", s, err)
	}
	*f = flexFloat(v)
	return nil
}

type flexInt int64

func (i *flexInt) UnmarshalJSON(b []byte) error {
	s := unquote(b)
	if s == "" {
		*i = 0
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*i = flexInt(v)
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q: %w", s, err)
	}
	*i = flexInt(int64(v))
	return nil
}

type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(b, []byte(`"`)) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	if string(b) == "null" {
		*s = ""
		return nil
	}
	*s = flexString(b)
	return nil
}

type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	s := unquote(b)
	if s == "" {
		*f = false
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid boolean %q: %w", s, err)
	}
	*f = flexBool(v)
	return nil
}

func unquote(b []byte) string {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return ""
	}
	return strings.TrimSpace(strings.Trim(s, `"`))
}

type errorBody struct {
	Error json.RawMessage `json:"error"`
}

// errorMessage extracts the "error" field of an object body, if any.
func errorMessage(body []byte) (string, bool) {
	trimmed := bytes.TrimSpace(body)
	if !bytes.HasPrefix(trimmed, []byte("{")) {
		return "", false
	}
	var eb errorBody
	if err := json.Unmarshal(trimmed, &eb); err != nil || len(eb.Error) == 0 || string(eb.Error) == "null" {
		return "", false
	}
	var msg string
	if err := json.Unmarshal(eb.Error, &msg); err != nil {
		msg = string(eb.Error)
	}
	return msg, true
}

type serviceResponse struct {
	Service  flexInt   `json:"service"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Category string    `json:"category"`
	Rate     flexFloat `json:"rate"`
	Min      flexInt   `json:"min"`
	Max      flexInt   `json:"max"`
	Refill   flexBool  `json:"refill"`
	Cancel   flexBool  `json:"cancel"`
}

func (s serviceResponse) toDomain() domain.CatalogService {
	return domain.CatalogService{
		ServiceID: int64(s.Service),
		Name:      s.Name,
		Type:      s.Type,
		Category:  s.Category,
		Rate:      float64(s.Rate),
		Min:       int64(s.Min),
		Max:       int64(s.Max),
		Refill:    bool(s.Refill),
		Cancel:    bool(s.Cancel),
	}
}

type addResponse struct {
	Order flexInt `json:"order"`
}

type statusResponse struct {
	Charge     flexString `json:"charge"`
	StartCount flexString `json:"start_count"`
	Status     string     `json:"status"`
	Remains    flexString `json:"remains"`
	Currency   string     `json:"currency"`
	Error      string     `json:"error"`
}

func (s statusResponse) toDomain(orderID int64) domain.OrderStatus {
	return domain.OrderStatus{
		OrderID:    orderID,
		Status:     s.Status,
		Charge:     string(s.Charge),
		StartCount: string(s.StartCount),
		Remains:    string(s.Remains),
		Currency:   s.Currency,
		Error:      s.Error,
	}
}

type refillResponse struct {
	Refill json.RawMessage `json:"refill"`
}

type cancelResponse struct {
	Order  flexInt         `json:"order"`
	Cancel json.RawMessage `json:"cancel"`
}

type balanceResponse struct {
	Balance  flexFloat `json:"balance"`
	Currency string    `json:"currency"`
}
