package pricecalc

import (
	"time"

	"github.com/google/uuid"
)

// Context carries the request-scoped inputs of a price calculation: who is
// buying, through which store, and at what instant. Data holds free-form
// hints for processors, e.g. the tax zone.
type Context struct {
	CustomerID *uuid.UUID
	StoreID    string
	Time       time.Time
	Data       map[string]any
}

// NewContext builds a calculation context anchored at the current time.
func NewContext(storeID string) Context {
	return Context{StoreID: storeID, Time: time.Now(), Data: map[string]any{}}
}

// At returns a copy of the context anchored at the given instant.
func (c Context) At(t time.Time) Context {
	c.Time = t
	return c
}

// WithData returns a copy of the context with the key set in Data.
func (c Context) WithData(key string, value any) Context {
	data := make(map[string]any, len(c.Data)+1)
	for k, v := range c.Data {
		data[k] = v
	}
	data[key] = value
	c.Data = data
	return c
}

// StringData returns the string stored under key, or "" when absent.
func (c Context) StringData(key string) string {
	if c.Data == nil {
		return ""
	}
	if v, ok := c.Data[key].(string); ok {
		return v
	}
	return ""
}
