// Package serializers maps stored records to their wire form and request payloads back to records.
// Field sets are declared per type; nothing is discovered at runtime.
package serializers

import (
	"bytes"
	"strconv"
	"strings"

	"octofit/models"
	"octofit/utils"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ValidationError reports a payload that is missing fields or carries wrong values.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

// Input is a decoded request payload for record type M. Pointer fields that are nil
// were absent from the request.
type Input[M any] interface {
	// Present lists the struct fields supplied by the client.
	Present() []string
	// Build creates a new record from a fully validated payload.
	Build() (M, error)
	// Apply copies the supplied fields onto an existing record.
	Apply(*M) error
}

// Validate checks a payload. Partial payloads only check the fields they carry.
func Validate[M any](in Input[M], partial bool) error {
	if partial {
		return invalid(utils.ValidatePartial(in, in.Present()...))
	}
	return invalid(utils.ValidateStruct(in))
}

// FormatID renders a primary key as the external string identifier.
func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// EmbeddedArray is the wire form of a list kept as JSON text in storage. Besides a
// JSON array it accepts a string holding a JSON-encoded array, which older clients send.
type EmbeddedArray[T any] []T

func (a *EmbeddedArray[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		if strings.TrimSpace(encoded) == "" {
			*a = EmbeddedArray[T]{}
			return nil
		}
		data = []byte(encoded)
	}
	items := make([]T, 0)
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*a = items
	return nil
}

// decodeEmbedded never fails: blank or unreadable stored text becomes an empty list.
func decodeEmbedded[T any](text models.JSONText, resource string, id uint, field string) []T {
	items := make([]T, 0)
	if err := text.DecodeArray(&items); err != nil {
		logrus.WithFields(logrus.Fields{
			"resource": resource,
			"id":       id,
			"field":    field,
			"error":    err.Error(),
		}).Warn("Malformed embedded data, serving empty list")
		return make([]T, 0)
	}
	if items == nil {
		return make([]T, 0)
	}
	return items
}

func encodeEmbedded[T any](items EmbeddedArray[T]) (models.JSONText, error) {
	if items == nil {
		return models.EmptyJSONArray, nil
	}
	return models.EncodeJSONText([]T(items))
}
