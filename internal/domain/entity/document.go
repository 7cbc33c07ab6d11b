package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Reserved document keys shared by every store backend.
const (
	DocumentIDKey   = "_id"
	DocumentTypeKey = "_type"
)

// Document types stored by this service.
const (
	DocumentTypeOnboarding  = "onboardingData"
	DocumentTypeUserProfile = "userProfile"
)

// Document is a JSON-like record held by a document store. It always carries
// _id and _type once written.
type Document map[string]interface{}

func (d Document) ID() string {
	id, _ := d[DocumentIDKey].(string)
	return id
}

func (d Document) Type() string {
	t, _ := d[DocumentTypeKey].(string)
	return t
}

// Clone returns a deep copy with every nested value reduced to plain JSON
// shapes (map[string]interface{}, []interface{}, string, float64, bool, nil).
func (d Document) Clone() (Document, error) {
	if d == nil {
		return nil, nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	out := Document{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode converts the document into a typed record.
func (d Document) Decode(v interface{}) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// NewDocument converts a typed record into a Document.
func NewDocument(v interface{}) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	doc := Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Value returns json value, implement driver.Valuer interface
func (d Document) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (d *Document) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*d = Document(result)
	return err
}
