package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// StringList is the storage type for free-text list fields: service features,
// project tags, office info details. Documents written by earlier versions of
// the admin panel hold a single string where newer ones hold an array;
// decoding accepts both, encoding always writes an array.
type StringList []string

// NewStringList trims every entry and drops the empties. All list input from
// JSON and form bodies passes through it before being stored.
func NewStringList(values []string) StringList {
	list := make(StringList, 0, len(values))
	for _, value := range values {
		if item := strings.TrimSpace(value); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func (s *StringList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null:
		*s = nil
	case bsontype.String:
		var single string
		if err := bson.UnmarshalValue(t, data, &single); err != nil {
			return err
		}
		*s = NewStringList([]string{single})
	case bsontype.Array:
		var values []string
		if err := bson.UnmarshalValue(t, data, &values); err != nil {
			return err
		}
		*s = values
	default:
		return fmt.Errorf("cannot decode %s into StringList", t)
	}
	return nil
}

func (s StringList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue([]string(s))
}
