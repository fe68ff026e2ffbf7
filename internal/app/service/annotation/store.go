package annotation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"

	"github.com/fatflowers/mollie-ideal/internal/models"
)

// Namespaces used for iDeal payment state. Single and multiple payment mode
// never share a mapping.
const (
	NamespacePayment          = "mollie.ideal.payment"
	NamespaceMultiplePayments = "mollie.ideal.multiple_payments"
)

var ErrEmptyObjectID = errors.New("annotation: empty object id")

// Store attaches mutable JSON mappings to content objects.
type Store interface {
	// Get returns the mapping of objectID under namespace. A missing mapping
	// comes back empty and is not created.
	Get(ctx context.Context, objectID, namespace string) (*models.Annotation, error)
	// Update runs fn on the current mapping and persists it, creating the
	// mapping when needed. Concurrent updates of one mapping are serialized.
	// Nothing is written when fn returns an error.
	Update(ctx context.Context, objectID, namespace string, fn func(a *models.Annotation) error) error
}

func emptyAnnotation(objectID, namespace string) *models.Annotation {
	return &models.Annotation{ObjectID: objectID, Namespace: namespace, Data: datatypes.JSON("{}")}
}

// Decode unmarshals the mapping into v. An empty mapping leaves v untouched.
func Decode(a *models.Annotation, v any) error {
	if a.IsEmpty() {
		return nil
	}
	if err := json.Unmarshal(a.Data, v); err != nil {
		return fmt.Errorf("annotation: decode %s/%s: %w", a.ObjectID, a.Namespace, err)
	}
	return nil
}

// Encode replaces the mapping with the JSON form of v.
func Encode(a *models.Annotation, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("annotation: encode %s/%s: %w", a.ObjectID, a.Namespace, err)
	}
	a.Data = datatypes.JSON(b)
	return nil
}
