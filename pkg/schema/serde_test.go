package schema_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Renatopaccha/Dental-Gest/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (m *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject, avroSchemaText string,
) (int, error) {
	args := m.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestNewSerdeCartEventV1(t *testing.T) {

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeCartEventV1(t.Context())

		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeCartEventV1(
			t.Context(), schema.SubjectOpt("cart-events-value"),
		)

		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		si := new(MockSchemaIdentifier)

		_, err := schema.NewSerdeCartEventV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(si),
		)

		require.Error(t, err)
		si.AssertNotCalled(t, "DetermineID")
	})

	t.Run("NilSchemaIdentifier", func(t *testing.T) {
		_, err := schema.NewSerdeCartEventV1(
			t.Context(),
			schema.SubjectOpt("cart-events-value"),
			schema.SchemaIdentifierOpt(nil),
		)

		assert.Error(t, err)
	})

	t.Run("RegistryFailure", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		si.On(
			"DetermineID",
			mock.Anything, "cart-events-value", schema.CartEventSchemaTextV1,
		).Return(0, errors.New("registry unavailable"))

		_, err := schema.NewSerdeCartEventV1(
			t.Context(),
			schema.SubjectOpt("cart-events-value"),
			schema.SchemaIdentifierOpt(si),
		)

		assert.Error(t, err)
		si.AssertExpectations(t)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		si.On(
			"DetermineID",
			mock.Anything, "cart-events-value", schema.CartEventSchemaTextV1,
		).Return(42, nil)

		serde, err := schema.NewSerdeCartEventV1(
			t.Context(),
			schema.SubjectOpt("cart-events-value"),
			schema.SchemaIdentifierOpt(si),
		)
		require.NoError(t, err)

		src := schema.CartEventV1{
			EventType:   "add_to_cart",
			ProductID:   7,
			ProductName: "Kit de resina",
			Quantity:    2,
			UnitPrice:   55,
			CartTotal:   110,
			OccurredAt:  1755000000000,
		}

		data, err := serde.Encode(src)
		require.NoError(t, err)

		var dst schema.CartEventV1
		require.NoError(t, serde.Decode(data, &dst))
		assert.Equal(t, src, dst)
		si.AssertExpectations(t)
	})
}
