package schema

import "github.com/hamba/avro/v2"

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "cart_event",
	"fields" : [
		{"name": "event_type", "type": "string"},
		{"name": "product_id", "type": "long"},
		{"name": "product_name", "type": "string"},
		{"name": "quantity", "type": "long"},
		{"name": "unit_price", "type": "double"},
		{"name": "cart_total", "type": "double"},
		{"name": "occurred_at", "type": "long"}
	]
}`

// CartEventV1 is the wire value for one cart mutation or checkout.
// The timestamp travels as unix milliseconds.
type CartEventV1 struct {
	EventType   string  `avro:"event_type"`
	ProductID   int     `avro:"product_id"`
	ProductName string  `avro:"product_name"`
	Quantity    int     `avro:"quantity"`
	UnitPrice   float64 `avro:"unit_price"`
	CartTotal   float64 `avro:"cart_total"`
	OccurredAt  int64   `avro:"occurred_at"`
}

func CartEventV1Avro() avro.Schema {
	return avro.MustParse(CartEventSchemaTextV1)
}
