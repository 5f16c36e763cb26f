package olist

import (
	"lakegen/cdc"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCustomerChangeAvroRoundTrips(t *testing.T) {
	g := newTestGen(61, 0)
	c := g.newCustomer()
	e := &cdc.Event{
		SequenceNumber:  10001,
		Operation:       cdc.OpInsert,
		ChangeTimestamp: "2018-06-01T12:00:01",
		Batch:           1,
		Payload:         c,
	}

	topic, key, data := e.ToAvro()
	require.Equal(t, "cdc_customers", topic)
	require.Equal(t, *c.CustomerID, key)

	native, _, err := customerChangeCodec.NativeFromBinary(data)
	require.NoError(t, err)
	fields := native.(map[string]interface{})
	require.Equal(t, int64(10001), fields["sequence_number"])
	require.Equal(t, "INSERT", fields["operation"])
	require.Equal(t, c.UniqueID, fields["customer_unique_id"])
	require.Equal(t,
		map[string]interface{}{"string": *c.CustomerID},
		fields["customer_id"])
}

func TestNullableColumnsEncodeAsAvroNull(t *testing.T) {
	g := newTestGen(62, 0)
	c := g.newCustomer()
	c.CustomerID = nil
	c.ZipPrefix = nil

	native := c.AvroNative()
	require.Nil(t, native["customer_id"])
	require.Nil(t, native["customer_zip_code_prefix"])

	e := &cdc.Event{
		Operation:       cdc.OpDelete,
		ChangeTimestamp: "2018-06-01T12:00:02",
		Payload:         c,
	}
	_, _, data := e.ToAvro()
	decoded, _, err := customerChangeCodec.NativeFromBinary(data)
	require.NoError(t, err)
	require.Nil(t, decoded.(map[string]interface{})["customer_id"])
}

func TestSellerAndProductCodecsAcceptTheirNatives(t *testing.T) {
	g := newTestGen(63, 0)

	p := g.newProduct()
	native := p.AvroNative()
	native["sequence_number"] = int64(1)
	native["operation"] = "INSERT"
	native["change_timestamp"] = "2018-06-01T12:00:03"
	_, err := productChangeCodec.BinaryFromNative(nil, native)
	require.NoError(t, err)

	s := g.newSeller()
	native = s.AvroNative()
	native["sequence_number"] = int64(2)
	native["operation"] = "UPDATE"
	native["change_timestamp"] = "2018-06-01T12:00:04"
	_, err = sellerChangeCodec.BinaryFromNative(nil, native)
	require.NoError(t, err)
}
