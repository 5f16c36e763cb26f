package cdc

import (
	"encoding/json"
	"fmt"
	"lakegen/sink"
	"strings"
)

// Event wraps a snapshot of a record together with the change metadata the
// downstream pipelines key on. The payload is the record's state after the
// change; for DELETE it is the tombstone, the last known state.
type Event struct {
	sink.BaseSinkRecord

	SequenceNumber  int64
	Operation       Operation
	ChangeTimestamp string
	Batch           int
	Payload         Record
}

// metaColumns are prepended to every entity's own columns.
var metaColumns = []string{"sequence_number", "operation", "change_timestamp"}

func (e *Event) metaRow() []string {
	return []string{
		fmt.Sprint(e.SequenceNumber),
		string(e.Operation),
		e.ChangeTimestamp,
	}
}

func (e *Event) ToCsv() (path string, header []string, row []string) {
	entity, pHeader, pRow := e.Payload.ToCsv()
	// The payload path is "<entity>/<entity>_initial"; events live under
	// the cdc tree with 1-based batch numbers in the file name.
	entity = strings.SplitN(entity, "/", 2)[0]
	path = fmt.Sprintf("cdc/%s/%s_cdc_batch_%d", entity, entity, e.Batch+1)
	header = append(append([]string{}, metaColumns...), pHeader...)
	row = append(e.metaRow(), pRow...)
	return path, header, row
}

func (e *Event) ToJson() (topic string, key string, data []byte) {
	pTopic, key, pData := e.Payload.ToJson()
	var fields map[string]interface{}
	if err := json.Unmarshal(pData, &fields); err != nil {
		panic(fmt.Sprintf("malformed payload json: %s", err))
	}
	fields["sequence_number"] = e.SequenceNumber
	fields["operation"] = string(e.Operation)
	fields["change_timestamp"] = e.ChangeTimestamp
	data, _ = json.Marshal(fields)
	return "cdc_" + pTopic, key, data
}

func (e *Event) ToAvro() (topic string, key string, data []byte) {
	pTopic, key, _ := e.Payload.ToJson()
	native := e.Payload.AvroNative()
	native["sequence_number"] = e.SequenceNumber
	native["operation"] = string(e.Operation)
	native["change_timestamp"] = e.ChangeTimestamp
	data, err := e.Payload.EventCodec().BinaryFromNative(nil, native)
	if err != nil {
		panic(err)
	}
	return "cdc_" + pTopic, key, data
}

func (e *Event) ToPostgresSql() string {
	entity, header, row := e.Payload.ToCsv()
	entity = strings.SplitN(entity, "/", 2)[0]
	cols := append(append([]string{}, metaColumns...), header...)
	vals := append(e.metaRow(), row...)
	quoted := make([]string, len(vals))
	for i, v := range vals {
		if v == "" {
			quoted[i] = "NULL"
		} else {
			quoted[i] = fmt.Sprintf("'%s'", v)
		}
	}
	return fmt.Sprintf("INSERT INTO cdc_%s (%s) values (%s)",
		entity, strings.Join(cols, ", "), strings.Join(quoted, ", "))
}
