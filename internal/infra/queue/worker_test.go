package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

type fakeImporter struct {
	err      error
	received []ImportPayload
}

func (f *fakeImporter) ImportLead(ctx context.Context, payload ImportPayload) error {
	f.received = append(f.received, payload)
	return f.err
}

// TestWorkerHandleAcksValidRow
func TestWorkerHandleAcksValidRow(t *testing.T) {
	importer := &fakeImporter{}
	w := NewWorker(nil, importer)

	body, _ := json.Marshal(ImportPayload{Name: "Bar do Zé", Phone: "11999990000", Salesperson: "ana@barsaude.com.br"})
	ack := &fakeAcknowledger{}

	w.handle(amqp.Delivery{Acknowledger: ack, Body: body})

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
	assert.Len(t, importer.received, 1)
	assert.Equal(t, "Bar do Zé", importer.received[0].Name)
}

// TestWorkerHandleNacksInvalidJSON - payload inválido vai para a DLQ sem requeue
func TestWorkerHandleNacksInvalidJSON(t *testing.T) {
	importer := &fakeImporter{}
	w := NewWorker(nil, importer)

	ack := &fakeAcknowledger{}

	w.handle(amqp.Delivery{Acknowledger: ack, Body: []byte("{broken")})

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
	assert.Empty(t, importer.received)
}

// TestWorkerHandleNacksRejectedRow - linha rejeitada pelo domínio também vai para a DLQ
func TestWorkerHandleNacksRejectedRow(t *testing.T) {
	importer := &fakeImporter{err: errors.New("invalid import row")}
	w := NewWorker(nil, importer)

	body, _ := json.Marshal(ImportPayload{Name: "Sem Contato"})
	ack := &fakeAcknowledger{}

	w.handle(amqp.Delivery{Acknowledger: ack, Body: body})

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
}

func TestImportPayloadJSONKeys(t *testing.T) {
	body, err := json.Marshal(ImportPayload{
		Name:              "Bar do Zé",
		Phone:             "11999990000",
		Email:             "ze@bar.com.br",
		City:              "São Paulo",
		EstablishmentType: "bar",
		Salesperson:       "ana@barsaude.com.br",
	})
	assert.NoError(t, err)

	var data map[string]any
	assert.NoError(t, json.Unmarshal(body, &data))
	for _, key := range []string{"name", "phone", "email", "city", "establishment_type", "salesperson"} {
		assert.Contains(t, data, key)
	}
}
