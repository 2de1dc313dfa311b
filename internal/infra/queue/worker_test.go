package queue

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendLeadNotification(to, leadEmail, leadName, source string) error {
	args := m.Called(to, leadEmail, leadName, source)
	return args.Error(0)
}

func TestWorkerProcessSendsNotification(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("SendLeadNotification", "sales@gem.dev", "ada@example.com", "Ada", "referral").
		Return(nil)

	w := &Worker{Notifier: notifier, SalesInbox: "sales@gem.dev"}

	err := w.process(LeadCapturedPayload{
		LeadID: "id-1",
		Email:  "ada@example.com",
		Name:   "Ada",
		Source: "referral",
		Status: "hot",
	})

	assert.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestWorkerProcessPropagatesMailFailure(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("SendLeadNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	w := &Worker{Notifier: notifier, SalesInbox: "sales@gem.dev"}

	err := w.process(LeadCapturedPayload{LeadID: "id-1", Email: "a@b.com"})
	assert.Error(t, err)
}

// No mail configured is not an error: the lead is already stored, the
// event just acks through.
func TestWorkerProcessWithoutMailIsNoop(t *testing.T) {
	w := &Worker{}

	err := w.process(LeadCapturedPayload{LeadID: "id-1", Email: "a@b.com"})
	assert.NoError(t, err)
}

func TestLeadCapturedPayloadWireFormat(t *testing.T) {
	body, err := json.Marshal(LeadCapturedPayload{
		LeadID: "id-1",
		Email:  "ada@example.com",
		Source: "web_form",
		Status: "warm",
	})
	assert.NoError(t, err)

	var raw map[string]interface{}
	assert.NoError(t, json.Unmarshal(body, &raw))

	assert.Equal(t, "id-1", raw["lead_id"])
	assert.Equal(t, "ada@example.com", raw["email"])
	assert.Equal(t, "web_form", raw["source"])
	assert.Equal(t, "warm", raw["status"])
	// Empty name stays off the wire.
	assert.NotContains(t, raw, "name")
}
