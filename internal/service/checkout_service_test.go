package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/webild-pos/internal/messaging/whatsapp"
	"github.com/webild-pos/internal/order"
	"github.com/webild-pos/internal/queue"

	"github.com/hibiken/asynq"
)

type stubMessenger struct {
	calls []order.Message
}

func (m *stubMessenger) Name() string { return "stub" }

func (m *stubMessenger) Send(_ context.Context, msg order.Message) (order.Outcome, error) {
	m.calls = append(m.calls, msg)
	return order.Outcome{Channel: "stub", Recipient: msg.Recipient}, nil
}

type stubEnqueuer struct {
	tasks []*asynq.Task
}

func (e *stubEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: queue.CriticalQueue}, nil
}

func TestCheckoutSubmitDeepLink(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()
	f.add(t, f.smash, 2, f.bacon)
	f.add(t, f.volcano, 1)

	checkout := NewCheckoutService(f.catalog, f.sessions, whatsapp.NewDeepLinkMessenger(""), "es")
	result, err := checkout.Submit(ctx, CheckoutInput{
		StoreSlug:    f.store.Slug,
		SessionID:    f.sessionID,
		CustomerName: "Ana",
		Mode:         "Delivery",
		Destination:  "centro",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Destination != "Centro" || result.Mode != string(order.FulfillmentDelivery) {
		t.Fatalf("unexpected fulfillment: %+v", result.CheckoutPreview)
	}
	for _, want := range []string{"TITO STATION", "Ana", "2x Classic Smash", "Extra Bacon", "$34.98", "Bs. 1749.00"} {
		if !strings.Contains(result.Text, want) {
			t.Fatalf("order text missing %q:\n%s", want, result.Text)
		}
	}
	if !strings.HasPrefix(result.Dispatch.URL, "https://wa.me/584141234567?text=") {
		t.Fatalf("unexpected deep link: %s", result.Dispatch.URL)
	}
	if strings.Contains(result.Dispatch.URL, "+") {
		t.Fatalf("spaces must be encoded as %%20: %s", result.Dispatch.URL)
	}

	view, _ := f.cart.Get(ctx, f.store.Slug, f.sessionID)
	if view.Count != 3 {
		t.Fatalf("dispatch must not clear the cart, count=%d", view.Count)
	}
}

func TestCheckoutValidation(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()
	messenger := &stubMessenger{}
	checkout := NewCheckoutService(f.catalog, f.sessions, messenger, "")

	if _, err := checkout.Preview(ctx, CheckoutInput{StoreSlug: f.store.Slug, SessionID: f.sessionID, Mode: "pickup"}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}

	f.add(t, f.volcano, 1)
	tests := []struct {
		name  string
		input CheckoutInput
		want  error
	}{
		{"unknown mode", CheckoutInput{Mode: "drone"}, order.ErrFulfillmentModeInvalid},
		{"missing destination", CheckoutInput{Mode: "delivery"}, order.ErrDestinationRequired},
		{"zone not offered", CheckoutInput{Mode: "delivery", Destination: "Sur"}, order.ErrDestinationNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.StoreSlug = f.store.Slug
			tt.input.SessionID = f.sessionID
			if _, err := checkout.Submit(ctx, tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if len(messenger.calls) != 0 {
		t.Fatalf("messenger must not be called on validation errors")
	}

	preview, err := checkout.Preview(ctx, CheckoutInput{StoreSlug: f.store.Slug, SessionID: f.sessionID, Mode: "Pick Up", Destination: "ignored"})
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if preview.Destination != "" || strings.Contains(preview.Text, "ignored") {
		t.Fatalf("pickup must ignore destination: %+v", preview)
	}
	if len(messenger.calls) != 0 {
		t.Fatalf("preview must not dispatch")
	}
}

func TestCheckoutMissingContactIsConfigError(t *testing.T) {
	f := newServiceFixture(t, 0)
	ctx := context.Background()
	if _, err := f.admin.UpdateStore(ctx, f.ownerID, UpdateStoreInput{Name: "Tito Station", Rate: "50"}); err != nil {
		t.Fatalf("clear phone failed: %v", err)
	}
	f.add(t, f.volcano, 1)

	messenger := &stubMessenger{}
	checkout := NewCheckoutService(f.catalog, f.sessions, messenger, "en")
	_, err := checkout.Submit(ctx, CheckoutInput{StoreSlug: f.store.Slug, SessionID: f.sessionID, Mode: "dine_in"})
	if !order.IsConfigError(err) || !errors.Is(err, order.ErrContactNotConfigured) {
		t.Fatalf("expected contact config error, got %v", err)
	}
	if len(messenger.calls) != 0 {
		t.Fatalf("messenger must not be called without contact")
	}
}

func TestQueuedMessenger(t *testing.T) {
	ctx := context.Background()
	sender := &stubMessenger{}
	msg := order.Message{Text: "hola", Recipient: "584141234567", StoreSlug: "tito"}

	inline := NewQueuedMessenger(queue.NewClientWithEnqueuer(nil), sender)
	outcome, err := inline.Send(ctx, msg)
	if err != nil || outcome.Queued || len(sender.calls) != 1 {
		t.Fatalf("disabled queue should send inline: %+v %v", outcome, err)
	}

	enqueuer := &stubEnqueuer{}
	queued := NewQueuedMessenger(queue.NewClientWithEnqueuer(enqueuer), sender)
	outcome, err = queued.Send(ctx, msg)
	if err != nil {
		t.Fatalf("queued send failed: %v", err)
	}
	if !outcome.Queued || outcome.Reference != "task-1" || outcome.Channel != "stub" {
		t.Fatalf("unexpected queued outcome: %+v", outcome)
	}
	if len(enqueuer.tasks) != 1 || len(sender.calls) != 1 {
		t.Fatalf("queued send must not call sender inline")
	}
	payload, err := queue.ParseOrderDispatchPayload(enqueuer.tasks[0])
	if err != nil || payload.Recipient != "584141234567" || payload.Text != "hola" {
		t.Fatalf("unexpected payload: %+v %v", payload, err)
	}

	if _, err := NewQueuedMessenger(nil, nil).Send(ctx, msg); !errors.Is(err, order.ErrMessengerUnavailable) {
		t.Fatalf("expected ErrMessengerUnavailable, got %v", err)
	}
}
