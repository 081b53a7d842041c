package order

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/webild-pos/internal/cart"
	"github.com/webild-pos/internal/catalog"
	"github.com/webild-pos/internal/pricing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type recordingMessenger struct {
	calls []Message
	err   error
}

func (m *recordingMessenger) Name() string { return "recording" }

func (m *recordingMessenger) Send(_ context.Context, msg Message) (Outcome, error) {
	m.calls = append(m.calls, msg)
	if m.err != nil {
		return Outcome{}, m.err
	}
	return Outcome{Channel: m.Name(), Recipient: msg.Recipient}, nil
}

func buildCart(t *testing.T) (*cart.Engine, catalog.ModifierIndex) {
	t.Helper()
	lookup := catalog.NewModifierIndex([]catalog.Modifier{
		{ID: "bacon", Name: "Extra Bacon", Price: d("1.50"), IsAvailable: true},
		{ID: "fries", Name: "Papas Fritas", Price: d("2.50"), IsAvailable: true},
	})
	e := cart.NewEngine(lookup)
	if _, err := e.AddLine(catalog.Product{ID: "2", Name: "Classic Smash", BasePrice: d("9.99")}, 2, []string{"bacon"}); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if _, err := e.AddLine(catalog.Product{ID: "3", Name: "Volcano Roll", BasePrice: d("12.00")}, 1, nil); err != nil {
		t.Fatalf("add line: %v", err)
	}
	return e, lookup
}

func TestFormatOrderGolden(t *testing.T) {
	e, lookup := buildCart(t)
	rate := d("50")
	usd, local := pricing.DualCurrencyTotal(e.Subtotal(), rate)
	text := NewFormatter("es").Format(FormatInput{
		StoreName:       "Tito Station",
		CustomerName:    "Ana",
		Fulfillment:     Fulfillment{Mode: FulfillmentDelivery, Destination: "Centro"},
		Lines:           e.Lines(),
		SubtotalPrimary: usd,
		SubtotalLocal:   local,
		Rate:            rate,
		Modifiers:       lookup,
	})

	sep := strings.Repeat("-", 32)
	want := "*NUEVO PEDIDO - TITO STATION* 🍔\n" +
		"👤 *Cliente:* Ana\n" +
		"🛵 *Modalidad:* Delivery\n" +
		"📍 *Dirección:* Centro\n" +
		sep + "\n\n" +
		"▪️ *2x Classic Smash* ($22.98)\n" +
		"   _Extras: Extra Bacon_\n" +
		"▪️ *1x Volcano Roll* ($12.00)\n" +
		"\n" + sep + "\n" +
		"*TOTAL USD: $34.98*\n" +
		"*TOTAL VES: Bs. 1749.00*\n" +
		"_(Tasa BCV: 50)_\n" +
		sep + "\n" +
		"\n💳 _Por favor, indíquenme los métodos de pago._"
	if text != want {
		t.Fatalf("unexpected message:\n%s\n---want---\n%s", text, want)
	}
}

func TestFormatOrderGoldenEnglish(t *testing.T) {
	e, lookup := buildCart(t)
	rate := d("36.5")
	usd, local := pricing.DualCurrencyTotal(e.Subtotal(), rate)
	text := NewFormatter("en-US").Format(FormatInput{
		StoreName:       "Tito Station",
		CustomerName:    "Ann",
		Fulfillment:     Fulfillment{Mode: FulfillmentPickUp, Destination: "ignored"},
		Lines:           e.Lines(),
		SubtotalPrimary: usd,
		SubtotalLocal:   local,
		Rate:            rate,
		Modifiers:       lookup,
	})

	sep := strings.Repeat("-", 32)
	want := "*NEW ORDER - TITO STATION* 🍔\n" +
		"👤 *Customer:* Ann\n" +
		"🛵 *Fulfillment:* Pick Up\n" +
		sep + "\n\n" +
		"▪️ *2x Classic Smash* ($22.98)\n" +
		"   _Extras: Extra Bacon_\n" +
		"▪️ *1x Volcano Roll* ($12.00)\n" +
		"\n" + sep + "\n" +
		"*TOTAL USD: $34.98*\n" +
		"*TOTAL VES: Bs. 1276.77*\n" +
		"_(Rate: 36.5)_\n" +
		sep + "\n" +
		"\n💳 _Please let me know the payment methods._"
	if text != want {
		t.Fatalf("unexpected message:\n%s\n---want---\n%s", text, want)
	}

	dineIn := NewFormatter("en").Format(FormatInput{Fulfillment: Fulfillment{Mode: FulfillmentDineIn}})
	if !strings.Contains(dineIn, "🛵 *Fulfillment:* Dine in\n") || !strings.Contains(dineIn, "*Customer:* Customer") {
		t.Fatalf("unexpected english fallbacks:\n%s", dineIn)
	}
}

func TestFormatOrderFooterWithRate(t *testing.T) {
	text := NewFormatter("es").Format(FormatInput{
		Fulfillment:     Fulfillment{Mode: FulfillmentPickUp},
		SubtotalPrimary: d("20.00"),
		SubtotalLocal:   d("1000"),
		Rate:            d("50"),
	})
	for _, part := range []string{"Bs. 1000.00", "$20.00", "Tasa BCV: 50"} {
		if !strings.Contains(text, part) {
			t.Fatalf("footer missing %q:\n%s", part, text)
		}
	}
}

func TestFormatOrderFallbacks(t *testing.T) {
	text := NewFormatter("").Format(FormatInput{
		Fulfillment:     Fulfillment{Mode: FulfillmentDineIn, Destination: "should not appear"},
		SubtotalPrimary: d("10"),
		SubtotalLocal:   decimal.Zero,
		Rate:            decimal.Zero,
	})
	if !strings.Contains(text, "NUEVO PEDIDO - NUESTRO LOCAL") {
		t.Fatalf("missing store fallback:\n%s", text)
	}
	if !strings.Contains(text, "*Cliente:* Cliente") {
		t.Fatalf("missing customer fallback:\n%s", text)
	}
	if !strings.Contains(text, "Comer en local") {
		t.Fatalf("missing dine-in label:\n%s", text)
	}
	if strings.Contains(text, "should not appear") || strings.Contains(text, "Dirección") {
		t.Fatalf("destination must only appear for delivery:\n%s", text)
	}
	if !strings.Contains(text, "Bs. 0.00") || !strings.Contains(text, "Tasa BCV: 0") {
		t.Fatalf("zero rate footer unexpected:\n%s", text)
	}

	en := NewFormatter("en-US").Format(FormatInput{Fulfillment: Fulfillment{Mode: FulfillmentPickUp}})
	if !strings.Contains(en, "NEW ORDER - OUR STORE") || !strings.Contains(en, "*Customer:* Customer") {
		t.Fatalf("english labels not applied:\n%s", en)
	}
}

func TestFormatOrderSkipsUnresolvedModifiers(t *testing.T) {
	lines := []cart.LineItem{
		{ID: "1:gone", Product: catalog.Product{ID: "1", Name: "Burger"}, Quantity: 1, ModifierIDs: []string{"gone"}, UnitPrice: d("5")},
		{ID: "2:bacon,gone", Product: catalog.Product{ID: "2", Name: "Smash"}, Quantity: 1, ModifierIDs: []string{"bacon", "gone"}, UnitPrice: d("6.5")},
	}
	lookup := catalog.NewModifierIndex([]catalog.Modifier{{ID: "bacon", Name: "Extra Bacon", Price: d("1.5")}})
	text := NewFormatter("es").Format(FormatInput{Lines: lines, Fulfillment: Fulfillment{Mode: FulfillmentPickUp}, Modifiers: lookup})

	if strings.Count(text, "_Extras:") != 1 {
		t.Fatalf("line with only unresolved modifiers should have no extras line:\n%s", text)
	}
	if !strings.Contains(text, "_Extras: Extra Bacon_") {
		t.Fatalf("resolved modifier missing:\n%s", text)
	}
	if strings.Contains(text, ", _") || strings.Contains(text, ": ,") {
		t.Fatalf("blank modifier rendered:\n%s", text)
	}
}

func TestNormalizeContact(t *testing.T) {
	cases := map[string]string{
		"+58 414-123-4567": "584141234567",
		"(0414) 123.45.67": "04141234567",
		"":                 "",
		"no digits":        "",
		"٤١٤":              "",
	}
	for input, want := range cases {
		if got := NormalizeContact(input); got != want {
			t.Fatalf("NormalizeContact(%q) want %q got %q", input, want, got)
		}
	}
}

func TestDispatch(t *testing.T) {
	m := &recordingMessenger{}
	dispatcher := NewDispatcher(m)

	outcome, err := dispatcher.Dispatch(context.Background(), "hola", "+58 414-123-4567", "tito")
	if err != nil {
		t.Fatalf("dispatch error: %v", err)
	}
	if outcome.Recipient != "584141234567" || len(m.calls) != 1 || m.calls[0].Recipient != "584141234567" {
		t.Fatalf("unexpected dispatch: %+v %+v", outcome, m.calls)
	}

	for _, contact := range []string{"", "   ", "sin numero"} {
		_, err := dispatcher.Dispatch(context.Background(), "hola", contact, "tito")
		if !errors.Is(err, ErrContactNotConfigured) || !IsConfigError(err) {
			t.Fatalf("contact %q: expected configuration error, got %v", contact, err)
		}
	}
	if len(m.calls) != 1 {
		t.Fatalf("messenger must not be called on configuration error, calls=%d", len(m.calls))
	}

	if _, err := dispatcher.Dispatch(context.Background(), " ", "584141234567", "tito"); !errors.Is(err, ErrMessageEmpty) || IsConfigError(err) {
		t.Fatalf("expected non-configuration ErrMessageEmpty, got %v", err)
	}

	if _, err := NewDispatcher(nil).Dispatch(context.Background(), "hola", "1", "tito"); !errors.Is(err, ErrMessengerUnavailable) {
		t.Fatalf("expected ErrMessengerUnavailable, got %v", err)
	}

	m.err = errors.New("boom")
	if _, err := dispatcher.Dispatch(context.Background(), "hola", "1", "tito"); err == nil || IsConfigError(err) {
		t.Fatalf("messenger failure should surface as non-configuration error, got %v", err)
	}
}

func TestParseFulfillmentMode(t *testing.T) {
	cases := []struct {
		raw  string
		want FulfillmentMode
		ok   bool
	}{
		{raw: "Delivery", want: FulfillmentDelivery, ok: true},
		{raw: "Pick Up", want: FulfillmentPickUp, ok: true},
		{raw: "pickup", want: FulfillmentPickUp, ok: true},
		{raw: "Comer en local", want: FulfillmentDineIn, ok: true},
		{raw: "dine_in", want: FulfillmentDineIn, ok: true},
		{raw: "drone", ok: false},
	}
	for _, tc := range cases {
		got, err := ParseFulfillmentMode(tc.raw)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q: want %s got %s (%v)", tc.raw, tc.want, got, err)
		}
		if !tc.ok && !errors.Is(err, ErrFulfillmentModeInvalid) {
			t.Fatalf("%q: expected ErrFulfillmentModeInvalid, got %v", tc.raw, err)
		}
	}
}

func TestNewFulfillment(t *testing.T) {
	free := catalog.StoreContext{}
	zoned := catalog.StoreContext{DeliveryZones: []string{"Centro", "Los Palos Grandes"}}

	if f, err := NewFulfillment(FulfillmentDelivery, " Calle 5, casa 3 ", free); err != nil || f.Destination != "Calle 5, casa 3" {
		t.Fatalf("free-form destination: %+v %v", f, err)
	}
	if _, err := NewFulfillment(FulfillmentDelivery, "  ", free); !errors.Is(err, ErrDestinationRequired) {
		t.Fatalf("expected ErrDestinationRequired, got %v", err)
	}
	if f, err := NewFulfillment(FulfillmentDelivery, "centro", zoned); err != nil || f.Destination != "Centro" {
		t.Fatalf("zone match should be case-insensitive: %+v %v", f, err)
	}
	if _, err := NewFulfillment(FulfillmentDelivery, "Chacao", zoned); !errors.Is(err, ErrDestinationNotAllowed) {
		t.Fatalf("expected ErrDestinationNotAllowed, got %v", err)
	}
	if f, err := NewFulfillment(FulfillmentPickUp, "ignored", zoned); err != nil || f.Destination != "" {
		t.Fatalf("pickup should drop destination: %+v %v", f, err)
	}
	if _, err := NewFulfillment(FulfillmentMode("boat"), "", free); !errors.Is(err, ErrFulfillmentModeInvalid) {
		t.Fatalf("expected ErrFulfillmentModeInvalid, got %v", err)
	}
}
